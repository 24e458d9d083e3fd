package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a menu entry owned by a single staff account. UserID is nullable
// because rows imported before multi-tenancy have no owner.
type Item struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;type:varchar(100)" json:"name"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	UserID      *uint           `gorm:"index" json:"user_id,omitempty"`
	User        *User           `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
