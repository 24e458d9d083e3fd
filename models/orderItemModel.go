package models

import (
	"github.com/shopspring/decimal"
)

// OrderItem snapshots name and price at purchase time. ItemID is nullable
// and set to NULL when the source Item is deleted, so historical orders
// survive menu edits.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ItemID    *uint           `gorm:"index" json:"item_id,omitempty"`
	Item      *Item           `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL" json:"-"`
	ItemName  string          `gorm:"not null;type:varchar(100)" json:"item_name"`
	ItemPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"item_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}
