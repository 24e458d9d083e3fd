package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is a closed enumeration; handlers must go through
// ParseOrderStatus so an unrecognized value never reaches the database.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus validates a raw status string from a request path.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusPending, StatusPreparing, StatusCompleted, StatusCancelled:
		return OrderStatus(raw), nil
	}
	return "", fmt.Errorf("unrecognized order status %q", raw)
}

// IsActive reports whether an order with this status still needs kitchen
// attention.
func (s OrderStatus) IsActive() bool {
	return s == StatusPending || s == StatusPreparing
}

// Order is created once at checkout and afterwards mutated only by staff
// status transitions. UserID is nullable: guest checkout is allowed.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      *uint           `gorm:"index" json:"user_id,omitempty"`
	User        *User           `gorm:"foreignKey:UserID" json:"-"`
	TableNumber string          `gorm:"type:varchar(50)" json:"table_number"`
	TotalPrice  decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_price"`
	Status      OrderStatus     `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
	IsPaid      bool            `gorm:"not null;default:false" json:"is_paid"`
	OrderItems  []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
