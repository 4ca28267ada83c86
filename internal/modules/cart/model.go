package cart

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
)

// Cart is the host-owned checkout aggregate. This module only reads it
// during webhook reconciliation and writes its status on completion.
type Cart struct {
	ID         string  `gorm:"type:char(36);primaryKey"`
	CustomerID *string `gorm:"type:char(36);index:ix_carts_customer_id"`
	Email      string  `gorm:"type:varchar(255);not null"`

	Status     string `gorm:"type:varchar(32);not null"`
	TotalCents int    `gorm:"not null"`
	Currency   string `gorm:"type:char(3);not null"`

	// Request context captured at checkout (client ip and friends).
	ContextJSON datatypes.JSON `gorm:"type:json"`

	Payment *Payment `gorm:"foreignKey:CartID"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Cart) TableName() string { return "carts" }

// Payment links a cart's payment session to the order it produced and
// holds the processor's opaque session data.
type Payment struct {
	ID      string  `gorm:"type:char(36);primaryKey"`
	CartID  string  `gorm:"type:char(36);not null;uniqueIndex:ux_cart_payments_cart_id"`
	OrderID *string `gorm:"type:char(36);index:ix_cart_payments_order_id"`

	Provider        string         `gorm:"type:varchar(64);not null"`
	SessionDataJSON datatypes.JSON `gorm:"type:json"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Payment) TableName() string { return "cart_payments" }

// ClientIP extracts the checkout client ip from the cart context.
func (c Cart) ClientIP() string {
	if len(c.ContextJSON) == 0 {
		return ""
	}
	var ctx struct {
		IP string `json:"ip"`
	}
	if err := json.Unmarshal(c.ContextJSON, &ctx); err != nil {
		return ""
	}
	return ctx.IP
}
