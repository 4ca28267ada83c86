package orders

import "time"

const (
	PaymentStatusNotCaptured = "not_captured"
	PaymentStatusCaptured    = "captured"
)

type Order struct {
	ID     string `gorm:"type:char(36);primaryKey"`
	CartID string `gorm:"type:char(36);not null;uniqueIndex:ux_orders_cart_id"`

	Email      string `gorm:"type:varchar(255);not null"`
	TotalCents int    `gorm:"not null"`
	Currency   string `gorm:"type:char(3);not null"`

	Status        string `gorm:"type:varchar(32);not null"`
	PaymentStatus string `gorm:"type:varchar(32);not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }
