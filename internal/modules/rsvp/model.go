package rsvp

import "time"

// RSVP is the one entity this module owns: a guest's attendance reply,
// optionally linked to a registered customer.
type RSVP struct {
	ID             string  `gorm:"type:varchar(64);primaryKey"`
	Name           string  `gorm:"type:varchar(255);not null"`
	IsAttending    bool    `gorm:"not null;default:false"`
	AmountOfGuests int     `gorm:"column:amount_of_guests;not null;default:0"`
	CustomerID     *string `gorm:"type:varchar(64);index:ix_rsvp_customer_id"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (RSVP) TableName() string { return "rsvp" }
