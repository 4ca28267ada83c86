package cart

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Retrieve(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Preload("Payment").
		First(&c, "id = ?", cartID).Error
	return c, err
}

// RetrieveInTx reads a cart inside a caller-owned transaction.
func RetrieveInTx(ctx context.Context, tx *gorm.DB, cartID string) (Cart, error) {
	var c Cart
	err := tx.WithContext(ctx).First(&c, "id = ?", cartID).Error
	return c, err
}

// RetrieveWithTotals loads the cart for amount-sensitive flows. Totals are
// host-maintained; no recomputation happens here.
func (r *Repo) RetrieveWithTotals(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).First(&c, "id = ?", cartID).Error
	return c, err
}
