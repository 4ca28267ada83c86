package orders

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RetrieveByCartIDInTx looks up the order a cart completed into, inside a
// caller-owned transaction. Returns gorm.ErrRecordNotFound when the cart
// has not completed yet.
func RetrieveByCartIDInTx(ctx context.Context, tx *gorm.DB, cartID string) (Order, error) {
	var o Order
	err := tx.WithContext(ctx).First(&o, "cart_id = ?", cartID).Error
	return o, err
}

// CapturePaymentInTx marks the order's payment as captured. The guard on
// the current payment_status makes repeated calls no-ops.
func CapturePaymentInTx(ctx context.Context, tx *gorm.DB, orderID string) error {
	return tx.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND payment_status <> ?", orderID, PaymentStatusCaptured).
		Updates(map[string]any{
			"payment_status": PaymentStatusCaptured,
			"updated_at":     time.Now(),
		}).Error
}
