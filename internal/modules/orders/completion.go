package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"registryshop.com/app/internal/modules/cart"
	"registryshop.com/app/internal/modules/idempotency"
)

// CompletionResponse mirrors the host's cart-completion result shape:
// anything other than a 200 code is a failed completion and the body
// carries the failure's message and code.
type CompletionResponse struct {
	ResponseCode int
	ResponseBody map[string]any
}

// CompletionStrategy converts a cart into an order. Implementations must
// run entirely inside the given transaction and be replay-safe for a key
// that already recorded a response.
type CompletionStrategy interface {
	Complete(ctx context.Context, tx *gorm.DB, cartID string, key idempotency.Key, clientIP string) (CompletionResponse, error)
}

// DefaultCompletionStrategy completes carts directly against the shared
// database. The cart status update's affected-row count is the guard that
// makes a cart complete at most once.
type DefaultCompletionStrategy struct{}

func NewDefaultCompletionStrategy() *DefaultCompletionStrategy {
	return &DefaultCompletionStrategy{}
}

func (s *DefaultCompletionStrategy) Complete(ctx context.Context, tx *gorm.DB, cartID string, key idempotency.Key, clientIP string) (CompletionResponse, error) {
	// Replay: a key that already recorded a response returns it as-is.
	if key.ResponseCode != 0 {
		body := map[string]any{}
		if len(key.ResponseBody) > 0 {
			if err := json.Unmarshal(key.ResponseBody, &body); err != nil {
				return CompletionResponse{}, err
			}
		}
		return CompletionResponse{ResponseCode: key.ResponseCode, ResponseBody: body}, nil
	}

	c, err := cart.RetrieveInTx(ctx, tx, cartID)
	if err != nil {
		return CompletionResponse{}, err
	}

	now := time.Now()

	res := tx.WithContext(ctx).Model(&cart.Cart{}).
		Where("id = ? AND status = ?", cartID, cart.StatusOpen).
		Updates(map[string]any{"status": cart.StatusCompleted, "updated_at": now})
	if res.Error != nil {
		return CompletionResponse{}, res.Error
	}
	if res.RowsAffected != 1 {
		resp := CompletionResponse{
			ResponseCode: 409,
			ResponseBody: map[string]any{
				"message": "cart is not open",
				"code":    "cart_not_open",
			},
		}
		if err := recordResponse(ctx, tx, key, resp); err != nil {
			return CompletionResponse{}, err
		}
		return resp, nil
	}

	o := Order{
		ID:            uuid.NewString(),
		CartID:        c.ID,
		Email:         c.Email,
		TotalCents:    c.TotalCents,
		Currency:      c.Currency,
		Status:        "pending",
		PaymentStatus: PaymentStatusNotCaptured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := tx.WithContext(ctx).Create(&o).Error; err != nil {
		return CompletionResponse{}, err
	}

	// Link the cart's payment session to the new order so the checkout
	// callback can resolve it.
	if err := tx.WithContext(ctx).Model(&cart.Payment{}).
		Where("cart_id = ?", c.ID).
		Updates(map[string]any{"order_id": o.ID, "updated_at": now}).Error; err != nil {
		return CompletionResponse{}, err
	}

	resp := CompletionResponse{
		ResponseCode: 200,
		ResponseBody: map[string]any{"order_id": o.ID},
	}
	if err := recordResponse(ctx, tx, key, resp); err != nil {
		return CompletionResponse{}, err
	}
	return resp, nil
}

func recordResponse(ctx context.Context, tx *gorm.DB, key idempotency.Key, resp CompletionResponse) error {
	return idempotency.RecordResponseInTx(ctx, tx, key.ID, resp.ResponseCode, resp.ResponseBody)
}
