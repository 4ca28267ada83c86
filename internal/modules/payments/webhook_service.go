package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"registryshop.com/app/internal/asaas"
	"registryshop.com/app/internal/modules/cart"
	"registryshop.com/app/internal/modules/idempotency"
	"registryshop.com/app/internal/modules/orders"
)

// HookPath keys idempotency records for charge-hook completions.
const HookPath = "/hooks/asaas/charge"

// CompletionError carries a cart-completion strategy failure: the
// strategy's response message and code, raised so the enclosing
// transaction rolls back.
type CompletionError struct {
	Message string
	Code    string
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("cart completion failed: %s (%s)", e.Message, e.Code)
}

// WebhookService reconciles the gateway's charge event stream with the
// cart/order lifecycle. Deliveries are at-least-once and unordered; the
// order-exists check and the idempotency-key unique index are the only
// defenses against duplicate completion.
type WebhookService struct {
	db         *gorm.DB
	completion orders.CompletionStrategy
	logger     *slog.Logger
}

func NewWebhookService(db *gorm.DB, completion orders.CompletionStrategy) *WebhookService {
	return &WebhookService{db: db, completion: completion, logger: slog.Default()}
}

func (s *WebhookService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// HandleChargeEvent classifies one webhook delivery and returns the HTTP
// status for the gateway: 200 acknowledges (including ignored events),
// 409 asks for a redelivery.
func (s *WebhookService) HandleChargeEvent(ctx context.Context, event string, charge asaas.Charge) int {
	cartID := charge.ExternalReference

	switch event {
	case asaas.EventPaymentReceived,
		asaas.EventPaymentConfirmed,
		asaas.EventPaymentReceivedInCashUndone:
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.completeCartIfNecessary(ctx, tx, event, cartID); err != nil {
				return err
			}
			return s.capturePaymentIfNecessary(ctx, tx, cartID)
		})
		if err != nil {
			s.logHookFailure(ctx, event, cartID, err)
			return http.StatusConflict
		}
		return http.StatusOK

	case asaas.EventPaymentUpdated:
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.completeCartIfNecessary(ctx, tx, event, cartID)
		})
		if err != nil {
			s.logHookFailure(ctx, event, cartID, err)
			return http.StatusConflict
		}
		return http.StatusOK

	case asaas.EventPaymentDeleted,
		asaas.EventPaymentReprovedByRiskAnalysis:
		// The charge never completed, so there is nothing to undo on the
		// order side. Acknowledge and leave any existing state alone.
		s.logger.ErrorContext(ctx, "charge payment failed",
			"event", event, "charge_id", charge.ID, "cart_id", cartID)
		return http.StatusOK

	default:
		// Default-allow: benign or unrecognized events must never cause a
		// retry storm.
		return http.StatusOK
	}
}

// completeCartIfNecessary converts the cart into an order at most once per
// distinct webhook event. Must run inside tx.
func (s *WebhookService) completeCartIfNecessary(ctx context.Context, tx *gorm.DB, event, cartID string) error {
	// Already completed: redeliveries short-circuit here.
	_, err := orders.RetrieveByCartIDInTx(ctx, tx, cartID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	key, found, err := idempotency.FindInTx(ctx, tx, HookPath, event)
	if err != nil {
		return err
	}
	if !found {
		key, err = idempotency.CreateInTx(ctx, tx, HookPath, event)
		if err != nil {
			return err
		}
	}

	c, err := cart.RetrieveInTx(ctx, tx, cartID)
	if err != nil {
		return err
	}

	resp, err := s.completion.Complete(ctx, tx, cartID, key, c.ClientIP())
	if err != nil {
		return err
	}

	if resp.ResponseCode != http.StatusOK {
		return &CompletionError{
			Message: stringField(resp.ResponseBody, "message"),
			Code:    stringField(resp.ResponseBody, "code"),
		}
	}
	return nil
}

// capturePaymentIfNecessary captures the order's payment once it exists.
// A missing order is fine: completion may have failed or still be pending,
// the gateway will redeliver.
func (s *WebhookService) capturePaymentIfNecessary(ctx context.Context, tx *gorm.DB, cartID string) error {
	o, err := orders.RetrieveByCartIDInTx(ctx, tx, cartID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if o.PaymentStatus != orders.PaymentStatusCaptured {
		return orders.CapturePaymentInTx(ctx, tx, o.ID)
	}
	return nil
}

func (s *WebhookService) logHookFailure(ctx context.Context, event, cartID string, err error) {
	if isConflict(err) {
		// Expected when the webhook races a concurrent completion; the
		// gateway's redelivery resolves it.
		s.logger.WarnContext(ctx, "charge hook handling conflicted with a concurrent completion, will be retried",
			"event", event, "cart_id", cartID, "err", err)
		return
	}
	s.logger.WarnContext(ctx, "charge hook handling failed",
		"event", event, "cart_id", cartID, "err", err)
}

// isConflict reports whether the database aborted the transaction for a
// reason that resolves itself on redelivery: duplicate key on the
// idempotency index, deadlock, or lock wait timeout.
func isConflict(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062 || me.Number == 1213 || me.Number == 1205
	}
	return false
}

func stringField(body map[string]any, key string) string {
	if v, ok := body[key].(string); ok {
		return v
	}
	return ""
}
