package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"registryshop.com/app/internal/asaas"
	"registryshop.com/app/internal/modules/cart"
)

// ChargeHookService reconciles one charge event and reports the HTTP
// status to answer with.
type ChargeHookService interface {
	HandleChargeEvent(ctx context.Context, event string, charge asaas.Charge) int
}

type CartRetriever interface {
	Retrieve(ctx context.Context, cartID string) (cart.Cart, error)
}

type WebhookHandler struct {
	Logger      *slog.Logger
	Hooks       ChargeHookService
	Carts       CartRetriever
	FrontendURL string
}

func NewWebhookHandler(logger *slog.Logger, hooks ChargeHookService, carts CartRetriever, frontendURL string) *WebhookHandler {
	return &WebhookHandler{Logger: logger, Hooks: hooks, Carts: carts, FrontendURL: frontendURL}
}

// POST /hooks/asaas/charge
// Asaas delivers charge events here, at least once and in no particular
// order. The response is a bare status code: 200 acknowledges, 409 asks
// the gateway to redeliver.
func (h *WebhookHandler) Charge(c *gin.Context) {
	var payload asaas.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.Logger.Warn("charge hook received an unparseable body", "err", err)
		c.Status(http.StatusBadRequest)
		return
	}

	h.Logger.Info("incoming charge hook",
		"event", payload.Event,
		"charge_id", payload.Payment.ID,
		"cart_id", payload.Payment.ExternalReference,
	)

	status := h.Hooks.HandleChargeEvent(c.Request.Context(), payload.Event, payload.Payment)
	c.Status(status)
}

// GET /hooks/asaas/callback?cart_id=<id>
// Browser redirect target after gateway-hosted checkout. Always redirects
// somewhere: to the order when it resolved, otherwise to the listing.
func (h *WebhookHandler) Callback(c *gin.Context) {
	fallback := h.FrontendURL + "/registry/orders"

	cartID := c.Query("cart_id")
	if cartID == "" {
		c.Redirect(http.StatusFound, fallback)
		return
	}

	crt, err := h.Carts.Retrieve(c.Request.Context(), cartID)
	if err != nil {
		h.Logger.Warn("callback could not retrieve cart", "cart_id", cartID, "err", err)
		c.Redirect(http.StatusFound, fallback)
		return
	}

	if crt.Payment == nil || crt.Payment.OrderID == nil || *crt.Payment.OrderID == "" {
		c.Redirect(http.StatusFound, fallback)
		return
	}

	c.Redirect(http.StatusFound, fallback+"/"+*crt.Payment.OrderID)
}
