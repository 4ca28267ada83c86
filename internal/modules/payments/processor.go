package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"registryshop.com/app/internal/asaas"
)

// ErrNotImplemented marks capability methods the host is not expected to
// call. These fail loudly instead of faking a result.
var ErrNotImplemented = errors.New("payment processor method not implemented")

// errNoCharge reports a session that has not created a gateway charge yet,
// which is the normal state between initiate and authorize.
var errNoCharge = errors.New("session has no charge")

// Customer is the slice of the host's customer record the processors need.
// CPF is required by the gateway for any charge.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	CPF       string
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Context carries the host checkout state into a processor call.
type Context struct {
	CartID      string
	AmountCents int
	Email       string
	Customer    Customer
	SessionData SessionData
}

// SessionData is the opaque value the host persists on a cart's payment
// session between processor calls.
type SessionData struct {
	Customer asaas.Customer `json:"customer"`
	Charge   *asaas.Charge  `json:"charge,omitempty"`
	QRCode   *asaas.QRCode  `json:"qr_code,omitempty"`
}

type AuthorizeResult struct {
	Status SessionStatus
	Data   SessionData
}

// ProcessorError is the structured failure a processor hands back to the
// host. Gateway errors never cross this boundary raw.
type ProcessorError struct {
	Message string
	Code    string
	Detail  string
}

func (e *ProcessorError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%s): %s", e.Message, e.Code, e.Detail)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Processor is the host framework's payment-processor capability set.
type Processor interface {
	Identifier() string

	InitiatePayment(ctx context.Context, pc Context) (SessionData, error)
	AuthorizePayment(ctx context.Context, data SessionData, cartID string) (AuthorizeResult, error)
	CapturePayment(ctx context.Context, data SessionData) (SessionData, error)
	CancelPayment(ctx context.Context, data SessionData) (SessionData, error)
	DeletePayment(ctx context.Context, data SessionData) (SessionData, error)
	RefundPayment(ctx context.Context, data SessionData, amountCents int) (SessionData, error)
	RetrievePayment(ctx context.Context, data SessionData) (SessionData, error)
	GetPaymentStatus(ctx context.Context, data SessionData) (SessionStatus, error)
	UpdatePayment(ctx context.Context, pc Context) (SessionData, error)
	UpdatePaymentData(ctx context.Context, sessionID string, data map[string]any) (SessionData, error)
}

// processorError wraps a gateway failure into a ProcessorError. Asaas
// validation errors contribute their first code and joined descriptions.
func processorError(message string, err error) *ProcessorError {
	var apiErr *asaas.APIError
	if errors.As(err, &apiErr) {
		detail := make([]string, len(apiErr.Errors))
		for i, e := range apiErr.Errors {
			detail[i] = e.Description
		}
		return &ProcessorError{
			Message: message,
			Code:    apiErr.Code(),
			Detail:  strings.Join(detail, ", "),
		}
	}

	return &ProcessorError{
		Message: message,
		Code:    "UNKNOWN_ERROR",
		Detail:  err.Error(),
	}
}

// centsToValue converts the host's cent amounts to the gateway's decimal
// currency values.
func centsToValue(cents int) float64 {
	return float64(cents) / 100
}
