package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"registryshop.com/app/internal/asaas"
)

// ErrMissingCPF: the gateway cannot create a charge without the customer's
// tax id, so checkout must collect it before initiating payment.
var ErrMissingCPF = errors.New("customer has no cpf")

const dueDateLayout = "2006-01-02"

// AsaasProcessor is the unified adapter: it creates a charge with an open
// billing type so the customer picks the method on the gateway's hosted
// page.
type AsaasProcessor struct {
	client *asaas.Client
}

func NewAsaasProcessor(client *asaas.Client) *AsaasProcessor {
	return &AsaasProcessor{client: client}
}

func (p *AsaasProcessor) Identifier() string { return "asaas-payment-processor" }

func (p *AsaasProcessor) InitiatePayment(ctx context.Context, pc Context) (SessionData, error) {
	if pc.Customer.CPF == "" {
		return SessionData{}, ErrMissingCPF
	}

	customer, err := p.getOrCreateCustomer(ctx, pc.Customer)
	if err != nil {
		return SessionData{}, processorError("error interacting with asaas api", err)
	}

	charge, err := p.client.CreateCharge(ctx, asaas.CreateChargeParams{
		Customer:          customer.ID,
		BillingType:       asaas.BillingUndefined,
		DueDate:           time.Now().Add(24 * time.Hour).Format(dueDateLayout),
		Value:             centsToValue(pc.AmountCents),
		ExternalReference: pc.CartID,
		Description:       fmt.Sprintf("Pedido #%s", pc.CartID),
	})
	if err != nil {
		return SessionData{}, processorError("error interacting with asaas api", err)
	}

	return SessionData{Customer: customer, Charge: &charge}, nil
}

func (p *AsaasProcessor) getOrCreateCustomer(ctx context.Context, c Customer) (asaas.Customer, error) {
	list, err := p.client.ListCustomers(ctx, asaas.ListCustomersParams{CpfCnpj: c.CPF})
	if err != nil {
		return asaas.Customer{}, err
	}
	if list.TotalCount > 0 {
		return list.Data[0], nil
	}

	return p.client.CreateCustomer(ctx, asaas.CreateCustomerParams{
		Name:              c.FullName(),
		Email:             c.Email,
		CpfCnpj:           c.CPF,
		ExternalReference: c.ID,
	})
}

// AuthorizePayment re-checks the current gateway status. The unified flow
// never creates anything here; the charge already exists from initiate.
func (p *AsaasProcessor) AuthorizePayment(ctx context.Context, data SessionData, cartID string) (AuthorizeResult, error) {
	status, err := p.GetPaymentStatus(ctx, data)
	if err != nil {
		return AuthorizeResult{}, err
	}
	return AuthorizeResult{Status: status, Data: data}, nil
}

func (p *AsaasProcessor) GetPaymentStatus(ctx context.Context, data SessionData) (SessionStatus, error) {
	if data.Charge == nil {
		return "", processorError("error interacting with asaas api", errNoCharge)
	}

	charge, err := p.client.GetCharge(ctx, data.Charge.ID)
	if err != nil {
		return "", processorError("error interacting with asaas api", err)
	}
	return MapChargeStatus(charge.Status), nil
}

func (p *AsaasProcessor) RetrievePayment(ctx context.Context, data SessionData) (SessionData, error) {
	if data.Charge == nil {
		return SessionData{}, processorError("error interacting with asaas api", errNoCharge)
	}

	charge, err := p.client.GetCharge(ctx, data.Charge.ID)
	if err != nil {
		return SessionData{}, processorError("error interacting with asaas api", err)
	}
	data.Charge = &charge
	return data, nil
}

func (p *AsaasProcessor) UpdatePayment(ctx context.Context, pc Context) (SessionData, error) {
	data := pc.SessionData
	if data.Charge == nil {
		return SessionData{}, processorError("error interacting with asaas api", errNoCharge)
	}

	charge, err := p.client.UpdateCharge(ctx, data.Charge.ID, asaas.UpdateChargeParams{
		Value:             centsToValue(pc.AmountCents),
		ExternalReference: pc.CartID,
		Description:       fmt.Sprintf("Pedido #%s", pc.CartID),
	})
	if err != nil {
		return SessionData{}, processorError("error interacting with asaas api", err)
	}
	data.Charge = &charge
	return data, nil
}

func (p *AsaasProcessor) DeletePayment(ctx context.Context, data SessionData) (SessionData, error) {
	if data.Charge == nil {
		return SessionData{}, processorError("error interacting with asaas api", errNoCharge)
	}

	if _, err := p.client.CancelCharge(ctx, data.Charge.ID); err != nil {
		return SessionData{}, processorError("error interacting with asaas api", err)
	}
	return data, nil
}

func (p *AsaasProcessor) CancelPayment(ctx context.Context, data SessionData) (SessionData, error) {
	return p.DeletePayment(ctx, data)
}

func (p *AsaasProcessor) RefundPayment(ctx context.Context, data SessionData, amountCents int) (SessionData, error) {
	if data.Charge == nil {
		return SessionData{}, processorError("error interacting with asaas api", errNoCharge)
	}

	charge, err := p.client.RefundCharge(ctx, data.Charge.ID, asaas.RefundChargeParams{
		Value: centsToValue(amountCents),
	})
	if err != nil {
		return SessionData{}, processorError("error interacting with asaas api", err)
	}
	data.Charge = &charge
	return data, nil
}

// CapturePayment is a pass-through: Asaas settles charges on its side,
// capture happens on the order during webhook reconciliation.
func (p *AsaasProcessor) CapturePayment(ctx context.Context, data SessionData) (SessionData, error) {
	return data, nil
}

func (p *AsaasProcessor) UpdatePaymentData(ctx context.Context, sessionID string, _ map[string]any) (SessionData, error) {
	return SessionData{}, fmt.Errorf("update payment data for session %s: %w", sessionID, ErrNotImplemented)
}
