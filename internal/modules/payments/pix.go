package payments

import (
	"context"
	"fmt"
	"time"

	"registryshop.com/app/internal/asaas"
	"registryshop.com/app/internal/modules/cart"
)

// CartTotalsRetriever loads a cart with its host-computed totals.
type CartTotalsRetriever interface {
	RetrieveWithTotals(ctx context.Context, cartID string) (cart.Cart, error)
}

// PixProcessor defers charge creation to the authorize step: initiate only
// resolves the gateway customer, authorize creates the charge from the
// cart's total and hands the QR code back so the customer can pay.
type PixProcessor struct {
	client *asaas.Client
	carts  CartTotalsRetriever
}

func NewPixProcessor(client *asaas.Client, carts CartTotalsRetriever) *PixProcessor {
	return &PixProcessor{client: client, carts: carts}
}

func (p *PixProcessor) Identifier() string { return "pix" }

func (p *PixProcessor) InitiatePayment(ctx context.Context, pc Context) (SessionData, error) {
	if pc.Customer.CPF == "" {
		return SessionData{}, ErrMissingCPF
	}

	list, err := p.client.ListCustomers(ctx, asaas.ListCustomersParams{
		Email:   pc.Email,
		CpfCnpj: pc.Customer.CPF,
	})
	if err != nil {
		return SessionData{}, processorError("unable to initiate payment because the list asaas customers operation failed", err)
	}
	if list.TotalCount > 0 {
		return SessionData{Customer: list.Data[0]}, nil
	}

	customer, err := p.client.CreateCustomer(ctx, asaas.CreateCustomerParams{
		Name:              pc.Customer.FullName(),
		Email:             pc.Email,
		CpfCnpj:           pc.Customer.CPF,
		ExternalReference: pc.Customer.ID,
	})
	if err != nil {
		return SessionData{}, processorError("unable to initiate payment because the create asaas customer operation failed", err)
	}

	return SessionData{Customer: customer}, nil
}

func (p *PixProcessor) AuthorizePayment(ctx context.Context, data SessionData, cartID string) (AuthorizeResult, error) {
	// An existing charge means the customer has seen the QR code before:
	// re-check whether the funds arrived.
	if data.Charge != nil {
		charge, err := p.client.GetCharge(ctx, data.Charge.ID)
		if err != nil {
			return AuthorizeResult{}, processorError("unable to authorize payment because the get charge operation failed", err)
		}
		data.Charge = &charge

		if asaas.IsChargePaid(charge) {
			return AuthorizeResult{Status: StatusAuthorized, Data: data}, nil
		}

		qr, err := p.client.GetQRCode(ctx, charge.ID)
		if err != nil {
			return AuthorizeResult{}, processorError("unable to authorize payment because the qr code could not be fetched", err)
		}
		data.QRCode = &qr
		return AuthorizeResult{Status: StatusRequiresMore, Data: data}, nil
	}

	c, err := p.carts.RetrieveWithTotals(ctx, cartID)
	if err != nil {
		return AuthorizeResult{}, processorError("unable to authorize payment because the cart could not be retrieved", err)
	}

	charge, err := p.client.CreateCharge(ctx, asaas.CreateChargeParams{
		Customer:          data.Customer.ID,
		BillingType:       asaas.BillingBoleto,
		Value:             centsToValue(c.TotalCents),
		DueDate:           time.Now().Format(dueDateLayout),
		ExternalReference: cartID,
		Description:       fmt.Sprintf("Pedido %s", cartID),
	})
	if err != nil {
		return AuthorizeResult{}, processorError("unable to authorize payment because the create charge operation failed", err)
	}

	qr, err := p.client.GetQRCode(ctx, charge.ID)
	if err != nil {
		return AuthorizeResult{}, processorError("unable to authorize payment because the qr code could not be fetched", err)
	}

	data.Charge = &charge
	data.QRCode = &qr
	return AuthorizeResult{Status: StatusRequiresMore, Data: data}, nil
}

func (p *PixProcessor) GetPaymentStatus(ctx context.Context, data SessionData) (SessionStatus, error) {
	if data.Charge == nil {
		return "", processorError("unable to get payment status because the session has no charge", errNoCharge)
	}

	charge, err := p.client.GetCharge(ctx, data.Charge.ID)
	if err != nil {
		return "", processorError("unable to get payment status because the get charge operation failed", err)
	}
	return MapPixChargeStatus(charge.Status), nil
}

func (p *PixProcessor) CancelPayment(ctx context.Context, data SessionData) (SessionData, error) {
	if data.Charge == nil {
		return SessionData{}, processorError("unable to cancel payment because the session has no charge", errNoCharge)
	}

	if _, err := p.client.CancelCharge(ctx, data.Charge.ID); err != nil {
		return SessionData{}, processorError("unable to cancel payment because the cancel charge operation failed", err)
	}

	charge, err := p.client.GetCharge(ctx, data.Charge.ID)
	if err != nil {
		return SessionData{}, processorError("unable to cancel payment because the get charge operation failed", err)
	}
	data.Charge = &charge
	return data, nil
}

func (p *PixProcessor) DeletePayment(ctx context.Context, data SessionData) (SessionData, error) {
	return p.CancelPayment(ctx, data)
}

func (p *PixProcessor) RefundPayment(ctx context.Context, data SessionData, amountCents int) (SessionData, error) {
	if data.Charge == nil {
		return SessionData{}, processorError("unable to refund payment because the session has no charge", errNoCharge)
	}

	charge, err := p.client.RefundCharge(ctx, data.Charge.ID, asaas.RefundChargeParams{
		Value:       centsToValue(amountCents),
		Description: "Refund",
	})
	if err != nil {
		return SessionData{}, processorError("unable to refund payment because the refund charge operation failed", err)
	}
	data.Charge = &charge
	return data, nil
}

func (p *PixProcessor) RetrievePayment(ctx context.Context, data SessionData) (SessionData, error) {
	if data.Charge == nil {
		return SessionData{}, processorError("unable to retrieve payment because the session has no charge", errNoCharge)
	}

	charge, err := p.client.GetCharge(ctx, data.Charge.ID)
	if err != nil {
		return SessionData{}, processorError("unable to retrieve payment because the get charge operation failed", err)
	}
	data.Charge = &charge
	return data, nil
}

func (p *PixProcessor) UpdatePayment(ctx context.Context, pc Context) (SessionData, error) {
	data := pc.SessionData

	// A changed tax id means a different gateway customer: start over.
	if pc.Customer.CPF != data.Customer.CpfCnpj {
		return p.InitiatePayment(ctx, pc)
	}

	if data.Charge == nil {
		return SessionData{}, processorError("unable to update payment because the session has no charge", errNoCharge)
	}
	if pc.AmountCents != 0 && data.Charge.Value == centsToValue(pc.AmountCents) {
		return data, nil
	}

	charge, err := p.client.UpdateCharge(ctx, data.Charge.ID, asaas.UpdateChargeParams{
		Value: centsToValue(pc.AmountCents),
	})
	if err != nil {
		return SessionData{}, processorError("unable to update payment because the update charge operation failed", err)
	}
	data.Charge = &charge
	return data, nil
}

func (p *PixProcessor) CapturePayment(ctx context.Context, data SessionData) (SessionData, error) {
	return SessionData{}, fmt.Errorf("capture payment: %w", ErrNotImplemented)
}

func (p *PixProcessor) UpdatePaymentData(ctx context.Context, sessionID string, _ map[string]any) (SessionData, error) {
	return SessionData{}, fmt.Errorf("update payment data for session %s: %w", sessionID, ErrNotImplemented)
}
