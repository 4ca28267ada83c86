package payments

import (
	"context"
	"errors"
	"testing"

	"registryshop.com/app/internal/asaas"
	"registryshop.com/app/internal/modules/cart"
)

type fakeCartTotals struct {
	cart cart.Cart
	err  error
}

func (f *fakeCartTotals) RetrieveWithTotals(ctx context.Context, cartID string) (cart.Cart, error) {
	if f.err != nil {
		return cart.Cart{}, f.err
	}
	return f.cart, nil
}

func TestPixProcessor_InitiatePayment_ResolvesExistingCustomer(t *testing.T) {
	g := newFakeGateway(t)
	g.customers = []asaas.Customer{{ID: "cus_pix", Email: "guest@example.com", CpfCnpj: "12345678909"}}
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	data, err := p.InitiatePayment(context.Background(), testContext())
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if data.Customer.ID != "cus_pix" {
		t.Errorf("customer = %q, want the existing cus_pix", data.Customer.ID)
	}
	if data.Charge != nil {
		t.Error("initiate must not create a charge, it only resolves the customer")
	}
}

func TestPixProcessor_InitiatePayment_CreatesCustomer(t *testing.T) {
	g := newFakeGateway(t)
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	data, err := p.InitiatePayment(context.Background(), testContext())
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if data.Customer.ID != "cus_new" {
		t.Errorf("customer = %q, want the newly created cus_new", data.Customer.ID)
	}
	if data.Charge != nil {
		t.Error("initiate must not create a charge")
	}
}

func TestPixProcessor_InitiatePayment_RequiresCPF(t *testing.T) {
	g := newFakeGateway(t)
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	pc := testContext()
	pc.Customer.CPF = ""

	if _, err := p.InitiatePayment(context.Background(), pc); !errors.Is(err, ErrMissingCPF) {
		t.Fatalf("err = %v, want ErrMissingCPF", err)
	}
}

func TestPixProcessor_AuthorizePayment_CreatesChargeFromCartTotal(t *testing.T) {
	g := newFakeGateway(t)
	carts := &fakeCartTotals{cart: cart.Cart{ID: "cart_123", TotalCents: 7390}}
	p := NewPixProcessor(g.client(), carts)

	result, err := p.AuthorizePayment(context.Background(), SessionData{
		Customer: asaas.Customer{ID: "cus_pix"},
	}, "cart_123")
	if err != nil {
		t.Fatalf("AuthorizePayment: %v", err)
	}

	if result.Status != StatusRequiresMore {
		t.Errorf("status = %s, want requires_more while the QR code is unpaid", result.Status)
	}
	if result.Data.Charge == nil || result.Data.QRCode == nil {
		t.Fatalf("session data missing charge or qr code: %+v", result.Data)
	}
	if result.Data.QRCode.Payload == "" {
		t.Error("qr code payload is empty")
	}

	if len(g.createdCharges) != 1 {
		t.Fatalf("created %d charges, want 1", len(g.createdCharges))
	}
	created := g.createdCharges[0]
	if created.Value != 73.90 {
		t.Errorf("charge value = %v, want 73.90 from the cart total", created.Value)
	}
	if created.Customer != "cus_pix" {
		t.Errorf("charge customer = %q, want the session's customer", created.Customer)
	}
	if created.ExternalReference != "cart_123" {
		t.Errorf("external reference = %q, want the cart id", created.ExternalReference)
	}
}

func TestPixProcessor_AuthorizePayment_ExistingUnpaidRefreshesQRCode(t *testing.T) {
	g := newFakeGateway(t)
	g.charge = asaas.Charge{ID: "pay_1", Status: asaas.ChargePending}
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	result, err := p.AuthorizePayment(context.Background(), SessionData{
		Customer: asaas.Customer{ID: "cus_pix"},
		Charge:   &asaas.Charge{ID: "pay_1"},
	}, "cart_123")
	if err != nil {
		t.Fatalf("AuthorizePayment: %v", err)
	}

	if result.Status != StatusRequiresMore {
		t.Errorf("status = %s, want requires_more", result.Status)
	}
	if result.Data.QRCode == nil {
		t.Error("qr code not refreshed for the pending charge")
	}
	if len(g.createdCharges) != 0 {
		t.Errorf("created %d charges for an existing session, want 0", len(g.createdCharges))
	}
}

func TestPixProcessor_AuthorizePayment_PaidChargeAuthorizes(t *testing.T) {
	g := newFakeGateway(t)
	g.charge = asaas.Charge{ID: "pay_1", Status: asaas.ChargeReceived}
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	result, err := p.AuthorizePayment(context.Background(), SessionData{
		Charge: &asaas.Charge{ID: "pay_1"},
	}, "cart_123")
	if err != nil {
		t.Fatalf("AuthorizePayment: %v", err)
	}
	if result.Status != StatusAuthorized {
		t.Errorf("status = %s, want authorized once the funds arrived", result.Status)
	}
	if result.Data.Charge.Status != asaas.ChargeReceived {
		t.Errorf("charge status = %s, want the refreshed RECEIVED snapshot", result.Data.Charge.Status)
	}
}

func TestPixProcessor_UpdatePayment_ChangedCPFReinitiates(t *testing.T) {
	g := newFakeGateway(t)
	g.customers = []asaas.Customer{{ID: "cus_other", CpfCnpj: "98765432100"}}
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	pc := testContext()
	pc.Customer.CPF = "98765432100"
	pc.SessionData = SessionData{
		Customer: asaas.Customer{ID: "cus_pix", CpfCnpj: "12345678909"},
		Charge:   &asaas.Charge{ID: "pay_1", Value: 50.0},
	}

	data, err := p.UpdatePayment(context.Background(), pc)
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if data.Customer.ID != "cus_other" {
		t.Errorf("customer = %q, want the re-resolved cus_other", data.Customer.ID)
	}
	if len(g.updatedCharges) != 0 {
		t.Errorf("updated %d charges, want 0 when the tax id changed", len(g.updatedCharges))
	}
}

func TestPixProcessor_UpdatePayment_UnchangedAmountIsNoOp(t *testing.T) {
	g := newFakeGateway(t)
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	pc := testContext()
	pc.SessionData = SessionData{
		Customer: asaas.Customer{ID: "cus_pix", CpfCnpj: "12345678909"},
		Charge:   &asaas.Charge{ID: "pay_1", Value: 50.0},
	}

	data, err := p.UpdatePayment(context.Background(), pc)
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if len(g.updatedCharges) != 0 {
		t.Errorf("updated %d charges, want 0 for an unchanged amount", len(g.updatedCharges))
	}
	if data.Charge.Value != 50.0 {
		t.Errorf("charge value = %v, want the untouched 50.0", data.Charge.Value)
	}
}

func TestPixProcessor_UpdatePayment_ChangedAmountUpdatesCharge(t *testing.T) {
	g := newFakeGateway(t)
	g.charge = asaas.Charge{ID: "pay_1", Value: 50.0}
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	pc := testContext()
	pc.AmountCents = 8000
	pc.SessionData = SessionData{
		Customer: asaas.Customer{ID: "cus_pix", CpfCnpj: "12345678909"},
		Charge:   &asaas.Charge{ID: "pay_1", Value: 50.0},
	}

	data, err := p.UpdatePayment(context.Background(), pc)
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if len(g.updatedCharges) != 1 || g.updatedCharges[0].Value != 80.0 {
		t.Errorf("updates = %+v, want one update to 80.0", g.updatedCharges)
	}
	if data.Charge.Value != 80.0 {
		t.Errorf("session charge value = %v, want 80.0", data.Charge.Value)
	}
}

func TestPixProcessor_CancelRefetchesCharge(t *testing.T) {
	g := newFakeGateway(t)
	g.charge = asaas.Charge{ID: "pay_1", Status: asaas.ChargePending, Deleted: true}
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	data, err := p.CancelPayment(context.Background(), SessionData{Charge: &asaas.Charge{ID: "pay_1"}})
	if err != nil {
		t.Fatalf("CancelPayment: %v", err)
	}
	if g.cancels != 1 {
		t.Errorf("gateway cancel called %d times, want 1", g.cancels)
	}
	if !data.Charge.Deleted {
		t.Error("session charge not refreshed after the cancel")
	}
}

func TestPixProcessor_RefundSendsDescription(t *testing.T) {
	g := newFakeGateway(t)
	g.charge = asaas.Charge{ID: "pay_1", Status: asaas.ChargeConfirmed}
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	if _, err := p.RefundPayment(context.Background(), SessionData{Charge: &asaas.Charge{ID: "pay_1"}}, 1000); err != nil {
		t.Fatalf("RefundPayment: %v", err)
	}
	if len(g.refunds) != 1 {
		t.Fatalf("refunds = %d, want 1", len(g.refunds))
	}
	if g.refunds[0].Value != 10.0 || g.refunds[0].Description != "Refund" {
		t.Errorf("refund = %+v, want value 10.0 with description Refund", g.refunds[0])
	}
}

func TestPixProcessor_GetPaymentStatusUsesPixMapping(t *testing.T) {
	g := newFakeGateway(t)
	g.charge = asaas.Charge{ID: "pay_1", Status: asaas.ChargePending}
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	status, err := p.GetPaymentStatus(context.Background(), SessionData{Charge: &asaas.Charge{ID: "pay_1"}})
	if err != nil {
		t.Fatalf("GetPaymentStatus: %v", err)
	}
	if status != StatusRequiresMore {
		t.Errorf("status = %s, want requires_more for a pending pix charge", status)
	}
}

func TestPixProcessor_ChargelessSessionFailsCleanly(t *testing.T) {
	g := newFakeGateway(t)
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	// The state initiate leaves behind: a customer, no charge yet.
	fresh := SessionData{Customer: asaas.Customer{ID: "cus_pix", CpfCnpj: "12345678909"}}

	pc := testContext()
	pc.SessionData = fresh

	tests := []struct {
		name string
		call func() error
	}{
		{"GetPaymentStatus", func() error {
			_, err := p.GetPaymentStatus(context.Background(), fresh)
			return err
		}},
		{"CancelPayment", func() error {
			_, err := p.CancelPayment(context.Background(), fresh)
			return err
		}},
		{"DeletePayment", func() error {
			_, err := p.DeletePayment(context.Background(), fresh)
			return err
		}},
		{"RetrievePayment", func() error {
			_, err := p.RetrievePayment(context.Background(), fresh)
			return err
		}},
		{"RefundPayment", func() error {
			_, err := p.RefundPayment(context.Background(), fresh, 1000)
			return err
		}},
		{"UpdatePayment", func() error {
			_, err := p.UpdatePayment(context.Background(), pc)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var perr *ProcessorError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *ProcessorError for a session without a charge", err)
			}
		})
	}
}

func TestPixProcessor_CaptureNotImplemented(t *testing.T) {
	g := newFakeGateway(t)
	p := NewPixProcessor(g.client(), &fakeCartTotals{})

	if _, err := p.CapturePayment(context.Background(), SessionData{}); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("err = %v, want ErrNotImplemented", err)
	}
}
