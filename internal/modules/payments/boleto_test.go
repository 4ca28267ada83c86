package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"registryshop.com/app/internal/asaas"
)

// fakeGateway is a minimal Asaas stand-in recording the requests the
// processors make.
type fakeGateway struct {
	mux *http.ServeMux
	srv *httptest.Server

	customers      []asaas.Customer
	createdCharges []asaas.CreateChargeParams
	updatedCharges []asaas.UpdateChargeParams
	charge         asaas.Charge
	cancels        int
	refunds        []asaas.RefundChargeParams
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()

	g := &fakeGateway{mux: http.NewServeMux()}

	g.mux.HandleFunc("GET /customers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, asaas.CustomerList{TotalCount: len(g.customers), Data: g.customers})
	})
	g.mux.HandleFunc("POST /customers", func(w http.ResponseWriter, r *http.Request) {
		var params asaas.CreateCustomerParams
		_ = json.NewDecoder(r.Body).Decode(&params)
		writeJSON(w, asaas.Customer{
			ID:      "cus_new",
			Name:    params.Name,
			Email:   params.Email,
			CpfCnpj: params.CpfCnpj,
		})
	})
	g.mux.HandleFunc("POST /payments", func(w http.ResponseWriter, r *http.Request) {
		var params asaas.CreateChargeParams
		_ = json.NewDecoder(r.Body).Decode(&params)
		g.createdCharges = append(g.createdCharges, params)
		g.charge = asaas.Charge{
			ID:                "pay_1",
			Customer:          params.Customer,
			BillingType:       params.BillingType,
			Value:             params.Value,
			Status:            asaas.ChargePending,
			ExternalReference: params.ExternalReference,
		}
		writeJSON(w, g.charge)
	})
	g.mux.HandleFunc("GET /payments/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, g.charge)
	})
	g.mux.HandleFunc("POST /payments/{id}", func(w http.ResponseWriter, r *http.Request) {
		var params asaas.UpdateChargeParams
		_ = json.NewDecoder(r.Body).Decode(&params)
		g.updatedCharges = append(g.updatedCharges, params)
		if params.Value != 0 {
			g.charge.Value = params.Value
		}
		writeJSON(w, g.charge)
	})
	g.mux.HandleFunc("DELETE /payments/{id}", func(w http.ResponseWriter, r *http.Request) {
		g.cancels++
		writeJSON(w, asaas.CancelResponse{Deleted: true, ID: r.PathValue("id")})
	})
	g.mux.HandleFunc("POST /payments/{id}/refund", func(w http.ResponseWriter, r *http.Request) {
		var params asaas.RefundChargeParams
		_ = json.NewDecoder(r.Body).Decode(&params)
		g.refunds = append(g.refunds, params)
		g.charge.Status = asaas.ChargeRefunded
		writeJSON(w, g.charge)
	})
	g.mux.HandleFunc("GET /payments/{id}/pixQrCode", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, asaas.QRCode{EncodedImage: "aW1n", Payload: "00020126q"})
	})

	g.srv = httptest.NewServer(g.mux)
	t.Cleanup(g.srv.Close)
	return g
}

func (g *fakeGateway) client() *asaas.Client {
	return asaas.NewClient(g.srv.URL, "test-key")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testContext() Context {
	return Context{
		CartID:      "cart_123",
		AmountCents: 5000,
		Email:       "guest@example.com",
		Customer: Customer{
			ID:        "host_cus_1",
			FirstName: "Ana",
			LastName:  "Silva",
			Email:     "guest@example.com",
			CPF:       "12345678909",
		},
	}
}

func TestAsaasProcessor_InitiatePayment_RequiresCPF(t *testing.T) {
	g := newFakeGateway(t)
	p := NewAsaasProcessor(g.client())

	pc := testContext()
	pc.Customer.CPF = ""

	_, err := p.InitiatePayment(context.Background(), pc)
	if !errors.Is(err, ErrMissingCPF) {
		t.Fatalf("err = %v, want ErrMissingCPF", err)
	}
}

func TestAsaasProcessor_InitiatePayment_ExistingCustomer(t *testing.T) {
	g := newFakeGateway(t)
	g.customers = []asaas.Customer{{ID: "cus_1", CpfCnpj: "12345678909"}}
	p := NewAsaasProcessor(g.client())

	data, err := p.InitiatePayment(context.Background(), testContext())
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}

	if data.Customer.ID != "cus_1" {
		t.Errorf("customer = %q, want the existing cus_1", data.Customer.ID)
	}
	if data.Charge == nil {
		t.Fatal("no charge in session data")
	}
	if len(g.createdCharges) != 1 {
		t.Fatalf("created %d charges, want 1", len(g.createdCharges))
	}

	created := g.createdCharges[0]
	if created.BillingType != asaas.BillingUndefined {
		t.Errorf("billing type = %s, want UNDEFINED", created.BillingType)
	}
	if created.Value != 50.0 {
		t.Errorf("charge value = %v, want 50.0", created.Value)
	}
	if created.ExternalReference != "cart_123" {
		t.Errorf("external reference = %q, want the cart id", created.ExternalReference)
	}
}

func TestAsaasProcessor_InitiatePayment_CreatesCustomer(t *testing.T) {
	g := newFakeGateway(t)
	p := NewAsaasProcessor(g.client())

	data, err := p.InitiatePayment(context.Background(), testContext())
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if data.Customer.ID != "cus_new" {
		t.Errorf("customer = %q, want the newly created cus_new", data.Customer.ID)
	}
	if data.Customer.CpfCnpj != "12345678909" {
		t.Errorf("customer cpf = %q, want the checkout cpf", data.Customer.CpfCnpj)
	}
}

func TestAsaasProcessor_GatewayErrorBecomesProcessorError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /customers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"code":"invalid_cpfCnpj","description":"CPF invalido"}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewAsaasProcessor(asaas.NewClient(srv.URL, "test-key"))

	_, err := p.InitiatePayment(context.Background(), testContext())
	var perr *ProcessorError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %T, want *ProcessorError", err)
	}
	if perr.Code != "invalid_cpfCnpj" {
		t.Errorf("code = %q, want the gateway's error code", perr.Code)
	}
	if perr.Detail != "CPF invalido" {
		t.Errorf("detail = %q, want the gateway's description", perr.Detail)
	}
}

func TestAsaasProcessor_GetPaymentStatus(t *testing.T) {
	g := newFakeGateway(t)
	g.charge = asaas.Charge{ID: "pay_1", Status: asaas.ChargeOverdue}
	p := NewAsaasProcessor(g.client())

	status, err := p.GetPaymentStatus(context.Background(), SessionData{Charge: &asaas.Charge{ID: "pay_1"}})
	if err != nil {
		t.Fatalf("GetPaymentStatus: %v", err)
	}
	if status != StatusCanceled {
		t.Errorf("status = %s, want canceled for an overdue charge", status)
	}
}

func TestAsaasProcessor_CancelDelegatesToDelete(t *testing.T) {
	g := newFakeGateway(t)
	p := NewAsaasProcessor(g.client())

	if _, err := p.CancelPayment(context.Background(), SessionData{Charge: &asaas.Charge{ID: "pay_1"}}); err != nil {
		t.Fatalf("CancelPayment: %v", err)
	}
	if g.cancels != 1 {
		t.Errorf("gateway cancel called %d times, want 1", g.cancels)
	}
}

func TestAsaasProcessor_RefundPayment(t *testing.T) {
	g := newFakeGateway(t)
	g.charge = asaas.Charge{ID: "pay_1", Status: asaas.ChargeConfirmed}
	p := NewAsaasProcessor(g.client())

	data, err := p.RefundPayment(context.Background(), SessionData{Charge: &asaas.Charge{ID: "pay_1"}}, 2500)
	if err != nil {
		t.Fatalf("RefundPayment: %v", err)
	}
	if len(g.refunds) != 1 || g.refunds[0].Value != 25.0 {
		t.Errorf("refunds = %+v, want one refund of 25.0", g.refunds)
	}
	if data.Charge.Status != asaas.ChargeRefunded {
		t.Errorf("session charge status = %s, want the refreshed REFUNDED snapshot", data.Charge.Status)
	}
}

func TestAsaasProcessor_ChargelessSessionFailsCleanly(t *testing.T) {
	g := newFakeGateway(t)
	p := NewAsaasProcessor(g.client())

	fresh := SessionData{Customer: asaas.Customer{ID: "cus_1", CpfCnpj: "12345678909"}}

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
		{"RetrievePayment", func() error {
			_, err := p.RetrievePayment(context.Background(), fresh)
			return err
		}},
		{"UpdatePayment", func() error {
			_, err := p.UpdatePayment(context.Background(), pc)
			return err
		}},
		{"DeletePayment", func() error {
			_, err := p.DeletePayment(context.Background(), fresh)
			return err
		}},
		{"CancelPayment", func() error {
			_, err := p.CancelPayment(context.Background(), fresh)
			return err
		}},
		{"RefundPayment", func() error {
			_, err := p.RefundPayment(context.Background(), fresh, 1000)
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

func TestAsaasProcessor_UpdatePaymentDataNotImplemented(t *testing.T) {
	g := newFakeGateway(t)
	p := NewAsaasProcessor(g.client())

	_, err := p.UpdatePaymentData(context.Background(), "sess_1", nil)
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("err = %v, want ErrNotImplemented", err)
	}
}
