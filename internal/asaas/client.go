package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError is a non-2xx response from the Asaas API. Asaas reports
// validation problems as a list of {code, description} entries.
type APIError struct {
	StatusCode int
	Errors     []APIErrorEntry
	Body       string
}

type APIErrorEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		descs := make([]string, len(e.Errors))
		for i, entry := range e.Errors {
			descs[i] = entry.Description
		}
		return fmt.Sprintf("asaas: status %d: %s", e.StatusCode, strings.Join(descs, ", "))
	}
	return fmt.Sprintf("asaas: status %d", e.StatusCode)
}

// Code returns the first gateway error code, or the HTTP status as a string.
func (e *APIError) Code() string {
	if len(e.Errors) > 0 && e.Errors[0].Code != "" {
		return e.Errors[0].Code
	}
	return strconv.Itoa(e.StatusCode)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Client) ListCustomers(ctx context.Context, params ListCustomersParams) (CustomerList, error) {
	q := url.Values{}
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.Email != "" {
		q.Set("email", params.Email)
	}
	if params.CpfCnpj != "" {
		q.Set("cpfCnpj", params.CpfCnpj)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/customers"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var out CustomerList
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, params CreateCustomerParams) (Customer, error) {
	var out Customer
	err := c.do(ctx, http.MethodPost, "/customers", params, &out)
	return out, err
}

func (c *Client) CreateCharge(ctx context.Context, params CreateChargeParams) (Charge, error) {
	var out Charge
	err := c.do(ctx, http.MethodPost, "/payments", params, &out)
	return out, err
}

func (c *Client) GetCharge(ctx context.Context, chargeID string) (Charge, error) {
	var out Charge
	err := c.do(ctx, http.MethodGet, "/payments/"+chargeID, nil, &out)
	return out, err
}

func (c *Client) UpdateCharge(ctx context.Context, chargeID string, params UpdateChargeParams) (Charge, error) {
	var out Charge
	err := c.do(ctx, http.MethodPost, "/payments/"+chargeID, params, &out)
	return out, err
}

func (c *Client) CancelCharge(ctx context.Context, chargeID string) (CancelResponse, error) {
	var out CancelResponse
	err := c.do(ctx, http.MethodDelete, "/payments/"+chargeID, nil, &out)
	return out, err
}

func (c *Client) RefundCharge(ctx context.Context, chargeID string, params RefundChargeParams) (Charge, error) {
	var out Charge
	err := c.do(ctx, http.MethodPost, "/payments/"+chargeID+"/refund", params, &out)
	return out, err
}

func (c *Client) GetQRCode(ctx context.Context, chargeID string) (QRCode, error) {
	var out QRCode
	err := c.do(ctx, http.MethodGet, "/payments/"+chargeID+"/pixQrCode", nil, &out)
	return out, err
}

// IsChargePaid reports whether the gateway considers the charge settled.
func IsChargePaid(charge Charge) bool {
	switch charge.Status {
	case ChargeConfirmed, ChargeReceived, ChargeReceivedInCash:
		return true
	}
	return false
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("access_token", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(raw)}

		var wrapper struct {
			Errors []APIErrorEntry `json:"errors"`
		}
		if err := json.Unmarshal(raw, &wrapper); err == nil {
			apiErr.Errors = wrapper.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
