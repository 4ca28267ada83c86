package asaas

type ChargeStatus string

const (
	ChargePending                    ChargeStatus = "PENDING"
	ChargeReceived                   ChargeStatus = "RECEIVED"
	ChargeConfirmed                  ChargeStatus = "CONFIRMED"
	ChargeOverdue                    ChargeStatus = "OVERDUE"
	ChargeRefunded                   ChargeStatus = "REFUNDED"
	ChargeReceivedInCash             ChargeStatus = "RECEIVED_IN_CASH"
	ChargeRefundRequested            ChargeStatus = "REFUND_REQUESTED"
	ChargeRefundInProgress           ChargeStatus = "REFUND_IN_PROGRESS"
	ChargeChargebackRequested        ChargeStatus = "CHARGEBACK_REQUESTED"
	ChargeChargebackDispute          ChargeStatus = "CHARGEBACK_DISPUTE"
	ChargeAwaitingChargebackReversal ChargeStatus = "AWAITING_CHARGEBACK_REVERSAL"
	ChargeDunningRequested           ChargeStatus = "DUNNING_REQUESTED"
	ChargeDunningReceived            ChargeStatus = "DUNNING_RECEIVED"
	ChargeAwaitingRiskAnalysis       ChargeStatus = "AWAITING_RISK_ANALYSIS"
)

type BillingType string

const (
	BillingUndefined  BillingType = "UNDEFINED"
	BillingBoleto     BillingType = "BOLETO"
	BillingCreditCard BillingType = "CREDIT_CARD"
	BillingPix        BillingType = "PIX"
)

// Webhook event kinds Asaas delivers for charges.
const (
	EventPaymentCreated                    = "PAYMENT_CREATED"
	EventPaymentAwaitingRiskAnalysis       = "PAYMENT_AWAITING_RISK_ANALYSIS"
	EventPaymentApprovedByRiskAnalysis     = "PAYMENT_APPROVED_BY_RISK_ANALYSIS"
	EventPaymentReprovedByRiskAnalysis     = "PAYMENT_REPROVED_BY_RISK_ANALYSIS"
	EventPaymentUpdated                    = "PAYMENT_UPDATED"
	EventPaymentConfirmed                  = "PAYMENT_CONFIRMED"
	EventPaymentReceived                   = "PAYMENT_RECEIVED"
	EventPaymentAnticipated                = "PAYMENT_ANTICIPATED"
	EventPaymentOverdue                    = "PAYMENT_OVERDUE"
	EventPaymentDeleted                    = "PAYMENT_DELETED"
	EventPaymentRestored                   = "PAYMENT_RESTORED"
	EventPaymentRefunded                   = "PAYMENT_REFUNDED"
	EventPaymentRefundInProgress           = "PAYMENT_REFUND_IN_PROGRESS"
	EventPaymentReceivedInCashUndone       = "PAYMENT_RECEIVED_IN_CASH_UNDONE"
	EventPaymentChargebackRequested        = "PAYMENT_CHARGEBACK_REQUESTED"
	EventPaymentChargebackDispute          = "PAYMENT_CHARGEBACK_DISPUTE"
	EventPaymentAwaitingChargebackReversal = "PAYMENT_AWAITING_CHARGEBACK_REVERSAL"
	EventPaymentDunningReceived            = "PAYMENT_DUNNING_RECEIVED"
	EventPaymentDunningRequested           = "PAYMENT_DUNNING_REQUESTED"
	EventPaymentBankSlipViewed             = "PAYMENT_BANK_SLIP_VIEWED"
	EventPaymentCheckoutViewed             = "PAYMENT_CHECKOUT_VIEWED"
)

type Customer struct {
	Object               string `json:"object"`
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	CpfCnpj              string `json:"cpfCnpj"`
	Phone                string `json:"phone,omitempty"`
	MobilePhone          string `json:"mobilePhone,omitempty"`
	Deleted              bool   `json:"deleted"`
	ExternalReference    string `json:"externalReference,omitempty"`
	NotificationDisabled bool   `json:"notificationDisabled"`
	PersonType           string `json:"personType,omitempty"`
}

type Refund struct {
	DateCreated           string  `json:"dateCreated"`
	Status                string  `json:"status"`
	Value                 float64 `json:"value"`
	Description           string  `json:"description"`
	TransactionReceiptURL string  `json:"transactionReceiptUrl"`
}

type Chargeback struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type Charge struct {
	Object                string       `json:"object"`
	ID                    string       `json:"id"`
	DateCreated           string       `json:"dateCreated"`
	Customer              string       `json:"customer"`
	PaymentLink           string       `json:"paymentLink,omitempty"`
	DueDate               string       `json:"dueDate,omitempty"`
	Value                 float64      `json:"value,omitempty"`
	NetValue              float64      `json:"netValue,omitempty"`
	BillingType           BillingType  `json:"billingType,omitempty"`
	PixTransaction        string       `json:"pixTransaction,omitempty"`
	Status                ChargeStatus `json:"status,omitempty"`
	Description           string       `json:"description,omitempty"`
	ExternalReference     string       `json:"externalReference,omitempty"`
	OriginalValue         float64      `json:"originalValue,omitempty"`
	PaymentDate           string       `json:"paymentDate,omitempty"`
	ClientPaymentDate     string       `json:"clientPaymentDate,omitempty"`
	TransactionReceiptURL string       `json:"transactionReceiptUrl,omitempty"`
	InvoiceURL            string       `json:"invoiceUrl,omitempty"`
	BankSlipURL           string       `json:"bankSlipUrl,omitempty"`
	InvoiceNumber         string       `json:"invoiceNumber,omitempty"`
	Deleted               bool         `json:"deleted"`
	Anticipated           bool         `json:"anticipated"`
	Chargeback            *Chargeback  `json:"chargeBack,omitempty"`
	Refunds               []Refund     `json:"refunds,omitempty"`
}

type QRCode struct {
	EncodedImage   string `json:"encodedImage"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expirationDate"`
}

// WebhookPayload is the body Asaas posts to the charge hook.
type WebhookPayload struct {
	Event   string `json:"event"`
	Payment Charge `json:"payment"`
}

type ListCustomersParams struct {
	Name    string
	Email   string
	CpfCnpj string
	Limit   int
}

type CustomerList struct {
	Object     string     `json:"object"`
	HasMore    bool       `json:"hasMore"`
	TotalCount int        `json:"totalCount"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
	Data       []Customer `json:"data"`
}

type CreateCustomerParams struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	CpfCnpj           string `json:"cpfCnpj"`
	ExternalReference string `json:"externalReference,omitempty"`
}

type CreateChargeParams struct {
	Customer          string      `json:"customer"`
	BillingType       BillingType `json:"billingType"`
	DueDate           string      `json:"dueDate"`
	Value             float64     `json:"value,omitempty"`
	Description       string      `json:"description,omitempty"`
	ExternalReference string      `json:"externalReference,omitempty"`
}

type UpdateChargeParams struct {
	Customer          string      `json:"customer,omitempty"`
	BillingType       BillingType `json:"billingType,omitempty"`
	Value             float64     `json:"value,omitempty"`
	DueDate           string      `json:"dueDate,omitempty"`
	Description       string      `json:"description,omitempty"`
	ExternalReference string      `json:"externalReference,omitempty"`
}

type RefundChargeParams struct {
	Value       float64 `json:"value,omitempty"`
	Description string  `json:"description,omitempty"`
}

type CancelResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
