package payments

import "registryshop.com/app/internal/asaas"

// SessionStatus is the authorization lifecycle the host framework tracks
// for a payment session.
type SessionStatus string

const (
	StatusAuthorized   SessionStatus = "authorized"
	StatusPending      SessionStatus = "pending"
	StatusCanceled     SessionStatus = "canceled"
	StatusRequiresMore SessionStatus = "requires_more"
	StatusError        SessionStatus = "error"
)

// MapChargeStatus maps a gateway charge status for the unified processor,
// which lets the customer pick the billing method and therefore cannot
// distinguish "waiting on the customer" from plain pending. Unknown
// statuses stay pending rather than failing.
func MapChargeStatus(status asaas.ChargeStatus) SessionStatus {
	switch status {
	case asaas.ChargePending,
		asaas.ChargeReceived,
		asaas.ChargeConfirmed,
		asaas.ChargeReceivedInCash:
		return StatusAuthorized
	case asaas.ChargeOverdue,
		asaas.ChargeRefunded,
		asaas.ChargeRefundRequested,
		asaas.ChargeRefundInProgress,
		asaas.ChargeChargebackRequested,
		asaas.ChargeChargebackDispute,
		asaas.ChargeAwaitingChargebackReversal,
		asaas.ChargeDunningRequested,
		asaas.ChargeDunningReceived,
		asaas.ChargeAwaitingRiskAnalysis:
		return StatusCanceled
	default:
		return StatusPending
	}
}

// MapPixChargeStatus is the PIX processor's finer-grained table. A pending
// PIX charge means the customer still has to scan the QR code, so it maps
// to requires-more instead of authorized. Kept separate from
// MapChargeStatus: the two methods expose different settlement timing to
// the host, the overlap is not incidental duplication.
func MapPixChargeStatus(status asaas.ChargeStatus) SessionStatus {
	switch status {
	case asaas.ChargePending:
		return StatusRequiresMore
	case asaas.ChargeReceived,
		asaas.ChargeConfirmed,
		asaas.ChargeReceivedInCash:
		return StatusAuthorized
	case asaas.ChargeOverdue:
		return StatusError
	case asaas.ChargeRefunded,
		asaas.ChargeRefundRequested,
		asaas.ChargeRefundInProgress,
		asaas.ChargeChargebackRequested,
		asaas.ChargeChargebackDispute,
		asaas.ChargeAwaitingChargebackReversal,
		asaas.ChargeDunningRequested,
		asaas.ChargeDunningReceived:
		return StatusCanceled
	case asaas.ChargeAwaitingRiskAnalysis:
		// Treated as authorized: Asaas risk review is manual and rare.
		return StatusAuthorized
	default:
		return StatusError
	}
}
