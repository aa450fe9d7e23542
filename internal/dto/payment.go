package dto

import (
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayRequest defines the data needed for a payment. The payer comes from the
// request path.
type PayRequest struct {
	TargetID string          `json:"targetID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Note     string          `json:"note"`
}

// ChargeRequest defines the data needed to request money from another
// account. The requester comes from the request path.
type ChargeRequest struct {
	TargetID string          `json:"targetID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Note     string          `json:"note"`
}

// PaymentRecordResponse defines the data returned for a settled payment.
// Mirrors domain.PaymentRecord.
type PaymentRecordResponse struct {
	RecordID      string          `json:"recordID"`
	Sequence      int64           `json:"sequence"`
	PayerID       string          `json:"payerID"`
	PayeeID       string          `json:"payeeID"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	FundingSource string          `json:"fundingSource"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToPaymentRecordResponse converts a domain.PaymentRecord to its DTO.
func ToPaymentRecordResponse(rec *domain.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		RecordID:      rec.RecordID,
		Sequence:      rec.Sequence,
		PayerID:       rec.PayerID,
		PayeeID:       rec.PayeeID,
		Amount:        rec.Amount,
		Note:          rec.Note,
		FundingSource: string(rec.FundingSource),
		CreatedAt:     rec.CreatedAt,
	}
}
