package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundingSource indicates which resource(s) covered a settled payment.
type FundingSource string

const (
	FundingBalance          FundingSource = "BALANCE"
	FundingCredit           FundingSource = "CREDIT"
	FundingBalanceAndCredit FundingSource = "BALANCE_AND_CREDIT"
)

// PaymentRecord is a single settled payment in the ledger.
// Records are immutable once appended; the ledger never edits or removes them.
type PaymentRecord struct {
	RecordID      string          `json:"recordID"` // Primary Key (e.g., UUID)
	Sequence      int64           `json:"sequence"` // Assigned on append, strictly increasing
	PayerID       string          `json:"payerID"`  // FK -> Account.AccountID
	PayeeID       string          `json:"payeeID"`  // FK -> Account.AccountID
	Amount        decimal.Decimal `json:"amount"`   // Positive
	Note          string          `json:"note"`     // Free-form, may be empty
	FundingSource FundingSource   `json:"fundingSource"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Involves reports whether the account is a direct party to the payment.
func (r *PaymentRecord) Involves(accountID string) bool {
	return r.PayerID == accountID || r.PayeeID == accountID
}
