package repositories

import (
	"context"

	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
)

// LedgerReader defines read operations over the settled payment log.
type LedgerReader interface {
	// ListRecords returns a fresh snapshot of all payment records,
	// newest first. Each call restarts from the full log.
	ListRecords(ctx context.Context) ([]domain.PaymentRecord, error)
}

// LedgerWriter defines the single mutation the ledger supports.
type LedgerWriter interface {
	// SettlePayment atomically persists both mutated accounts and appends
	// the payment record, assigning its ledger sequence. Either everything
	// is applied or nothing is.
	SettlePayment(ctx context.Context, payer domain.Account, payee domain.Account, record domain.PaymentRecord) (*domain.PaymentRecord, error)
}

// LedgerRepository combines ledger read and write operations.
type LedgerRepository interface {
	LedgerReader
	LedgerWriter
}
