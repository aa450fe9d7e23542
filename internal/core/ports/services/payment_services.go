package services

import (
	"context"

	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentSvcFacade orchestrates transfers between two accounts:
// validate, settle, record.
type PaymentSvcFacade interface {
	// Transfer moves amount from payer to payee, drawing cash first and
	// credit for any shortfall, and appends exactly one ledger record.
	// It is all-or-nothing: on any error no state is mutated.
	Transfer(ctx context.Context, payerID string, payeeID string, amount decimal.Decimal, note string) (*domain.PaymentRecord, error)

	// Charge requests money: the requester becomes the payee and target
	// settles under the same rules as Transfer.
	Charge(ctx context.Context, requesterID string, targetID string, amount decimal.Decimal, note string) (*domain.PaymentRecord, error)
}
