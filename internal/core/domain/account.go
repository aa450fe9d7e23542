package domain

import (
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CreditCard represents an account's credit facility: a fixed maximum limit
// and the amount currently drawn against it.
type CreditCard struct {
	Limit decimal.Decimal `json:"limit"` // Fixed at creation
	Used  decimal.Decimal `json:"used"`  // Invariant: 0 <= Used <= Limit
}

// Available returns the headroom left on the facility.
func (c *CreditCard) Available() decimal.Decimal {
	return c.Limit.Sub(c.Used)
}

// Draw increases Used by amount. The caller is expected to have checked the
// headroom; Draw still refuses to breach the limit.
func (c *CreditCard) Draw(amount decimal.Decimal) error {
	if amount.GreaterThan(c.Available()) {
		return apperrors.ErrInsufficientFunds
	}
	c.Used = c.Used.Add(amount)
	return nil
}

// Account represents a participant in the payment system within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (e.g., UUID), immutable
	Name      string          `json:"name"`      // Display name used in rendered feeds
	Balance   decimal.Decimal `json:"balance"`   // Cash balance; invariant: never negative
	Credit    *CreditCard     `json:"credit"`    // Optional credit facility; nil means no credit fallback
	CreatedAt time.Time       `json:"createdAt"`
}

// AvailableFunds returns the total the account can spend: cash balance plus
// remaining credit headroom if a facility exists.
func (a *Account) AvailableFunds() decimal.Decimal {
	total := a.Balance
	if a.Credit != nil {
		total = total.Add(a.Credit.Available())
	}
	return total
}

// CanCover reports whether the account can fund a payment of amount. No side effect.
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return a.AvailableFunds().GreaterThanOrEqual(amount)
}

// Debit draws amount from the account, cash balance first and any shortfall
// from the credit facility, and reports which resource(s) covered it.
// If the account cannot cover the amount it returns
// apperrors.ErrInsufficientFunds and leaves the account unchanged.
func (a *Account) Debit(amount decimal.Decimal) (FundingSource, error) {
	if !a.CanCover(amount) {
		return "", apperrors.ErrInsufficientFunds
	}

	fromBalance := decimal.Min(a.Balance, amount)
	fromCredit := amount.Sub(fromBalance)

	if fromCredit.IsPositive() {
		if err := a.Credit.Draw(fromCredit); err != nil {
			return "", err
		}
	}
	a.Balance = a.Balance.Sub(fromBalance)

	switch {
	case fromCredit.IsZero():
		return FundingBalance, nil
	case fromBalance.IsZero():
		return FundingCredit, nil
	default:
		return FundingBalanceAndCredit, nil
	}
}

// CreditFunds adds amount to the cash balance. Receiving funds never fails.
func (a *Account) CreditFunds(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}
