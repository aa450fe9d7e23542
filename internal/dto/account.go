package dto

import (
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to register a new account.
type CreateAccountRequest struct {
	AccountID      string           `json:"accountID"` // Optional, generated when empty
	Name           string           `json:"name" binding:"required"`
	InitialBalance decimal.Decimal  `json:"initialBalance"` // Optional, defaults to zero
	CreditLimit    *decimal.Decimal `json:"creditLimit"`    // Optional; nil means no credit facility
}

// CreditCardResponse mirrors domain.CreditCard.
type CreditCardResponse struct {
	Limit decimal.Decimal `json:"limit"`
	Used  decimal.Decimal `json:"used"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID string              `json:"accountID"`
	Name      string              `json:"name"`
	Balance   decimal.Decimal     `json:"balance"`
	Credit    *CreditCardResponse `json:"credit,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID: acc.AccountID,
		Name:      acc.Name,
		Balance:   acc.Balance,
		CreatedAt: acc.CreatedAt,
	}
	if acc.Credit != nil {
		resp.Credit = &CreditCardResponse{
			Limit: acc.Credit.Limit,
			Used:  acc.Credit.Used,
		}
	}
	return resp
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
