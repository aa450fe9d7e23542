package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/dto"
	"github.com/minivenmo/mini_venmo_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService is the registry collaborator: it owns account creation and
// lookup. Balances are only ever mutated by the payment service.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account. The caller may supply an id; when
// empty a UUID is generated. A nil creditLimit means no credit fallback.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrInvalidAmount)
	}
	if req.CreditLimit != nil && req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrInvalidAmount)
	}

	accountID := req.AccountID
	if accountID == "" {
		accountID = uuid.NewString()
	}

	account := domain.Account{
		AccountID: accountID,
		Name:      req.Name,
		Balance:   req.InitialBalance,
		CreatedAt: time.Now().UTC(),
	}
	if req.CreditLimit != nil {
		account.Credit = &domain.CreditCard{
			Limit: *req.CreditLimit,
			Used:  decimal.Zero,
		}
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		}
		return nil, err
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()), slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}
