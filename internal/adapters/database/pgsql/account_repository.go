package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &accountRepository{pool: pool}
}

// SaveAccount inserts a new account. The credit columns stay NULL for
// accounts without a credit facility.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, name, balance, credit_limit, credit_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	var creditLimit, creditUsed *decimal.Decimal
	if account.Credit != nil {
		creditLimit = &account.Credit.Limit
		creditUsed = &account.Credit.Used
	}

	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.Balance,
		creditLimit,
		creditUsed,
		account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// scanAccount reads one account row, reassembling the optional credit facility.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	var creditLimit, creditUsed *decimal.Decimal

	err := row.Scan(
		&acc.AccountID,
		&acc.Name,
		&acc.Balance,
		&creditLimit,
		&creditUsed,
		&acc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if creditLimit != nil {
		used := decimal.Zero
		if creditUsed != nil {
			used = *creditUsed
		}
		acc.Credit = &domain.CreditCard{Limit: *creditLimit, Used: used}
	}
	return &acc, nil
}

const accountColumns = "account_id, name, balance, credit_limit, credit_used, created_at"

// FindAccountByID retrieves an account by its ID.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE account_id = $1;`, accountColumns)

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Unknown ids are
// absent from the result map.
func (r *accountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE account_id = ANY($1);`, accountColumns)

	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by IDs: %w", err)
	}
	defer rows.Close()

	found := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		found[acc.AccountID] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}
	return found, nil
}

// ListAccounts retrieves a page of accounts in creation order.
func (r *accountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts ORDER BY created_at, account_id LIMIT $1 OFFSET $2;`, accountColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}
	return accounts, nil
}
