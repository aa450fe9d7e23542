package pgsql

import (
	"context"
	"fmt"

	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new repository for the payment ledger.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &ledgerRepository{pool: pool}
}

// SettlePayment updates both account rows and inserts the payment record in
// a single database transaction. The bigserial sequence column provides the
// strictly increasing ledger order.
func (r *ledgerRepository) SettlePayment(ctx context.Context, payer domain.Account, payee domain.Account, record domain.PaymentRecord) (*domain.PaymentRecord, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	updateQuery := `
		UPDATE accounts SET balance = $2, credit_used = $3 WHERE account_id = $1;
	`
	var payerCreditUsed *decimal.Decimal
	if payer.Credit != nil {
		payerCreditUsed = &payer.Credit.Used
	}
	if _, err := tx.Exec(ctx, updateQuery, payer.AccountID, payer.Balance, payerCreditUsed); err != nil {
		return nil, fmt.Errorf("failed to update payer account %s: %w", payer.AccountID, err)
	}

	var payeeCreditUsed *decimal.Decimal
	if payee.Credit != nil {
		payeeCreditUsed = &payee.Credit.Used
	}
	if _, err := tx.Exec(ctx, updateQuery, payee.AccountID, payee.Balance, payeeCreditUsed); err != nil {
		return nil, fmt.Errorf("failed to update payee account %s: %w", payee.AccountID, err)
	}

	insertQuery := `
		INSERT INTO payments (record_id, payer_id, payee_id, amount, note, funding_source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING sequence;
	`
	err = tx.QueryRow(ctx, insertQuery,
		record.RecordID,
		record.PayerID,
		record.PayeeID,
		record.Amount,
		record.Note,
		string(record.FundingSource),
		record.CreatedAt,
	).Scan(&record.Sequence)
	if err != nil {
		return nil, fmt.Errorf("failed to append payment record %s: %w", record.RecordID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return &record, nil
}

// ListRecords returns all payment records, newest first.
func (r *ledgerRepository) ListRecords(ctx context.Context) ([]domain.PaymentRecord, error) {
	query := `
		SELECT sequence, record_id, payer_id, payee_id, amount, note, funding_source, created_at
		FROM payments
		ORDER BY sequence DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}
	defer rows.Close()

	var records []domain.PaymentRecord
	for rows.Next() {
		var rec domain.PaymentRecord
		var source string
		err := rows.Scan(
			&rec.Sequence,
			&rec.RecordID,
			&rec.PayerID,
			&rec.PayeeID,
			&rec.Amount,
			&rec.Note,
			&source,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		rec.FundingSource = domain.FundingSource(source)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading payment rows: %w", err)
	}
	return records, nil
}
