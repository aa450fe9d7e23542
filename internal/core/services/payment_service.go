package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portsevt "github.com/minivenmo/mini_venmo_app/internal/core/ports/events"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCompletedTopic is the broker topic for settled payments.
const PaymentCompletedTopic = "payment.completed"

// PaymentCompletedEvent is published after every successful settlement.
type PaymentCompletedEvent struct {
	RecordID      string          `json:"record_id"`
	PayerID       string          `json:"payer_id"`
	PayeeID       string          `json:"payee_id"`
	Amount        decimal.Decimal `json:"amount"`
	FundingSource string          `json:"funding_source"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// accountLocker hands out one mutex per account id so concurrent transfers
// that share an account are serialized.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *accountLocker) lockFor(accountID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.locks[accountID]; !exists {
		l.locks[accountID] = &sync.Mutex{}
	}
	return l.locks[accountID]
}

// lockPair acquires both account locks in sorted-id order so that A paying B
// while B pays A cannot deadlock. The returned func releases both.
func (l *accountLocker) lockPair(a, b string) func() {
	lo, hi := domain.CanonicalPair(a, b)
	first, second := l.lockFor(lo), l.lockFor(hi)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}

// paymentService orchestrates transfers: validate, settle, record.
type paymentService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	publisher   portsevt.Publisher
	locker      *accountLocker
}

// NewPaymentService creates a new PaymentService. publisher may be a no-op
// implementation when no broker is configured.
func NewPaymentService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository, publisher portsevt.Publisher) portssvc.PaymentSvcFacade {
	return &paymentService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
		locker:      newAccountLocker(),
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// Transfer moves amount from payer to payee. Cash balance is drawn first,
// then the credit facility; the payee's balance increases by exactly amount.
// On any error no state is mutated and nothing is appended to the ledger.
func (s *paymentService) Transfer(ctx context.Context, payerID string, payeeID string, amount decimal.Decimal, note string) (*domain.PaymentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if payerID == payeeID {
		return nil, apperrors.ErrSelfTransfer
	}

	// Serialize transfers that share an account. Lock order is by sorted id.
	unlock := s.locker.lockPair(payerID, payeeID)
	defer unlock()

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{payerID, payeeID})
	if err != nil {
		logger.Error("Failed to load accounts for transfer", slog.String("error", err.Error()))
		return nil, err
	}
	payer, ok := accounts[payerID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	payee, ok := accounts[payeeID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}

	// Settle on the loaded copies; nothing is persisted until SettlePayment.
	source, err := payer.Debit(amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Transfer rejected: insufficient funds",
				slog.String("payer_id", payerID),
				slog.String("amount", amount.String()),
				slog.String("available", payer.AvailableFunds().String()),
			)
		}
		return nil, err
	}
	payee.CreditFunds(amount)

	record := domain.PaymentRecord{
		RecordID:      uuid.NewString(),
		PayerID:       payerID,
		PayeeID:       payeeID,
		Amount:        amount,
		Note:          note,
		FundingSource: source,
		CreatedAt:     time.Now().UTC(),
	}

	settled, err := s.ledgerRepo.SettlePayment(ctx, payer, payee, record)
	if err != nil {
		logger.Error("Failed to settle payment", slog.String("error", err.Error()), slog.String("record_id", record.RecordID))
		return nil, err
	}

	logger.Info("Payment settled",
		slog.String("record_id", settled.RecordID),
		slog.Int64("sequence", settled.Sequence),
		slog.String("payer_id", payerID),
		slog.String("payee_id", payeeID),
		slog.String("funding_source", string(settled.FundingSource)),
	)

	s.publishCompleted(ctx, settled)
	return settled, nil
}

// Charge is the mirror operation of Transfer: the requester becomes the
// payee and the target settles under identical rules.
func (s *paymentService) Charge(ctx context.Context, requesterID string, targetID string, amount decimal.Decimal, note string) (*domain.PaymentRecord, error) {
	return s.Transfer(ctx, targetID, requesterID, amount, note)
}

// publishCompleted emits the payment event. Failures are logged only; the
// settlement already happened and is never rolled back for a broker error.
func (s *paymentService) publishCompleted(ctx context.Context, record *domain.PaymentRecord) {
	if s.publisher == nil {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	event := PaymentCompletedEvent{
		RecordID:      record.RecordID,
		PayerID:       record.PayerID,
		PayeeID:       record.PayeeID,
		Amount:        record.Amount,
		FundingSource: string(record.FundingSource),
		OccurredAt:    record.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, PaymentCompletedTopic, event); err != nil {
		logger.Error("Failed to publish payment event", slog.String("error", err.Error()), slog.String("record_id", record.RecordID))
	}
}
