// Package memory provides an in-memory implementation of every repository
// port. It is the default storage when no database is configured and the
// backing store for service tests.
package memory

import (
	"context"
	"sync"

	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
)

// Store holds accounts, the payment ledger and the friend graph behind one
// RWMutex. All reads hand out copies so callers can never mutate internal
// state.
type Store struct {
	mu          sync.RWMutex
	accounts    map[string]domain.Account
	accountIDs  []string // insertion order, for stable listing
	records     []domain.PaymentRecord
	nextSeq     int64
	friendPairs map[[2]string]domain.Friendship
	friendships []domain.Friendship // insertion order
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]domain.Account),
		friendPairs: make(map[[2]string]domain.Friendship),
		nextSeq:     1,
	}
}

var (
	_ portsrepo.AccountRepository    = (*Store)(nil)
	_ portsrepo.LedgerRepository     = (*Store)(nil)
	_ portsrepo.FriendshipRepository = (*Store)(nil)
)

// copyAccount deep-copies an account so the caller's mutations stay local.
func copyAccount(acc domain.Account) domain.Account {
	if acc.Credit != nil {
		credit := *acc.Credit
		acc.Credit = &credit
	}
	return acc
}

// SaveAccount persists a new account, enforcing id uniqueness.
func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return apperrors.ErrDuplicate
	}
	s.accounts[account.AccountID] = copyAccount(account)
	s.accountIDs = append(s.accountIDs, account.AccountID)
	return nil
}

// FindAccountByID retrieves an account by its id.
func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, exists := s.accounts[accountID]
	if !exists {
		return nil, apperrors.ErrAccountNotFound
	}
	acc = copyAccount(acc)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts; unknown ids are absent from
// the result map.
func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, exists := s.accounts[id]; exists {
			found[id] = copyAccount(acc)
		}
	}
	return found, nil
}

// ListAccounts returns accounts in creation order with limit/offset paging.
func (s *Store) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset >= len(s.accountIDs) || limit <= 0 {
		return []domain.Account{}, nil
	}
	end := offset + limit
	if end > len(s.accountIDs) {
		end = len(s.accountIDs)
	}
	accounts := make([]domain.Account, 0, end-offset)
	for _, id := range s.accountIDs[offset:end] {
		accounts = append(accounts, copyAccount(s.accounts[id]))
	}
	return accounts, nil
}

// SettlePayment persists both mutated accounts and appends the record under
// one lock acquisition, so the settlement is atomic and the ledger order
// matches the sequence order.
func (s *Store) SettlePayment(ctx context.Context, payer domain.Account, payee domain.Account, record domain.PaymentRecord) (*domain.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[payer.AccountID]; !exists {
		return nil, apperrors.ErrAccountNotFound
	}
	if _, exists := s.accounts[payee.AccountID]; !exists {
		return nil, apperrors.ErrAccountNotFound
	}

	record.Sequence = s.nextSeq
	s.nextSeq++

	s.accounts[payer.AccountID] = copyAccount(payer)
	s.accounts[payee.AccountID] = copyAccount(payee)
	s.records = append(s.records, record)

	return &record, nil
}

// ListRecords returns a fresh newest-first snapshot of the ledger.
func (s *Store) ListRecords(ctx context.Context) ([]domain.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.PaymentRecord, len(s.records))
	for i, rec := range s.records {
		snapshot[len(s.records)-1-i] = rec
	}
	return snapshot, nil
}

// SaveFriendship persists a new edge; an existing edge is a no-op.
func (s *Store) SaveFriendship(ctx context.Context, friendship domain.Friendship) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]string{friendship.AccountA, friendship.AccountB}
	if _, exists := s.friendPairs[key]; exists {
		return false, nil
	}
	s.friendPairs[key] = friendship
	s.friendships = append(s.friendships, friendship)
	return true, nil
}

// AreFriends reports whether the two accounts share an edge.
func (s *Store) AreFriends(ctx context.Context, a string, b string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := domain.CanonicalPair(a, b)
	_, exists := s.friendPairs[[2]string{lo, hi}]
	return exists, nil
}

// ListFriendIDs returns the direct friends of accountID.
func (s *Store) ListFriendIDs(ctx context.Context, accountID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var friends []string
	for _, edge := range s.friendships {
		if other := edge.Other(accountID); other != "" {
			friends = append(friends, other)
		}
	}
	return friends, nil
}

// ListFriendships returns a fresh newest-first snapshot of all edges.
func (s *Store) ListFriendships(ctx context.Context) ([]domain.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.Friendship, len(s.friendships))
	for i, edge := range s.friendships {
		snapshot[len(s.friendships)-1-i] = edge
	}
	return snapshot, nil
}
