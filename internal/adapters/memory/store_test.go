package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/adapters/memory"
	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(id, name string, balance int64) domain.Account {
	return domain.Account{
		AccountID: id,
		Name:      name,
		Balance:   decimal.NewFromInt(balance),
		CreatedAt: time.Now(),
	}
}

func TestStore_SaveAccount_Duplicate(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.SaveAccount(ctx, newAccount("a", "Alice", 100)))
	err := store.SaveAccount(ctx, newAccount("a", "Alice again", 0))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestStore_FindAccountByID_ReturnsCopy(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	acc := newAccount("a", "Alice", 100)
	acc.Credit = &domain.CreditCard{Limit: decimal.NewFromInt(50)}
	require.NoError(t, store.SaveAccount(ctx, acc))

	first, err := store.FindAccountByID(ctx, "a")
	require.NoError(t, err)

	// Mutating the copy must not leak into the store.
	first.Balance = decimal.NewFromInt(-999)
	first.Credit.Used = decimal.NewFromInt(42)

	second, err := store.FindAccountByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, second.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, second.Credit.Used.IsZero())
}

func TestStore_FindAccountByID_NotFound(t *testing.T) {
	store := memory.NewStore()

	_, err := store.FindAccountByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestStore_FindAccountsByIDs_SkipsUnknown(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.SaveAccount(ctx, newAccount("a", "Alice", 0)))

	found, err := store.FindAccountsByIDs(ctx, []string{"a", "ghost"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, "a")
	assert.NotContains(t, found, "ghost")
}

func TestStore_ListAccounts_Paging(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("acc-%d", i)
		require.NoError(t, store.SaveAccount(ctx, newAccount(id, id, 0)))
	}

	page, err := store.ListAccounts(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "acc-1", page[0].AccountID)
	assert.Equal(t, "acc-2", page[1].AccountID)

	// Offset past the end yields an empty, non-nil slice.
	empty, err := store.ListAccounts(ctx, 10, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestStore_SettlePayment_AssignsSequences(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.SaveAccount(ctx, newAccount("a", "Alice", 100)))
	require.NoError(t, store.SaveAccount(ctx, newAccount("b", "Bob", 0)))

	payer, _ := store.FindAccountByID(ctx, "a")
	payee, _ := store.FindAccountByID(ctx, "b")

	record := domain.PaymentRecord{RecordID: "r1", PayerID: "a", PayeeID: "b", Amount: decimal.NewFromInt(10), CreatedAt: time.Now()}
	first, err := store.SettlePayment(ctx, *payer, *payee, record)
	require.NoError(t, err)

	record.RecordID = "r2"
	second, err := store.SettlePayment(ctx, *payer, *payee, record)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Sequence)
	assert.Equal(t, int64(2), second.Sequence)
}

func TestStore_SettlePayment_PersistsAccountState(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.SaveAccount(ctx, newAccount("a", "Alice", 100)))
	require.NoError(t, store.SaveAccount(ctx, newAccount("b", "Bob", 0)))

	payer, _ := store.FindAccountByID(ctx, "a")
	payee, _ := store.FindAccountByID(ctx, "b")
	payer.Balance = decimal.NewFromInt(60)
	payee.Balance = decimal.NewFromInt(40)

	record := domain.PaymentRecord{RecordID: "r1", PayerID: "a", PayeeID: "b", Amount: decimal.NewFromInt(40), CreatedAt: time.Now()}
	_, err := store.SettlePayment(ctx, *payer, *payee, record)
	require.NoError(t, err)

	stored, err := store.FindAccountByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(60)))
}

func TestStore_SettlePayment_UnknownAccount(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.SaveAccount(ctx, newAccount("a", "Alice", 100)))

	record := domain.PaymentRecord{RecordID: "r1", PayerID: "a", PayeeID: "ghost", Amount: decimal.NewFromInt(1)}
	_, err := store.SettlePayment(ctx, newAccount("a", "Alice", 99), newAccount("ghost", "", 1), record)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_ListRecords_NewestFirstSnapshot(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.SaveAccount(ctx, newAccount("a", "Alice", 100)))
	require.NoError(t, store.SaveAccount(ctx, newAccount("b", "Bob", 0)))

	payer, _ := store.FindAccountByID(ctx, "a")
	payee, _ := store.FindAccountByID(ctx, "b")
	for _, id := range []string{"r1", "r2", "r3"} {
		record := domain.PaymentRecord{RecordID: id, PayerID: "a", PayeeID: "b", Amount: decimal.NewFromInt(1), CreatedAt: time.Now()}
		_, err := store.SettlePayment(ctx, *payer, *payee, record)
		require.NoError(t, err)
	}

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "r3", records[0].RecordID)
	assert.Equal(t, "r1", records[2].RecordID)

	// The snapshot is detached from the store.
	records[0].Note = "scribbled on"
	again, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, again[0].Note)
}

func TestStore_SaveFriendship_IdempotentOnCanonicalPair(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()

	created, err := store.SaveFriendship(ctx, domain.NewFriendship("f1", "b", "a", now))
	require.NoError(t, err)
	assert.True(t, created)

	// Same pair, either direction, is the same edge.
	created, err = store.SaveFriendship(ctx, domain.NewFriendship("f2", "a", "b", now))
	require.NoError(t, err)
	assert.False(t, created)

	edges, err := store.ListFriendships(ctx)
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}

func TestStore_AreFriends_EitherOrder(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	_, err := store.SaveFriendship(ctx, domain.NewFriendship("f1", "a", "b", time.Now()))
	require.NoError(t, err)

	ab, err := store.AreFriends(ctx, "a", "b")
	require.NoError(t, err)
	ba, err := store.AreFriends(ctx, "b", "a")
	require.NoError(t, err)
	ac, err := store.AreFriends(ctx, "a", "c")
	require.NoError(t, err)

	assert.True(t, ab)
	assert.True(t, ba)
	assert.False(t, ac)
}

func TestStore_ListFriendIDs(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	_, err := store.SaveFriendship(ctx, domain.NewFriendship("f1", "a", "b", time.Now()))
	require.NoError(t, err)
	_, err = store.SaveFriendship(ctx, domain.NewFriendship("f2", "c", "a", time.Now()))
	require.NoError(t, err)

	friends, err := store.ListFriendIDs(ctx, "a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, friends)

	none, err := store.ListFriendIDs(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, none)
}
