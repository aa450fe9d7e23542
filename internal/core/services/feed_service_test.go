package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/adapters/memory"
	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

// FeedServiceTestSuite seeds the store directly with explicit timestamps so
// ordering assertions are deterministic.
type FeedServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.FeedSvcFacade
	base    time.Time
}

func (suite *FeedServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.service = services.NewFeedService(suite.store, suite.store, suite.store)
	suite.base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	names := map[string]string{"a": "Alice", "b": "Bob", "c": "Carol", "d": "Dave"}
	for id, name := range names {
		err := suite.store.SaveAccount(context.Background(), domain.Account{AccountID: id, Name: name})
		suite.Require().NoError(err)
	}
}

func (suite *FeedServiceTestSuite) seedPayment(payerID, payeeID, amount, note string, offset time.Duration) {
	ctx := context.Background()
	payer, err := suite.store.FindAccountByID(ctx, payerID)
	suite.Require().NoError(err)
	payee, err := suite.store.FindAccountByID(ctx, payeeID)
	suite.Require().NoError(err)

	record := domain.PaymentRecord{
		RecordID:      payerID + "-" + payeeID + "-" + amount,
		PayerID:       payerID,
		PayeeID:       payeeID,
		Amount:        mustDec(amount),
		Note:          note,
		FundingSource: domain.FundingBalance,
		CreatedAt:     suite.base.Add(offset),
	}
	_, err = suite.store.SettlePayment(ctx, *payer, *payee, record)
	suite.Require().NoError(err)
}

func (suite *FeedServiceTestSuite) seedFriendship(a, b string, offset time.Duration) {
	edge := domain.NewFriendship(a+"-"+b, a, b, suite.base.Add(offset))
	_, err := suite.store.SaveFriendship(context.Background(), edge)
	suite.Require().NoError(err)
}

func (suite *FeedServiceTestSuite) TestRenderFeed_OneHopVisibility() {
	ctx := context.Background()
	suite.seedFriendship("a", "b", 0)
	suite.seedFriendship("d", "a", time.Minute)
	suite.seedPayment("a", "b", "5", "lunch", 2*time.Minute)

	paymentLine := "Alice paid Bob $5.00 for lunch"

	// Parties see it.
	for _, viewer := range []string{"a", "b"} {
		feed, err := suite.service.RenderFeed(ctx, viewer)
		suite.Require().NoError(err)
		suite.Contains(feed, paymentLine)
	}

	// Dave is a friend of the payer: visible.
	feed, err := suite.service.RenderFeed(ctx, "d")
	suite.Require().NoError(err)
	suite.Contains(feed, paymentLine)

	// Carol is friends with neither party: not visible.
	feed, err = suite.service.RenderFeed(ctx, "c")
	suite.Require().NoError(err)
	suite.NotContains(feed, paymentLine)
}

func (suite *FeedServiceTestSuite) TestRenderFeed_NewestFirst() {
	ctx := context.Background()
	suite.seedPayment("a", "b", "1", "first", 0)
	suite.seedPayment("a", "b", "2", "second", time.Minute)
	suite.seedPayment("b", "a", "3", "third", 2*time.Minute)

	feed, err := suite.service.RenderFeed(ctx, "a")
	suite.Require().NoError(err)

	suite.Equal([]string{
		"Bob paid Alice $3.00 for third",
		"Alice paid Bob $2.00 for second",
		"Alice paid Bob $1.00 for first",
	}, feed)
}

func (suite *FeedServiceTestSuite) TestRenderFeed_IncludesFriendshipEvents() {
	ctx := context.Background()
	suite.seedFriendship("a", "b", 0)
	suite.seedPayment("a", "b", "5", "", time.Minute)

	feed, err := suite.service.RenderFeed(ctx, "a")
	suite.Require().NoError(err)

	suite.Equal([]string{
		"Alice paid Bob $5.00",
		"Alice added Bob as a friend",
	}, feed)
}

func (suite *FeedServiceTestSuite) TestRenderFeed_FriendshipEventHiddenFromStrangers() {
	ctx := context.Background()
	suite.seedFriendship("a", "b", 0)

	feed, err := suite.service.RenderFeed(ctx, "c")
	suite.Require().NoError(err)
	suite.Empty(feed)
}

func (suite *FeedServiceTestSuite) TestRenderGlobalFeed_IncludesEverything() {
	ctx := context.Background()
	suite.seedFriendship("a", "b", 0)
	suite.seedPayment("c", "d", "7.5", "gas", time.Minute)

	feed, err := suite.service.RenderGlobalFeed(ctx)
	suite.Require().NoError(err)

	suite.Equal([]string{
		"Carol paid Dave $7.50 for gas",
		"Alice added Bob as a friend",
	}, feed)
}

func (suite *FeedServiceTestSuite) TestAccountActivity_DirectInvolvementOnly() {
	ctx := context.Background()
	suite.seedFriendship("a", "b", 0)
	suite.seedPayment("a", "b", "5", "lunch", time.Minute)
	suite.seedPayment("c", "d", "9", "taxi", 2*time.Minute)

	activity, err := suite.service.AccountActivity(ctx, "a")
	suite.Require().NoError(err)

	suite.Equal([]string{
		"Alice paid Bob $5.00 for lunch",
		"Alice added Bob as a friend",
	}, activity)
}

func (suite *FeedServiceTestSuite) TestRenderFeed_EmptyForNewAccount() {
	feed, err := suite.service.RenderFeed(context.Background(), "c")
	suite.Require().NoError(err)
	suite.NotNil(feed)
	suite.Empty(feed)
}

func TestFeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeedServiceTestSuite))
}
