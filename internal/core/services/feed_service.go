package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/middleware"
)

// feedService renders the activity feed: payments from the ledger plus
// friendship events from the friend graph, filtered by one-hop visibility
// and ordered newest first. It never mutates anything.
type feedService struct {
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
	friendRepo  portsrepo.FriendshipReader
}

// NewFeedService creates a new FeedService.
func NewFeedService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader, friendRepo portsrepo.FriendshipReader) portssvc.FeedSvcFacade {
	return &feedService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		friendRepo:  friendRepo,
	}
}

var _ portssvc.FeedSvcFacade = (*feedService)(nil)

// feedItem is one unformatted feed entry; payment when record != nil,
// friendship event otherwise.
type feedItem struct {
	at       time.Time
	sequence int64 // Ledger sequence for payments, 0 for friendship events
	record   *domain.PaymentRecord
	edge     *domain.Friendship
}

// RenderFeed returns the entries visible to viewerID: activity the viewer is
// a party to plus activity where a party is a direct friend of the viewer.
func (s *feedService) RenderFeed(ctx context.Context, viewerID string) ([]string, error) {
	circle := map[string]bool{viewerID: true}
	friends, err := s.friendRepo.ListFriendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, id := range friends {
		circle[id] = true
	}

	visible := func(item feedItem) bool {
		if item.record != nil {
			return circle[item.record.PayerID] || circle[item.record.PayeeID]
		}
		return circle[item.edge.AccountA] || circle[item.edge.AccountB]
	}
	return s.render(ctx, visible)
}

// RenderGlobalFeed returns every activity entry, newest first.
func (s *feedService) RenderGlobalFeed(ctx context.Context) ([]string, error) {
	return s.render(ctx, func(feedItem) bool { return true })
}

// AccountActivity returns only the entries accountID is a direct party to.
func (s *feedService) AccountActivity(ctx context.Context, accountID string) ([]string, error) {
	visible := func(item feedItem) bool {
		if item.record != nil {
			return item.record.Involves(accountID)
		}
		return item.edge.Involves(accountID)
	}
	return s.render(ctx, visible)
}

// render collects a fresh snapshot of all activity, filters it with the
// visibility predicate, orders it newest first and formats each entry.
func (s *feedService) render(ctx context.Context, visible func(feedItem) bool) ([]string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	records, err := s.ledgerRepo.ListRecords(ctx)
	if err != nil {
		logger.Error("Failed to list ledger records for feed", slog.String("error", err.Error()))
		return nil, err
	}
	edges, err := s.friendRepo.ListFriendships(ctx)
	if err != nil {
		logger.Error("Failed to list friendships for feed", slog.String("error", err.Error()))
		return nil, err
	}

	items := make([]feedItem, 0, len(records)+len(edges))
	for i := range records {
		item := feedItem{at: records[i].CreatedAt, sequence: records[i].Sequence, record: &records[i]}
		if visible(item) {
			items = append(items, item)
		}
	}
	for i := range edges {
		item := feedItem{at: edges[i].CreatedAt, edge: &edges[i]}
		if visible(item) {
			items = append(items, item)
		}
	}

	// Newest first; equal timestamps fall back to ledger sequence.
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].at.Equal(items[j].at) {
			return items[i].at.After(items[j].at)
		}
		return items[i].sequence > items[j].sequence
	})

	names, err := s.displayNames(ctx, items)
	if err != nil {
		return nil, err
	}

	feed := make([]string, 0, len(items))
	for _, item := range items {
		feed = append(feed, formatItem(item, names))
	}
	return feed, nil
}

// displayNames resolves every account id referenced by the items to its
// display name. Ids that cannot be resolved render as the raw id.
func (s *feedService) displayNames(ctx context.Context, items []feedItem) (map[string]string, error) {
	idSet := make(map[string]bool)
	for _, item := range items {
		if item.record != nil {
			idSet[item.record.PayerID] = true
			idSet[item.record.PayeeID] = true
		} else {
			idSet[item.edge.AccountA] = true
			idSet[item.edge.AccountB] = true
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, acc := range accounts {
		names[id] = acc.Name
	}
	return names, nil
}

func displayName(names map[string]string, accountID string) string {
	if name, ok := names[accountID]; ok && name != "" {
		return name
	}
	return accountID
}

// formatItem renders one entry. The verb stays "paid" regardless of funding
// source; funding is bookkeeping only and never surfaced here.
func formatItem(item feedItem, names map[string]string) string {
	if item.record != nil {
		payer := displayName(names, item.record.PayerID)
		payee := displayName(names, item.record.PayeeID)
		amount := item.record.Amount.StringFixed(2)
		if item.record.Note == "" {
			return fmt.Sprintf("%s paid %s $%s", payer, payee, amount)
		}
		return fmt.Sprintf("%s paid %s $%s for %s", payer, payee, amount, item.record.Note)
	}
	actor := displayName(names, item.edge.ActorID)
	target := displayName(names, item.edge.TargetID())
	return fmt.Sprintf("%s added %s as a friend", actor, target)
}
