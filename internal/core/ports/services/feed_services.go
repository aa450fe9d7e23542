package services

import "context"

// FeedSvcFacade renders the visibility-filtered, newest-first activity feed.
// All methods are pure reads over the ledger and friend graph.
type FeedSvcFacade interface {
	// RenderFeed returns the entries visible to viewerID: activity the
	// viewer is a party to plus activity involving a direct friend.
	RenderFeed(ctx context.Context, viewerID string) ([]string, error)

	// RenderGlobalFeed returns every activity entry, newest first.
	RenderGlobalFeed(ctx context.Context) ([]string, error)

	// AccountActivity returns only the entries accountID is a direct party to.
	AccountActivity(ctx context.Context, accountID string) ([]string, error)
}
