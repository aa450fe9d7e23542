package repositories

import (
	"context"

	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
)

// FriendshipReader defines read operations for the friend graph.
type FriendshipReader interface {
	// AreFriends reports whether an edge exists between the two accounts.
	// The lookup is symmetric; argument order does not matter.
	AreFriends(ctx context.Context, a string, b string) (bool, error)

	// ListFriendIDs returns the ids of the direct friends of accountID.
	ListFriendIDs(ctx context.Context, accountID string) ([]string, error)

	// ListFriendships returns all friendship edges, newest first.
	ListFriendships(ctx context.Context) ([]domain.Friendship, error)
}

// FriendshipWriter defines write operations for the friend graph.
type FriendshipWriter interface {
	// SaveFriendship persists a new edge. Saving an existing edge is a
	// no-op; the bool result reports whether a new edge was created.
	SaveFriendship(ctx context.Context, friendship domain.Friendship) (bool, error)
}

// FriendshipRepository combines friend graph read and write operations.
type FriendshipRepository interface {
	FriendshipReader
	FriendshipWriter
}
