package services

import "context"

// FriendSvcFacade manages the undirected friend graph used for feed visibility.
type FriendSvcFacade interface {
	// AddFriend creates a symmetric edge between the two accounts.
	// Adding an existing edge is a no-op, not an error.
	AddFriend(ctx context.Context, accountID string, friendID string) error

	// AreFriends reports whether the two accounts share an edge.
	AreFriends(ctx context.Context, a string, b string) (bool, error)

	// FriendsOf returns the ids of the direct friends of accountID.
	FriendsOf(ctx context.Context, accountID string) ([]string, error)
}
