package domain

import "time"

// Friendship is an undirected edge between two accounts. The pair is stored
// in canonical order (AccountA < AccountB) so symmetry is structural rather
// than enforced by convention.
type Friendship struct {
	FriendshipID string    `json:"friendshipID"`
	AccountA     string    `json:"accountA"`
	AccountB     string    `json:"accountB"`
	ActorID      string    `json:"actorID"` // The account that initiated the request
	CreatedAt    time.Time `json:"createdAt"`
}

// CanonicalPair returns the two ids sorted lexicographically.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// NewFriendship builds a canonical friendship edge initiated by actor a.
func NewFriendship(id string, a, b string, now time.Time) Friendship {
	lo, hi := CanonicalPair(a, b)
	return Friendship{
		FriendshipID: id,
		AccountA:     lo,
		AccountB:     hi,
		ActorID:      a,
		CreatedAt:    now,
	}
}

// Involves reports whether the account is one of the two parties.
func (f *Friendship) Involves(accountID string) bool {
	return f.AccountA == accountID || f.AccountB == accountID
}

// Other returns the counterpart of accountID in the edge, or "" if the
// account is not a party.
func (f *Friendship) Other(accountID string) string {
	switch accountID {
	case f.AccountA:
		return f.AccountB
	case f.AccountB:
		return f.AccountA
	}
	return ""
}

// TargetID returns the account that received the friend request.
func (f *Friendship) TargetID() string {
	return f.Other(f.ActorID)
}
