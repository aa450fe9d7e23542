package dto

// AddFriendRequest defines the data needed to add a friend. The requesting
// account comes from the request path.
type AddFriendRequest struct {
	FriendID string `json:"friendID" binding:"required"`
}

// ListFriendsResponse wraps the direct friends of an account.
type ListFriendsResponse struct {
	Friends []string `json:"friends"`
}
