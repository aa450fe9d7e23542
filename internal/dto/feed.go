package dto

// FeedResponse wraps the rendered, newest-first activity feed.
type FeedResponse struct {
	Feed []string `json:"feed"`
}

// ActivityResponse wraps the personal activity feed of a single account.
type ActivityResponse struct {
	Activity []string `json:"activity"`
}

// FeedParams defines query parameters for the feed endpoint.
type FeedParams struct {
	AccountID string `form:"accountID"`
}
