package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/dto"
	"github.com/minivenmo/mini_venmo_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// feedHandler handles HTTP requests for activity feeds.
type feedHandler struct {
	feedService portssvc.FeedSvcFacade
}

// newFeedHandler creates a new feedHandler.
func newFeedHandler(fs portssvc.FeedSvcFacade) *feedHandler {
	return &feedHandler{feedService: fs}
}

// registerFeedRoutes registers feed and activity routes.
func registerFeedRoutes(rg *gin.RouterGroup, feedService portssvc.FeedSvcFacade) {
	h := newFeedHandler(feedService)

	rg.GET("/feed", h.getFeed)
	rg.GET("/accounts/:accountID/activity", h.getActivity)
}

// getFeed renders the global feed, or a personalized one when the accountID
// query parameter is present.
func (h *feedHandler) getFeed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var feed []string
	var err error
	if params.AccountID != "" {
		feed, err = h.feedService.RenderFeed(c.Request.Context(), params.AccountID)
	} else {
		feed, err = h.feedService.RenderGlobalFeed(c.Request.Context())
	}
	if err != nil {
		logger.Error("Failed to render feed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render feed"})
		return
	}

	c.JSON(http.StatusOK, dto.FeedResponse{Feed: feed})
}

// getActivity renders the personal activity feed of the account in the path.
func (h *feedHandler) getActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	activity, err := h.feedService.AccountActivity(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to render account activity", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render activity"})
		return
	}

	c.JSON(http.StatusOK, dto.ActivityResponse{Activity: activity})
}
