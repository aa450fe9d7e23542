package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/dto"
	"github.com/minivenmo/mini_venmo_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// friendHandler handles HTTP requests for the friend graph.
type friendHandler struct {
	friendService portssvc.FriendSvcFacade
}

// newFriendHandler creates a new friendHandler.
func newFriendHandler(fs portssvc.FriendSvcFacade) *friendHandler {
	return &friendHandler{friendService: fs}
}

// registerFriendRoutes registers routes related to friendships.
func registerFriendRoutes(rg *gin.RouterGroup, friendService portssvc.FriendSvcFacade) {
	h := newFriendHandler(friendService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/:accountID/friends", h.addFriend)
		accounts.GET("/:accountID/friends", h.listFriends)
	}
}

// addFriend creates a symmetric friendship edge. Re-adding an existing edge
// succeeds without effect.
func (h *friendHandler) addFriend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddFriend", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.friendService.AddFriend(c.Request.Context(), accountID, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrSelfFriend):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot befriend self"})
		default:
			logger.Error("Failed to add friend in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add friend"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend added successfully"})
}

// listFriends returns the direct friends of the account in the path.
func (h *friendHandler) listFriends(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	friends, err := h.friendService.FriendsOf(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list friends from service", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list friends"})
		return
	}

	c.JSON(http.StatusOK, dto.ListFriendsResponse{Friends: friends})
}
