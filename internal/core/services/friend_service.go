package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/middleware"
	"github.com/google/uuid"
)

// friendService manages the undirected friend graph.
type friendService struct {
	accountRepo portsrepo.AccountReader
	friendRepo  portsrepo.FriendshipRepository
}

// NewFriendService creates a new FriendService.
func NewFriendService(accountRepo portsrepo.AccountReader, friendRepo portsrepo.FriendshipRepository) portssvc.FriendSvcFacade {
	return &friendService{accountRepo: accountRepo, friendRepo: friendRepo}
}

var _ portssvc.FriendSvcFacade = (*friendService)(nil)

// AddFriend creates a symmetric edge between the two accounts. Adding an
// existing edge is a no-op.
func (s *friendService) AddFriend(ctx context.Context, accountID string, friendID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if accountID == friendID {
		return apperrors.ErrSelfFriend
	}

	// Both parties must be registered before an edge can exist.
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{accountID, friendID})
	if err != nil {
		logger.Error("Failed to load accounts for friend request", slog.String("error", err.Error()))
		return err
	}
	if _, ok := accounts[accountID]; !ok {
		return apperrors.ErrAccountNotFound
	}
	if _, ok := accounts[friendID]; !ok {
		return apperrors.ErrAccountNotFound
	}

	friendship := domain.NewFriendship(uuid.NewString(), accountID, friendID, time.Now().UTC())
	created, err := s.friendRepo.SaveFriendship(ctx, friendship)
	if err != nil {
		logger.Error("Failed to save friendship", slog.String("error", err.Error()))
		return err
	}
	if created {
		logger.Info("Friendship created", slog.String("account_id", accountID), slog.String("friend_id", friendID))
	}
	return nil
}

func (s *friendService) AreFriends(ctx context.Context, a string, b string) (bool, error) {
	return s.friendRepo.AreFriends(ctx, a, b)
}

func (s *friendService) FriendsOf(ctx context.Context, accountID string) ([]string, error) {
	friends, err := s.friendRepo.ListFriendIDs(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if friends == nil {
		return []string{}, nil
	}
	return friends, nil
}
