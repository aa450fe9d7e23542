package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/minivenmo/mini_venmo_app/internal/core/domain"
	portsrepo "github.com/minivenmo/mini_venmo_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type friendshipRepository struct {
	pool *pgxpool.Pool
}

// NewFriendshipRepository creates a new repository for the friend graph.
func NewFriendshipRepository(pool *pgxpool.Pool) portsrepo.FriendshipRepository {
	return &friendshipRepository{pool: pool}
}

// SaveFriendship inserts a canonical edge. The unique constraint on
// (account_a, account_b) makes re-adding an existing edge a no-op.
func (r *friendshipRepository) SaveFriendship(ctx context.Context, friendship domain.Friendship) (bool, error) {
	query := `
		INSERT INTO friendships (friendship_id, account_a, account_b, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query,
		friendship.FriendshipID,
		friendship.AccountA,
		friendship.AccountB,
		friendship.ActorID,
		friendship.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return false, nil
		}
		return false, fmt.Errorf("failed to save friendship %s: %w", friendship.FriendshipID, err)
	}
	return true, nil
}

// AreFriends reports whether a canonical edge exists between the two accounts.
func (r *friendshipRepository) AreFriends(ctx context.Context, a string, b string) (bool, error) {
	lo, hi := domain.CanonicalPair(a, b)
	query := `SELECT EXISTS(SELECT 1 FROM friendships WHERE account_a = $1 AND account_b = $2);`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, lo, hi).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

// ListFriendIDs returns the direct friends of accountID.
func (r *friendshipRepository) ListFriendIDs(ctx context.Context, accountID string) ([]string, error) {
	query := `
		SELECT CASE WHEN account_a = $1 THEN account_b ELSE account_a END
		FROM friendships
		WHERE account_a = $1 OR account_b = $1
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends of %s: %w", accountID, err)
	}
	defer rows.Close()

	var friends []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan friend row: %w", err)
		}
		friends = append(friends, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading friend rows: %w", err)
	}
	return friends, nil
}

// ListFriendships returns all edges, newest first.
func (r *friendshipRepository) ListFriendships(ctx context.Context) ([]domain.Friendship, error) {
	query := `
		SELECT friendship_id, account_a, account_b, actor_id, created_at
		FROM friendships
		ORDER BY created_at DESC, friendship_id DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	defer rows.Close()

	var edges []domain.Friendship
	for rows.Next() {
		var edge domain.Friendship
		err := rows.Scan(
			&edge.FriendshipID,
			&edge.AccountA,
			&edge.AccountB,
			&edge.ActorID,
			&edge.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friendship row: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading friendship rows: %w", err)
	}
	return edges, nil
}
