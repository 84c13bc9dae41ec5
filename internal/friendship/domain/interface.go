package domain

//go:generate mockgen -destination=../../mocks/mock_friendship_repository.go -package=mocks -mock_names=Repository=MockFriendshipRepository github.com/tavo0132/nexo-backend-api/internal/friendship/domain Repository

import (
	"context"
	"time"
)

// Repository persists friendships keyed by the canonical pair. Find returns
// (nil, nil) when no row exists. Create surfaces a duplicate canonical pair
// as errors.ErrFriendshipExists so concurrent requests resolve to one row.
type Repository interface {
	Find(ctx context.Context, accountA, accountB string) (*Friendship, error)
	Create(ctx context.Context, f *Friendship) error
	// UpdateStatus rewrites status and requester for the canonical pair.
	UpdateStatus(ctx context.Context, low, high string, status Status, requestedByID string, at time.Time) error
	// ListByAccount returns every friendship the account participates in,
	// optionally filtered by status (empty = all), newest update first.
	ListByAccount(ctx context.Context, accountID string, status Status) ([]Friendship, error)
}
