package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
	"github.com/tavo0132/nexo-backend-api/internal/friendship/domain"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const friendshipColumns = `user_low_id, user_high_id, status, requested_by_id, created_at, updated_at`

// Find normalizes the pair before querying, so callers can pass the two
// account ids in any order.
func (r *Repository) Find(ctx context.Context, accountA, accountB string) (*domain.Friendship, error) {
	low, high, _ := domain.NormalizePair(accountA, accountB)

	row := r.db.QueryRow(ctx, `
		SELECT `+friendshipColumns+`
		FROM friendships
		WHERE user_low_id = $1 AND user_high_id = $2
		LIMIT 1
	`, low, high)

	var f domain.Friendship
	err := row.Scan(&f.UserLowID, &f.UserHighID, &f.Status, &f.RequestedByID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find friendship: %w", err)
	}
	return &f, nil
}

// Create relies on the primary key over the canonical pair: when two
// requests race, one insert fails with a unique violation and is reported
// as an already-exists conflict.
func (r *Repository) Create(ctx context.Context, f *domain.Friendship) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO friendships (user_low_id, user_high_id, status, requested_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, f.UserLowID, f.UserHighID, f.Status, f.RequestedByID, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrFriendshipExists
		}
		return fmt.Errorf("failed to create friendship: %w", err)
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, low, high string, status domain.Status,
	requestedByID string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE friendships
		SET status = $3, requested_by_id = $4, updated_at = $5
		WHERE user_low_id = $1 AND user_high_id = $2
	`, low, high, status, requestedByID, at)
	if err != nil {
		return fmt.Errorf("failed to update friendship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}
	return nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID string, status domain.Status) ([]domain.Friendship, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+friendshipColumns+`
		FROM friendships
		WHERE (user_low_id = $1 OR user_high_id = $1)
			AND ($2 = '' OR status = $2)
		ORDER BY updated_at DESC
	`, accountID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	defer rows.Close()

	var friendships []domain.Friendship
	for rows.Next() {
		var f domain.Friendship
		if err := rows.Scan(&f.UserLowID, &f.UserHighID, &f.Status, &f.RequestedByID,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		friendships = append(friendships, f)
	}
	return friendships, rows.Err()
}
