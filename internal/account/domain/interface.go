package domain

//go:generate mockgen -destination=../../mocks/mock_account_repository.go -package=mocks -mock_names=Repository=MockAccountRepository github.com/tavo0132/nexo-backend-api/internal/account/domain Repository

import (
	"context"
	"time"
)

// Repository is the persistence contract for accounts and their credentials.
// Finders return (nil, nil) when no row matches; uniqueness violations on
// insert/update surface as the conflict errors from internal/errors.
type Repository interface {
	// Create persists the account together with its credential in a single
	// transaction so no account can exist without one.
	Create(ctx context.Context, account *Account, cred *Credential) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// FindByLogin matches either the username or the lowercased email.
	FindByLogin(ctx context.Context, login string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	// UpdateWithPassword writes the account fields and the new password
	// digest in a single transaction so neither survives without the other.
	UpdateWithPassword(ctx context.Context, account *Account, passwordHash string) error
	Search(ctx context.Context, query string, limit, offset int) ([]Account, int, error)

	GetCredential(ctx context.Context, accountID string) (*Credential, error)
	// RecordFailedAttempt atomically increments the failure counter, stamps
	// the attempt time and sets the permanent lock once the counter reaches
	// threshold. It reports whether the account is locked afterwards.
	RecordFailedAttempt(ctx context.Context, accountID string, threshold int, at time.Time) (bool, error)
	ResetFailedAttempts(ctx context.Context, accountID string, at time.Time) error
}
