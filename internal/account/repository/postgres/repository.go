package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tavo0132/nexo-backend-api/internal/account/domain"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const accountColumns = `id, username, email, COALESCE(first_name, ''), COALESCE(last_name, ''),
		COALESCE(avatar_url, ''), birth_date, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName,
		&a.AvatarURL, &a.BirthDate, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

// Create inserts the account and its credential in one transaction so a
// failure after the first insert leaves nothing behind.
func (r *Repository) Create(ctx context.Context, account *domain.Account, cred *domain.Credential) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO accounts (id, username, email, first_name, last_name, birth_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
	`, account.ID, account.Username, account.Email, account.FirstName, account.LastName,
		account.BirthDate, account.IsActive, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO credentials (account_id, password_hash, failed_attempts, locked, created_at, updated_at)
		VALUES ($1, $2, 0, false, $3, $4)
	`, cred.AccountID, cred.PasswordHash, cred.CreatedAt, cred.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 LIMIT 1`, id)
	return scanAccount(row)
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1 LIMIT 1`, username)
	return scanAccount(row)
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1 LIMIT 1`,
		strings.ToLower(email))
	return scanAccount(row)
}

func (r *Repository) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = $1 OR email = $2 LIMIT 1`,
		login, strings.ToLower(login))
	return scanAccount(row)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func updateAccount(ctx context.Context, db execer, account *domain.Account) error {
	_, err := db.Exec(ctx, `
		UPDATE accounts
		SET username = $2, email = $3, first_name = NULLIF($4, ''), last_name = NULLIF($5, ''),
		    avatar_url = NULLIF($6, ''), birth_date = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`, account.ID, account.Username, account.Email, account.FirstName, account.LastName,
		account.AvatarURL, account.BirthDate, account.IsActive, account.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, account *domain.Account) error {
	return updateAccount(ctx, r.db, account)
}

// UpdateWithPassword writes the account fields and the new password digest
// in one transaction so a conflict on the account update cannot leave a
// replaced digest behind.
func (r *Repository) UpdateWithPassword(ctx context.Context, account *domain.Account, passwordHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := updateAccount(ctx, tx, account); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE credentials SET password_hash = $2, updated_at = $3 WHERE account_id = $1
	`, account.ID, passwordHash, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}

	return tx.Commit(ctx)
}

// Search matches the query case-insensitively against username, email and
// both name fields; an empty query lists everyone. It also returns the total
// match count for pagination metadata.
func (r *Repository) Search(ctx context.Context, query string, limit, offset int) ([]domain.Account, int, error) {
	pattern := "%" + query + "%"

	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE $1 = '' OR username ILIKE $2 OR email ILIKE $2
			OR first_name ILIKE $2 OR last_name ILIKE $2
		ORDER BY username
		LIMIT $3 OFFSET $4
	`, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName,
			&a.AvatarURL, &a.BirthDate, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM accounts
		WHERE $1 = '' OR username ILIKE $2 OR email ILIKE $2
			OR first_name ILIKE $2 OR last_name ILIKE $2
	`, query, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	return accounts, total, nil
}

func (r *Repository) GetCredential(ctx context.Context, accountID string) (*domain.Credential, error) {
	row := r.db.QueryRow(ctx, `
		SELECT account_id, password_hash, failed_attempts, locked,
		       COALESCE(last_attempt_at, 'epoch'::timestamptz), created_at, updated_at
		FROM credentials
		WHERE account_id = $1
		LIMIT 1
	`, accountID)

	var c domain.Credential
	err := row.Scan(&c.AccountID, &c.PasswordHash, &c.FailedAttempts, &c.Locked,
		&c.LastAttemptAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &c, nil
}

// RecordFailedAttempt is a single atomic read-modify-write so concurrent
// failed logins cannot lose increments. Once locked, the flag stays set.
func (r *Repository) RecordFailedAttempt(ctx context.Context, accountID string, threshold int, at time.Time) (bool, error) {
	var locked bool
	err := r.db.QueryRow(ctx, `
		UPDATE credentials
		SET failed_attempts = failed_attempts + 1,
		    locked = locked OR failed_attempts + 1 >= $2,
		    last_attempt_at = $3,
		    updated_at = $3
		WHERE account_id = $1
		RETURNING locked
	`, accountID, threshold, at).Scan(&locked)
	if err != nil {
		return false, fmt.Errorf("failed to record login attempt: %w", err)
	}
	return locked, nil
}

func (r *Repository) ResetFailedAttempts(ctx context.Context, accountID string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE credentials
		SET failed_attempts = 0, last_attempt_at = $2, updated_at = $2
		WHERE account_id = $1
	`, accountID, at)
	return err
}

func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "accounts_username_key":
			return apperrors.ErrUsernameTaken
		case "accounts_email_key":
			return apperrors.ErrEmailTaken
		default:
			return apperrors.ErrDuplicateAccount
		}
	}
	return err
}
