package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavo0132/nexo-backend-api/internal/account/domain"
	repo "github.com/tavo0132/nexo-backend-api/internal/account/repository/postgres"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
)

var accountColumns = []string{"id", "username", "email", "first_name", "last_name",
	"avatar_url", "birth_date", "is_active", "created_at", "updated_at"}

func accountRow(a *domain.Account) *pgxmock.Rows {
	return pgxmock.NewRows(accountColumns).
		AddRow(a.ID, a.Username, a.Email, a.FirstName, a.LastName,
			a.AvatarURL, a.BirthDate, a.IsActive, a.CreatedAt, a.UpdatedAt)
}

func sampleAccount() *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		ID:        "11111111-1111-4111-8111-111111111111",
		Username:  "gustavo",
		Email:     "gustavo@example.com",
		FirstName: "Gustavo",
		LastName:  "Moreno",
		BirthDate: time.Date(1990, 5, 14, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func uniqueViolation(constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// TestCreateAccount covers the transactional account plus credential insert.
func TestCreateAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	ctx := context.Background()

	account := sampleAccount()
	cred := &domain.Credential{
		AccountID:    account.ID,
		PasswordHash: "$argon2id$digest",
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.BirthDate, account.IsActive, account.CreatedAt, account.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("INSERT INTO credentials").
			WithArgs(cred.AccountID, cred.PasswordHash, cred.CreatedAt, cred.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err := r.Create(ctx, account, cred)
		assert.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.BirthDate, account.IsActive, account.CreatedAt, account.UpdatedAt).
			WillReturnError(uniqueViolation("accounts_username_key"))
		mock.ExpectRollback()

		err := r.Create(ctx, account, cred)
		assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.BirthDate, account.IsActive, account.CreatedAt, account.UpdatedAt).
			WillReturnError(uniqueViolation("accounts_email_key"))
		mock.ExpectRollback()

		err := r.Create(ctx, account, cred)
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})

	t.Run("credential insert fails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.BirthDate, account.IsActive, account.CreatedAt, account.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec("INSERT INTO credentials").
			WithArgs(cred.AccountID, cred.PasswordHash, cred.CreatedAt, cred.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))
		mock.ExpectRollback()

		err := r.Create(ctx, account, cred)
		assert.Error(t, err)
	})
}

// TestFindByLogin covers the username-or-email lookup used by login.
func TestFindByLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	ctx := context.Background()
	account := sampleAccount()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("Gustavo", "gustavo").
			WillReturnRows(accountRow(account))

		got, err := r.FindByLogin(ctx, "Gustavo")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("nobody", "nobody").
			WillReturnError(pgx.ErrNoRows)

		got, err := r.FindByLogin(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("gustavo", "gustavo").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.FindByLogin(ctx, "gustavo")
		assert.Error(t, err)
	})
}

func TestFindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	ctx := context.Background()
	account := sampleAccount()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs(account.ID).
			WillReturnRows(accountRow(account))

		got, err := r.FindByID(ctx, account.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, account.Username, got.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		got, err := r.FindByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

// TestFindByEmail checks the lookup lowercases its argument.
func TestFindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	account := sampleAccount()

	mock.ExpectQuery("SELECT id, username").
		WithArgs("gustavo@example.com").
		WillReturnRows(accountRow(account))

	got, err := r.FindByEmail(context.Background(), "Gustavo@Example.COM")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestUpdateAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	ctx := context.Background()
	account := sampleAccount()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.AvatarURL, account.BirthDate, account.IsActive, account.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, r.Update(ctx, account))
	})

	t.Run("email conflict", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.AvatarURL, account.BirthDate, account.IsActive, account.UpdatedAt).
			WillReturnError(uniqueViolation("accounts_email_key"))

		assert.ErrorIs(t, r.Update(ctx, account), apperrors.ErrEmailTaken)
	})
}

// TestSearchAccounts covers the paged ILIKE search plus its count query.
func TestSearchAccounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	ctx := context.Background()
	account := sampleAccount()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("gus", "%gus%", 20, 0).
			WillReturnRows(accountRow(account))
		mock.ExpectQuery("SELECT COUNT").
			WithArgs("gus", "%gus%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

		accounts, total, err := r.Search(ctx, "gus", 20, 0)
		require.NoError(t, err)
		assert.Len(t, accounts, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("no matches", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("zzz", "%zzz%", 20, 0).
			WillReturnRows(pgxmock.NewRows(accountColumns))
		mock.ExpectQuery("SELECT COUNT").
			WithArgs("zzz", "%zzz%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

		accounts, total, err := r.Search(ctx, "zzz", 20, 0)
		require.NoError(t, err)
		assert.Empty(t, accounts)
		assert.Zero(t, total)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("gus", "%gus%", 20, 0).
			WillReturnError(fmt.Errorf("db error"))

		_, _, err := r.Search(ctx, "gus", 20, 0)
		assert.Error(t, err)
	})
}

func TestGetCredential(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	ctx := context.Background()
	accountID := "11111111-1111-4111-8111-111111111111"
	columns := []string{"account_id", "password_hash", "failed_attempts", "locked",
		"last_attempt_at", "created_at", "updated_at"}

	t.Run("success", func(t *testing.T) {
		now := time.Now().UTC()
		mock.ExpectQuery("SELECT account_id, password_hash").
			WithArgs(accountID).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(accountID, "$argon2id$digest", 2, false, now, now, now))

		cred, err := r.GetCredential(ctx, accountID)
		require.NoError(t, err)
		require.NotNil(t, cred)
		assert.Equal(t, 2, cred.FailedAttempts)
		assert.False(t, cred.Locked)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT account_id, password_hash").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		cred, err := r.GetCredential(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, cred)
	})
}

// TestRecordFailedAttempt covers the atomic increment-and-maybe-lock update.
func TestRecordFailedAttempt(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	ctx := context.Background()
	accountID := "11111111-1111-4111-8111-111111111111"
	at := time.Now().UTC()

	t.Run("below threshold", func(t *testing.T) {
		mock.ExpectQuery("UPDATE credentials").
			WithArgs(accountID, 5, at).
			WillReturnRows(pgxmock.NewRows([]string{"locked"}).AddRow(false))

		locked, err := r.RecordFailedAttempt(ctx, accountID, 5, at)
		require.NoError(t, err)
		assert.False(t, locked)
	})

	t.Run("threshold reached", func(t *testing.T) {
		mock.ExpectQuery("UPDATE credentials").
			WithArgs(accountID, 5, at).
			WillReturnRows(pgxmock.NewRows([]string{"locked"}).AddRow(true))

		locked, err := r.RecordFailedAttempt(ctx, accountID, 5, at)
		require.NoError(t, err)
		assert.True(t, locked)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("UPDATE credentials").
			WithArgs(accountID, 5, at).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.RecordFailedAttempt(ctx, accountID, 5, at)
		assert.Error(t, err)
	})
}

func TestResetFailedAttempts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	accountID := "11111111-1111-4111-8111-111111111111"
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE credentials").
		WithArgs(accountID, at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, r.ResetFailedAttempts(context.Background(), accountID, at))
}

// TestUpdateWithPassword covers the transaction pairing the account update
// with the credential digest, including rollback when the account write hits
// a unique constraint.
func TestUpdateWithPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewRepository(mock)
	ctx := context.Background()
	account := sampleAccount()

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.AvatarURL, account.BirthDate, account.IsActive, account.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE credentials").
			WithArgs(account.ID, "new-digest", account.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		assert.NoError(t, r.UpdateWithPassword(ctx, account, "new-digest"))
	})

	t.Run("email conflict rolls back the digest", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.AvatarURL, account.BirthDate, account.IsActive, account.UpdatedAt).
			WillReturnError(uniqueViolation("accounts_email_key"))
		mock.ExpectRollback()

		assert.ErrorIs(t, r.UpdateWithPassword(ctx, account, "new-digest"), apperrors.ErrEmailTaken)
	})

	t.Run("credential write failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE accounts").
			WithArgs(account.ID, account.Username, account.Email, account.FirstName,
				account.LastName, account.AvatarURL, account.BirthDate, account.IsActive, account.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE credentials").
			WithArgs(account.ID, "new-digest", account.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))
		mock.ExpectRollback()

		assert.Error(t, r.UpdateWithPassword(ctx, account, "new-digest"))
	})
}
