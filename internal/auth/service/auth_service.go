package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	accountdomain "github.com/tavo0132/nexo-backend-api/internal/account/domain"
	"github.com/tavo0132/nexo-backend-api/internal/auth/dto"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
	"github.com/tavo0132/nexo-backend-api/pkg/clock"
)

const birthDateLayout = "2006-01-02"

// AuthService owns the registration and credential lifecycle: password
// policy, argon2 digests, the permanent lockout counter and token issuance.
type AuthService struct {
	accounts         accountdomain.Repository
	hasher           PasswordHasher
	tokens           TokenManager
	clock            clock.Clock
	maxLoginAttempts int
}

func NewAuthService(accounts accountdomain.Repository, hasher PasswordHasher, tokens TokenManager,
	clk clock.Clock, maxLoginAttempts int) *AuthService {
	return &AuthService{
		accounts:         accounts,
		hasher:           hasher,
		tokens:           tokens,
		clock:            clk,
		maxLoginAttempts: maxLoginAttempts,
	}
}

func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*accountdomain.Account, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	birthDate, err := time.Parse(birthDateLayout, input.BirthDate)
	if err != nil {
		return nil, apperrors.NewValidation("invalid birth date format, use YYYY-MM-DD")
	}

	if !accountdomain.IsAdult(birthDate, s.clock.Now()) {
		return nil, apperrors.NewValidation("you must be at least 18 years old to register")
	}

	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if existing, err := s.accounts.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}

	if existing, err := s.accounts.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()

	account := &accountdomain.Account{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		BirthDate: birthDate,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	cred := &accountdomain.Credential{
		AccountID:    account.ID,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Concurrent duplicate registrations lose the race at the unique
	// constraint and come back as a conflict, not a crash.
	if err := s.accounts.Create(ctx, account, cred); err != nil {
		return nil, err
	}

	return account, nil
}

// Login authenticates by username or email. Every failure mode (unknown
// user, inactive account, wrong password, locked account) surfaces the same
// generic error so callers learn nothing about which one it was.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (string, error) {
	login := strings.TrimSpace(input.Username)

	account, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		return "", err
	}
	if account == nil || !account.IsActive {
		return "", apperrors.ErrInvalidCredentials
	}

	cred, err := s.accounts.GetCredential(ctx, account.ID)
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", apperrors.ErrInvalidCredentials
	}

	// A locked account fails regardless of password correctness. The lock
	// never expires on its own.
	if cred.Locked {
		return "", apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(cred.PasswordHash, input.Password) {
		locked, err := s.accounts.RecordFailedAttempt(ctx, account.ID, s.maxLoginAttempts, s.clock.Now())
		if err != nil {
			log.Printf("warn: failed to record login attempt for account %s: %v", account.ID, err)
		}
		if locked {
			log.Printf("account %s locked after %d failed login attempts", account.ID, s.maxLoginAttempts)
		}
		return "", apperrors.ErrInvalidCredentials
	}

	if err := s.accounts.ResetFailedAttempts(ctx, account.ID, s.clock.Now()); err != nil {
		return "", err
	}

	return s.tokens.Issue(account.ID)
}

// Logout is advisory: there is no revocation store, so it only confirms the
// presented token is currently valid.
func (s *AuthService) Logout(tokenString string) error {
	_, err := s.tokens.Validate(tokenString)
	return err
}

// HashPassword validates the policy and returns the digest to store. It
// never writes; callers persist the digest together with whatever else
// changes in the same transaction.
func (s *AuthService) HashPassword(newPassword string) (string, error) {
	if err := ValidatePassword(newPassword); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return hash, nil
}
