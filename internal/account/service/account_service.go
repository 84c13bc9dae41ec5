package service

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/tavo0132/nexo-backend-api/internal/account/domain"
	"github.com/tavo0132/nexo-backend-api/internal/account/dto"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
	"github.com/tavo0132/nexo-backend-api/internal/storage"
	"github.com/tavo0132/nexo-backend-api/pkg/clock"
)

const (
	maxNameLength  = 100
	minUsernameLen = 3

	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

var allowedAvatarMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PasswordHasher validates the password policy and produces the digest to
// store, without this package owning the hashing policy. It must not
// persist anything; the digest is written together with the profile fields.
type PasswordHasher interface {
	HashPassword(newPassword string) (string, error)
}

// Service covers profile reads/updates, avatar uploads and account search.
type Service struct {
	accounts       domain.Repository
	passwords      PasswordHasher
	files          storage.FileStorage
	clock          clock.Clock
	maxAvatarBytes int64
}

func NewService(accounts domain.Repository, passwords PasswordHasher, files storage.FileStorage,
	clk clock.Clock, maxAvatarBytes int64) *Service {
	return &Service{
		accounts:       accounts,
		passwords:      passwords,
		files:          files,
		clock:          clk,
		maxAvatarBytes: maxAvatarBytes,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

// UpdateProfile applies the provided fields to the account. Nil fields are
// left as they are; uniqueness of username and email is re-checked before
// write and races still resolve at the storage constraint.
func (s *Service) UpdateProfile(ctx context.Context, account *domain.Account, input dto.UpdateProfileInput) (*domain.Account, error) {
	if input.FirstName == nil && input.LastName == nil && input.Email == nil &&
		input.Username == nil && input.BirthDate == nil && input.Password == nil {
		return nil, apperrors.NewValidation("provide at least one field to update")
	}

	updated := *account

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, apperrors.NewValidation("invalid email address")
		}
		if email != account.Email {
			existing, err := s.accounts.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperrors.ErrEmailTaken
			}
		}
		updated.Email = email
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if len(username) < minUsernameLen {
			return nil, apperrors.NewValidation("username must be at least 3 characters long")
		}
		if username != account.Username {
			existing, err := s.accounts.FindByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperrors.ErrUsernameTaken
			}
		}
		updated.Username = username
	}

	if input.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *input.BirthDate)
		if err != nil {
			return nil, apperrors.NewValidation("invalid birth date format, use YYYY-MM-DD")
		}
		if !domain.IsAdult(birthDate, s.clock.Now()) {
			return nil, apperrors.NewValidation("you must be at least 18 years old")
		}
		updated.BirthDate = birthDate
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if len(name) > maxNameLength {
			return nil, apperrors.NewValidation("first name cannot exceed 100 characters")
		}
		updated.FirstName = name
	}

	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if len(name) > maxNameLength {
			return nil, apperrors.NewValidation("last name cannot exceed 100 characters")
		}
		updated.LastName = name
	}

	var passwordHash string
	if input.Password != nil {
		hash, err := s.passwords.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	}

	updated.UpdatedAt = s.clock.Now()
	if passwordHash != "" {
		// One transaction: a conflict on the profile write must not leave
		// the new digest behind.
		if err := s.accounts.UpdateWithPassword(ctx, &updated, passwordHash); err != nil {
			return nil, err
		}
	} else if err := s.accounts.Update(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// UpdateAvatar validates size, MIME type and extension before delegating to
// the file storage, then records the new URL on the account.
func (s *Service) UpdateAvatar(ctx context.Context, account *domain.Account, data []byte,
	filename, contentType string) (string, error) {
	if int64(len(data)) > s.maxAvatarBytes {
		return "", apperrors.ErrAvatarTooLarge
	}

	if !allowedAvatarMIMETypes[strings.ToLower(contentType)] {
		return "", apperrors.ErrInvalidAvatarType
	}

	ext := strings.ToLower(path.Ext(filename))
	if !allowedAvatarExtensions[ext] {
		return "", apperrors.ErrInvalidAvatarType
	}

	avatarURL, err := s.files.Save(ctx, data, filename, contentType)
	if err != nil {
		return "", err
	}

	account.AvatarURL = avatarURL
	account.UpdatedAt = s.clock.Now()
	if err := s.accounts.Update(ctx, account); err != nil {
		return "", err
	}

	return avatarURL, nil
}

// Search returns public profiles matching the query, clamped to at most 100
// results per page.
func (s *Service) Search(ctx context.Context, query string, limit, offset int) (*dto.SearchOutput, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	accounts, total, err := s.accounts.Search(ctx, strings.TrimSpace(query), limit, offset)
	if err != nil {
		return nil, err
	}

	users := make([]dto.PublicProfileOutput, 0, len(accounts))
	for i := range accounts {
		users = append(users, dto.NewPublicProfileOutput(&accounts[i]))
	}

	return &dto.SearchOutput{
		Users: users,
		Metadata: dto.SearchMetadata{
			Total:  total,
			Limit:  limit,
			Offset: offset,
			Query:  strings.TrimSpace(query),
		},
	}, nil
}
