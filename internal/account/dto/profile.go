package dto

import (
	"time"

	"github.com/tavo0132/nexo-backend-api/internal/account/domain"
)

type ProfileOutput struct {
	UUID      string    `json:"uuid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	BirthDate string    `json:"birth_date"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfileOutput omits email and birth date for privacy.
type PublicProfileOutput struct {
	UUID      string `json:"uuid"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UpdateProfileInput uses pointers so absent fields are left untouched.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	BirthDate *string `json:"birth_date"`
	Password  *string `json:"password"`
}

type SearchMetadata struct {
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Query  string `json:"query"`
}

type SearchOutput struct {
	Users    []PublicProfileOutput `json:"users"`
	Metadata SearchMetadata        `json:"metadata"`
}

func NewProfileOutput(a *domain.Account) ProfileOutput {
	return ProfileOutput{
		UUID:      a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		BirthDate: a.BirthDate.Format("2006-01-02"),
		AvatarURL: a.AvatarURL,
		CreatedAt: a.CreatedAt,
	}
}

func NewPublicProfileOutput(a *domain.Account) PublicProfileOutput {
	return PublicProfileOutput{
		UUID:      a.ID,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		AvatarURL: a.AvatarURL,
	}
}
