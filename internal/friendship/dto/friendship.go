package dto

import (
	"time"

	"github.com/tavo0132/nexo-backend-api/internal/friendship/domain"
)

type RequestInput struct {
	ToUserUUID string `json:"to_user_uuid" validate:"required,uuid4"`
}

// DecisionInput identifies the counterpart of an accept, reject or unfriend.
type DecisionInput struct {
	UserUUID string `json:"user_uuid" validate:"required,uuid4"`
}

type UserSummary struct {
	UUID      string `json:"uuid"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type FriendshipOutput struct {
	UserLowID     string       `json:"user_low_id"`
	UserHighID    string       `json:"user_high_id"`
	Status        string       `json:"status"`
	RequestedByID string       `json:"requested_by_id"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	OtherUserID   string       `json:"other_user_id"`
	RequestedByMe bool         `json:"requested_by_me"`
	OtherUser     *UserSummary `json:"other_user,omitempty"`
}

type ListOutput struct {
	Friendships   []FriendshipOutput `json:"friendships"`
	Count         int                `json:"count"`
	FilterApplied string             `json:"filter_applied"`
}

// NewFriendshipOutput renders a friendship from the point of view of the
// authenticated account.
func NewFriendshipOutput(f *domain.Friendship, currentUserID string) FriendshipOutput {
	out := FriendshipOutput{
		UserLowID:     f.UserLowID,
		UserHighID:    f.UserHighID,
		Status:        string(f.Status),
		RequestedByID: f.RequestedByID,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
		RequestedByMe: f.RequestedBy(currentUserID),
	}
	if other, err := f.OtherID(currentUserID); err == nil {
		out.OtherUserID = other
	}
	return out
}
