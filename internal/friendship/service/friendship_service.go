package service

import (
	"context"
	"fmt"
	"log"

	accountdomain "github.com/tavo0132/nexo-backend-api/internal/account/domain"
	apperrors "github.com/tavo0132/nexo-backend-api/internal/errors"
	"github.com/tavo0132/nexo-backend-api/internal/friendship/domain"
	"github.com/tavo0132/nexo-backend-api/internal/friendship/dto"
	"github.com/tavo0132/nexo-backend-api/pkg/clock"
)

// RequestOutcome tells the handler which branch of the state machine a
// send-request call took, so it can pick the right message and status code.
type RequestOutcome string

const (
	OutcomeCreated        RequestOutcome = "created"
	OutcomeAlreadyPending RequestOutcome = "already_pending"
	OutcomeReversePending RequestOutcome = "reverse_pending"
	OutcomeAlreadyFriends RequestOutcome = "already_friends"
	OutcomeReopened       RequestOutcome = "reopened"
)

// Service implements the friendship state machine over the canonical-pair
// store. All pair access goes through domain.NormalizePair.
type Service struct {
	friendships domain.Repository
	accounts    accountdomain.Repository
	clock       clock.Clock
}

func NewService(friendships domain.Repository, accounts accountdomain.Repository, clk clock.Clock) *Service {
	return &Service{
		friendships: friendships,
		accounts:    accounts,
		clock:       clk,
	}
}

// SendRequest creates or revives a friendship request from requesterID to
// targetID. Re-sending a still-pending request is a no-op; a rejected or
// removed relationship reopens to pending with the requester reset.
func (s *Service) SendRequest(ctx context.Context, requesterID, targetID string) (*domain.Friendship, RequestOutcome, error) {
	// Self-requests are rejected before any normalization happens.
	if requesterID == targetID {
		return nil, "", apperrors.ErrSelfFriendRequest
	}

	target, err := s.accounts.FindByID(ctx, targetID)
	if err != nil {
		return nil, "", err
	}
	if target == nil {
		return nil, "", apperrors.ErrAccountNotFound
	}

	existing, err := s.friendships.Find(ctx, requesterID, targetID)
	if err != nil {
		return nil, "", err
	}

	if existing != nil {
		switch existing.Status {
		case domain.StatusPending:
			if existing.RequestedBy(requesterID) {
				return existing, OutcomeAlreadyPending, nil
			}
			// The other party already asked; the caller should accept
			// instead. No mutation.
			return existing, OutcomeReversePending, nil
		case domain.StatusAccepted:
			return existing, OutcomeAlreadyFriends, nil
		case domain.StatusRejected, domain.StatusRemoved:
			now := s.clock.Now()
			err := s.friendships.UpdateStatus(ctx, existing.UserLowID, existing.UserHighID,
				domain.StatusPending, requesterID, now)
			if err != nil {
				return nil, "", err
			}
			existing.Status = domain.StatusPending
			existing.RequestedByID = requesterID
			existing.UpdatedAt = now
			return existing, OutcomeReopened, nil
		}
	}

	low, high, _ := domain.NormalizePair(requesterID, targetID)
	now := s.clock.Now()

	f := &domain.Friendship{
		UserLowID:     low,
		UserHighID:    high,
		Status:        domain.StatusPending,
		RequestedByID: requesterID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// A concurrent duplicate loses the race at the pair's primary key and
	// comes back as an already-exists conflict.
	if err := s.friendships.Create(ctx, f); err != nil {
		return nil, "", err
	}

	return f, OutcomeCreated, nil
}

// Accept moves a pending request to accepted. Only the party who did not
// send the request may accept it.
func (s *Service) Accept(ctx context.Context, actorID, otherID string) (*domain.Friendship, error) {
	return s.decide(ctx, actorID, otherID, domain.StatusAccepted)
}

// Reject moves a pending request to rejected, symmetric to Accept.
func (s *Service) Reject(ctx context.Context, actorID, otherID string) (*domain.Friendship, error) {
	return s.decide(ctx, actorID, otherID, domain.StatusRejected)
}

func (s *Service) decide(ctx context.Context, actorID, otherID string, to domain.Status) (*domain.Friendship, error) {
	f, err := s.friendships.Find(ctx, actorID, otherID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, apperrors.ErrFriendshipNotFound
	}

	if f.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: current status is %q", apperrors.ErrWrongFriendshipState, f.Status)
	}

	if f.RequestedBy(actorID) {
		return nil, apperrors.ErrOwnRequestDecision
	}

	now := s.clock.Now()
	if err := s.friendships.UpdateStatus(ctx, f.UserLowID, f.UserHighID, to, f.RequestedByID, now); err != nil {
		return nil, err
	}

	f.Status = to
	f.UpdatedAt = now
	return f, nil
}

// Unfriend flips an accepted friendship to removed; either party may do it.
// On any other status it changes nothing and reports the current state.
func (s *Service) Unfriend(ctx context.Context, actorID, otherID string) (*domain.Friendship, bool, error) {
	f, err := s.friendships.Find(ctx, actorID, otherID)
	if err != nil {
		return nil, false, err
	}
	if f == nil {
		return nil, false, apperrors.ErrFriendshipNotFound
	}

	if f.Status != domain.StatusAccepted {
		return f, false, nil
	}

	now := s.clock.Now()
	if err := s.friendships.UpdateStatus(ctx, f.UserLowID, f.UserHighID,
		domain.StatusRemoved, f.RequestedByID, now); err != nil {
		return nil, false, err
	}

	f.Status = domain.StatusRemoved
	f.UpdatedAt = now
	return f, true, nil
}

// List returns the caller's friendships, newest update first, each one
// annotated with the counterpart's public profile.
func (s *Service) List(ctx context.Context, accountID string, status domain.Status) ([]dto.FriendshipOutput, error) {
	friendships, err := s.friendships.ListByAccount(ctx, accountID, status)
	if err != nil {
		return nil, err
	}

	result := make([]dto.FriendshipOutput, 0, len(friendships))
	for i := range friendships {
		f := &friendships[i]
		out := dto.NewFriendshipOutput(f, accountID)

		other, err := s.accounts.FindByID(ctx, out.OtherUserID)
		if err != nil {
			return nil, err
		}
		if other == nil {
			// Counterpart account is gone; keep the row but skip the profile.
			log.Printf("warn: friendship references missing account %s", out.OtherUserID)
		} else {
			out.OtherUser = &dto.UserSummary{
				UUID:      other.ID,
				Username:  other.Username,
				FirstName: other.FirstName,
				LastName:  other.LastName,
				AvatarURL: other.AvatarURL,
			}
		}
		result = append(result, out)
	}

	return result, nil
}
