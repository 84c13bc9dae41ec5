package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusRemoved  Status = "removed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusRemoved:
		return true
	}
	return false
}

// Friendship is the single row kept for an unordered pair of accounts.
// The pair is stored canonically with UserLowID < UserHighID so only one
// ordering ever exists. Rows are never deleted; rejected and removed are
// terminal-but-revivable states.
type Friendship struct {
	UserLowID     string
	UserHighID    string
	Status        Status
	RequestedByID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizePair orders two account ids lexicographically. swapped reports
// whether a ended up as the high id. Every lookup and insert must go through
// this; callers never query with a raw unordered pair.
func NormalizePair(a, b string) (low, high string, swapped bool) {
	if a < b {
		return a, b, false
	}
	return b, a, true
}

// OtherID returns the counterpart of selfID in the pair.
func (f *Friendship) OtherID(selfID string) (string, error) {
	switch selfID {
	case f.UserLowID:
		return f.UserHighID, nil
	case f.UserHighID:
		return f.UserLowID, nil
	}
	return "", fmt.Errorf("account %s is not part of this friendship", selfID)
}

// RequestedBy reports whether the request was made by the given account.
func (f *Friendship) RequestedBy(accountID string) bool {
	return f.RequestedByID == accountID
}
