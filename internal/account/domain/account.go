package domain

import "time"

// Account is the public identity record. Optional fields (names, avatar)
// are empty strings when unset and stored as NULL.
type Account struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
	BirthDate time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential holds the password digest and lockout state for an account.
// Exactly one row exists per account and it is created in the same
// transaction as the account itself.
type Credential struct {
	AccountID      string
	PasswordHash   string
	FailedAttempts int
	Locked         bool
	LastAttemptAt  time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AdultAge is the minimum age, in full calendar years, required to register.
const AdultAge = 18

// Age returns the number of full calendar years between birthDate and at.
func Age(birthDate, at time.Time) int {
	age := at.Year() - birthDate.Year()
	if at.Month() < birthDate.Month() ||
		(at.Month() == birthDate.Month() && at.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// IsAdult reports whether someone born on birthDate is at least AdultAge
// years old at the given instant.
func IsAdult(birthDate, at time.Time) bool {
	if birthDate.IsZero() {
		return false
	}
	return Age(birthDate, at) >= AdultAge
}
