package clock

import "time"

// Clock abstracts the time source so token expiry and age checks can be
// tested against a fixed instant.
type Clock interface {
	Now() time.Time
}

// System is the production clock. All timestamps in the system are UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}
