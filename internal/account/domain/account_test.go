package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAdult(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate time.Time
		want      bool
	}{
		{
			name:      "exactly 18 today",
			birthDate: time.Date(2008, 8, 29, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "18 tomorrow",
			birthDate: time.Date(2008, 8, 30, 0, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "well over 18",
			birthDate: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "birthday later this year",
			birthDate: time.Date(2008, 12, 1, 0, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "zero birth date",
			birthDate: time.Time{},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdult(tt.birthDate, now))
		})
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 18, Age(time.Date(2008, 8, 29, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 17, Age(time.Date(2008, 8, 30, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 36, Age(time.Date(1990, 3, 1, 0, 0, 0, 0, time.UTC), now))
}
