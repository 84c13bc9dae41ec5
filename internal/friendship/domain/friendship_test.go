package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePair(t *testing.T) {
	tests := []struct {
		name        string
		a, b        string
		wantLow     string
		wantHigh    string
		wantSwapped bool
	}{
		{
			name:        "already ordered",
			a:           "aaaa",
			b:           "bbbb",
			wantLow:     "aaaa",
			wantHigh:    "bbbb",
			wantSwapped: false,
		},
		{
			name:        "reversed input is swapped",
			a:           "bbbb",
			b:           "aaaa",
			wantLow:     "aaaa",
			wantHigh:    "bbbb",
			wantSwapped: true,
		},
		{
			name:        "uuid strings order lexicographically",
			a:           "f47ac10b-58cc-4372-a567-0e02b2c3d479",
			b:           "123e4567-e89b-12d3-a456-426614174000",
			wantLow:     "123e4567-e89b-12d3-a456-426614174000",
			wantHigh:    "f47ac10b-58cc-4372-a567-0e02b2c3d479",
			wantSwapped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high, swapped := NormalizePair(tt.a, tt.b)
			assert.Equal(t, tt.wantLow, low)
			assert.Equal(t, tt.wantHigh, high)
			assert.Equal(t, tt.wantSwapped, swapped)
		})
	}
}

// Normalization must be symmetric: both argument orders produce the same
// canonical pair, and low < high always holds.
func TestNormalizePair_Symmetry(t *testing.T) {
	for i := 0; i < 50; i++ {
		a := uuid.NewString()
		b := uuid.NewString()

		low1, high1, swapped1 := NormalizePair(a, b)
		low2, high2, swapped2 := NormalizePair(b, a)

		assert.Equal(t, low1, low2)
		assert.Equal(t, high1, high2)
		assert.True(t, low1 < high1)
		assert.NotEqual(t, swapped1, swapped2)
	}
}

func TestFriendship_OtherID(t *testing.T) {
	f := &Friendship{UserLowID: "low-id", UserHighID: "high-id"}

	other, err := f.OtherID("low-id")
	require.NoError(t, err)
	assert.Equal(t, "high-id", other)

	other, err = f.OtherID("high-id")
	require.NoError(t, err)
	assert.Equal(t, "low-id", other)

	_, err = f.OtherID("stranger")
	assert.Error(t, err)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusAccepted.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.True(t, StatusRemoved.Valid())
	assert.False(t, Status("blocked").Valid())
	assert.False(t, Status("").Valid())
}
