package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"partial overlap", "14:00", "17:00", "16:00", "18:00", true},
		{"adjacent after", "14:00", "17:00", "17:00", "19:00", false},
		{"adjacent before", "14:00", "17:00", "12:00", "14:00", false},
		{"contained", "14:00", "17:00", "15:00", "16:00", true},
		{"containing", "15:00", "16:00", "14:00", "17:00", true},
		{"identical", "14:00", "17:00", "14:00", "17:00", true},
		{"disjoint", "08:00", "10:00", "18:00", "20:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// the relation is symmetric
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func TestValidateSlotWindow(t *testing.T) {
	assert.NoError(t, ValidateSlotWindow("2025-06-14", "14:00", "17:00"))
	assert.ErrorIs(t, ValidateSlotWindow("2025-06-14", "17:00", "14:00"), ErrSlotWindowInverted)
	assert.ErrorIs(t, ValidateSlotWindow("2025-06-14", "14:00", "14:00"), ErrSlotWindowInverted)
	assert.Error(t, ValidateSlotWindow("14-06-2025", "14:00", "17:00"))
	assert.Error(t, ValidateSlotWindow("2025-06-14", "2pm", "17:00"))
	assert.Error(t, ValidateSlotWindow("2025-06-14", "14:00", "25:00"))
}

func TestValidSlotStatus(t *testing.T) {
	assert.True(t, ValidSlotStatus(SlotAvailable))
	assert.True(t, ValidSlotStatus(SlotBlocked))
	assert.True(t, ValidSlotStatus(SlotBooked))
	assert.False(t, ValidSlotStatus("FREE"))
}

func TestValidRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		assert.True(t, ValidRating(r))
	}
	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-3))
}
