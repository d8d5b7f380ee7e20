package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_Table(t *testing.T) {
	booked := SlotBooked
	available := SlotAvailable

	cases := []struct {
		name     string
		from     BookingStatus
		action   BookingAction
		next     BookingStatus
		slotNext *SlotStatus
	}{
		{"accept pending", BookingPending, ActionAccept, BookingConfirmed, &booked},
		{"reject pending", BookingPending, ActionReject, BookingRejected, &available},
		{"cancel pending", BookingPending, ActionCancel, BookingCancelled, &available},
		{"cancel confirmed", BookingConfirmed, ActionCancel, BookingCancelled, &available},
		{"complete confirmed", BookingConfirmed, ActionComplete, BookingCompleted, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := Transition(tc.from, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.next, tr.Next)
			if tc.slotNext == nil {
				assert.Nil(t, tr.SlotNext, "slot must stay untouched")
			} else {
				require.NotNil(t, tr.SlotNext)
				assert.Equal(t, *tc.slotNext, *tr.SlotNext)
			}
		})
	}
}

func TestTransition_RejectsWrongSourceState(t *testing.T) {
	cases := []struct {
		name   string
		from   BookingStatus
		action BookingAction
	}{
		{"accept confirmed", BookingConfirmed, ActionAccept},
		{"accept completed", BookingCompleted, ActionAccept},
		{"accept rejected", BookingRejected, ActionAccept},
		{"reject confirmed", BookingConfirmed, ActionReject},
		{"reject cancelled", BookingCancelled, ActionReject},
		{"cancel completed", BookingCompleted, ActionCancel},
		{"cancel cancelled", BookingCancelled, ActionCancel},
		{"cancel rejected", BookingRejected, ActionCancel},
		{"complete pending", BookingPending, ActionComplete},
		{"complete completed", BookingCompleted, ActionComplete},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Transition(tc.from, tc.action)
			assert.ErrorIs(t, err, ErrInvalidStateTransition)
		})
	}
}

func TestTransition_TerminalStatesHaveNoExits(t *testing.T) {
	actions := []BookingAction{ActionAccept, ActionReject, ActionCancel, ActionComplete}
	for _, terminal := range []BookingStatus{BookingCompleted, BookingRejected, BookingCancelled} {
		for _, a := range actions {
			_, err := Transition(terminal, a)
			assert.ErrorIs(t, err, ErrInvalidStateTransition, "%s/%s", terminal, a)
		}
	}
}

func TestTransition_RoundTrip(t *testing.T) {
	// create -> accept -> complete, checking the slot effect at each hop
	tr, err := Transition(BookingPending, ActionAccept)
	require.NoError(t, err)
	require.NotNil(t, tr.SlotNext)
	assert.Equal(t, SlotBooked, *tr.SlotNext)

	tr, err = Transition(tr.Next, ActionComplete)
	require.NoError(t, err)
	assert.Equal(t, BookingCompleted, tr.Next)
	assert.Nil(t, tr.SlotNext) // slot stays booked after completion

	// no further transitions out of completed
	_, err = Transition(tr.Next, ActionCancel)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}
