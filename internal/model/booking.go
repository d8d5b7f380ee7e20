package model

import (
	"errors"
	"time"
)

// BookingStatus is the lifecycle state of a booking.  Transitions between
// states are governed exclusively by the transition table below; handlers
// never mutate the status field directly.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"   // awaiting owner decision
	BookingConfirmed BookingStatus = "CONFIRMED" // accepted by the owner
	BookingRejected  BookingStatus = "REJECTED"  // declined by the owner
	BookingCancelled BookingStatus = "CANCELLED" // withdrawn by the customer
	BookingCompleted BookingStatus = "COMPLETED" // event took place
)

// BookingAction is an operator-triggered lifecycle transition.  There are
// no automatic or timed transitions.
type BookingAction string

const (
	ActionAccept   BookingAction = "accept"   // owner: pending -> confirmed
	ActionReject   BookingAction = "reject"   // owner: pending -> rejected
	ActionCancel   BookingAction = "cancel"   // customer: pending|confirmed -> cancelled
	ActionComplete BookingAction = "complete" // owner: confirmed -> completed
)

// ErrInvalidStateTransition is returned when an action is attempted from a
// booking state it does not apply to.  Callers must not mutate the booking
// or its time slot when they receive this error.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// BookingTransition describes the outcome of applying an action: the next
// booking status and the slot status the time slot must move to.  A nil
// SlotNext means the slot is left untouched (completing a booking keeps
// the slot booked).
type BookingTransition struct {
	Next     BookingStatus
	SlotNext *SlotStatus
}

func slotTo(s SlotStatus) *SlotStatus { return &s }

// transitions is the single transition table for the booking lifecycle:
//
//	pending   -> confirmed | rejected | cancelled
//	confirmed -> completed | cancelled
//	completed, rejected, cancelled are terminal
var transitions = map[BookingStatus]map[BookingAction]BookingTransition{
	BookingPending: {
		ActionAccept: {Next: BookingConfirmed, SlotNext: slotTo(SlotBooked)},
		ActionReject: {Next: BookingRejected, SlotNext: slotTo(SlotAvailable)},
		ActionCancel: {Next: BookingCancelled, SlotNext: slotTo(SlotAvailable)},
	},
	BookingConfirmed: {
		ActionComplete: {Next: BookingCompleted},
		ActionCancel:   {Next: BookingCancelled, SlotNext: slotTo(SlotAvailable)},
	},
}

// Transition resolves the outcome of applying action to a booking in the
// given state.  It returns ErrInvalidStateTransition when the table has no
// entry for the pair; in that case nothing may be written.
func Transition(from BookingStatus, action BookingAction) (BookingTransition, error) {
	if t, ok := transitions[from][action]; ok {
		return t, nil
	}
	return BookingTransition{}, ErrInvalidStateTransition
}

// Booking is a customer's reservation request against one time slot.  All
// price fields are snapshots taken at creation time with the pricing
// engine; they are never recomputed when hall prices change later.
//
// Fields:
//  ID                 – primary key identifier.
//  HallID             – hall being booked.
//  CustomerID         – user who placed the booking.
//  TimeSlotID         – slot the booking occupies.
//  MenuID             – optional catering menu (nil when none).
//  EventTypeID        – event type resolved at creation.
//  FunctionType       – event type name as requested (snapshot).
//  GuestCount         – number of guests; <= hall capacity.
//  BasePrice          – hall base price snapshot.
//  MenuPrice          – price per plate times guest count (0 without menu).
//  FunctionTypeCharge – base price times the event type modifier / 100.
//  AdditionalCharges  – flat hall fees snapshot.
//  TotalPrice         – sum of the four components above.
//  Status             – lifecycle state.
//  Notes              – free-form customer notes.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Booking struct {
	ID                 uint64             // bookings.id
	HallID             uint64             // bookings.hall_id
	CustomerID         uint64             // bookings.customer_id
	TimeSlotID         uint64             // bookings.time_slot_id
	MenuID             *uint64            // bookings.menu_id (nullable)
	EventTypeID        uint64             // bookings.event_type_id
	FunctionType       string             // bookings.function_type
	GuestCount         uint32             // bookings.guest_count
	BasePrice          int64              // bookings.base_price
	MenuPrice          int64              // bookings.menu_price
	FunctionTypeCharge int64              // bookings.function_type_charge
	AdditionalCharges  []AdditionalCharge // bookings.additional_charges (JSON)
	TotalPrice         int64              // bookings.total_price
	Status             BookingStatus      // bookings.status
	Notes              string             // bookings.notes
	CreatedAt          time.Time          // bookings.created_at
	UpdatedAt          time.Time          // bookings.updated_at
}
