// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrSlotTaken signals that a slot's status changed under
// the caller before its conditional update committed.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
// Ownership is always checked before booking state, so a foreign
// booking in the wrong state still yields ErrForbidden.
var ErrForbidden = errors.New("forbidden")

// ErrSlotTaken is returned when a conditional status update on a time
// slot affects zero rows, i.e. the slot was no longer in the expected
// state. This closes the read-then-write race between two customers
// booking the same slot. Handlers translate this into HTTP 409.
var ErrSlotTaken = errors.New("time slot is not in the expected state")

// ErrSlotOverlap is returned when a new time slot would intersect an
// existing slot on the same hall and date.
var ErrSlotOverlap = errors.New("time slot overlaps an existing slot")

// ErrSlotBooked is returned when attempting to delete a slot that holds
// a confirmed booking.
var ErrSlotBooked = errors.New("time slot has a confirmed booking")

// ErrNoCompletedBooking is returned when a customer tries to review a
// hall without having completed a booking there.
var ErrNoCompletedBooking = errors.New("no completed booking for this hall")

// ErrDuplicateReview is returned when a customer already reviewed the
// hall. One review per (customer, hall) pair.
var ErrDuplicateReview = errors.New("review already exists for this hall")

// Not-found sentinels, one per entity, returned instead of raw
// sql.ErrNoRows so handlers can map them to precise 404 messages.
var (
	ErrHallNotFound      = errors.New("hall not found")
	ErrEventTypeNotFound = errors.New("event type not found")
	ErrMenuNotFound      = errors.New("menu not found")
	ErrSlotNotFound      = errors.New("time slot not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrReviewNotFound    = errors.New("review not found")
)
