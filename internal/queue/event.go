// Package queue defines message payloads exchanged over the message broker.
package queue

// Event type names published on the booking lifecycle queue.
const (
	EventBookingRequested = "booking.requested"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
)

// BookingEvent is published whenever a booking changes state.  It carries
// enough information for downstream consumers to log, notify the hall
// owner, or feed analytics without querying the primary database.
type BookingEvent struct {
	Type         string `json:"type"`
	BookingID    uint64 `json:"booking_id"`
	CustomerID   uint64 `json:"customer_id"`
	HallID       uint64 `json:"hall_id"`
	HallName     string `json:"hall_name"`
	SlotDate     string `json:"slot_date"`
	SlotStart    string `json:"slot_start"`
	SlotEnd      string `json:"slot_end"`
	FunctionType string `json:"function_type"`
	GuestCount   uint32 `json:"guest_count"`
	TotalPrice   int64  `json:"total_price"`
	OccurredAt   string `json:"occurred_at"`
}
