package model

import (
	"errors"
	"time"
)

// ErrSlotWindowInverted is returned when a slot's start time is not
// strictly before its end time.
var ErrSlotWindowInverted = errors.New("slot start must be before end")

// SlotStatus is the tri-state availability flag of a time slot.  A slot
// holds at most one active booking at a time; the status field is the
// single source of truth for that invariant.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE" // open for booking
	SlotBlocked   SlotStatus = "BLOCKED"   // reserved by a pending booking
	SlotBooked    SlotStatus = "BOOKED"    // reserved by a confirmed booking
)

// ValidSlotStatus reports whether s is one of the known slot states.
func ValidSlotStatus(s SlotStatus) bool {
	switch s {
	case SlotAvailable, SlotBlocked, SlotBooked:
		return true
	}
	return false
}

// TimeSlot is a bookable date+time window on a specific hall.  Times are
// zero-padded "HH:MM" strings so that lexicographic comparison matches
// chronological order.  Slots are created by the hall owner and mutated
// only through booking transitions; a booked slot is never deleted.
//
// Fields:
//  ID        – primary key identifier.
//  HallID    – hall this slot belongs to.
//  Date      – calendar date in "2006-01-02" form.
//  StartTime – inclusive window start, "HH:MM".
//  EndTime   – exclusive window end, "HH:MM"; always after StartTime.
//  Status    – current availability state.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type TimeSlot struct {
	ID        uint64     // time_slots.id
	HallID    uint64     // time_slots.hall_id
	Date      string     // time_slots.slot_date
	StartTime string     // time_slots.start_time
	EndTime   string     // time_slots.end_time
	Status    SlotStatus // time_slots.status
	CreatedAt time.Time  // time_slots.created_at
	UpdatedAt time.Time  // time_slots.updated_at
}

// Overlaps reports whether the half-open windows [start1,end1) and
// [start2,end2) intersect.  Adjacent windows sharing a boundary do not
// overlap.  Inputs must be zero-padded "HH:MM" strings.
func Overlaps(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

// ValidateSlotWindow checks the date and time fields of a new slot.  The
// date must parse as "2006-01-02", both times as "15:04", and the start
// must precede the end.
func ValidateSlotWindow(date, start, end string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", start); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return err
	}
	if start >= end {
		return ErrSlotWindowInverted
	}
	return nil
}
