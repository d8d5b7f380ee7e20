// Package pricing converts a (hall, event type, menu, guest count) tuple
// into an itemized price breakdown.  The same Quote function backs both
// the price preview endpoint and booking creation, so a previewed price
// can never diverge from the amount snapshotted on the booking.
package pricing

import (
	"errors"

	"github.com/venuebook/hall-booking/internal/model"
)

// Sentinel errors surfaced to handlers.  They map to 422 responses; the
// caller decides whether to re-attempt with different inputs.
var (
	ErrInvalidGuestCount = errors.New("guest count must be a positive integer")
	ErrCapacityExceeded  = errors.New("guest count exceeds hall capacity")
	ErrMenuMismatch      = errors.New("menu does not belong to this hall")
	ErrEventTypeMismatch = errors.New("event type does not belong to this hall")
)

// Breakdown itemizes the price of a booking.  All amounts are whole
// currency units.  Total is always the exact sum of the other fields.
type Breakdown struct {
	BasePrice          int64                    `json:"base_price"`
	MenuPrice          int64                    `json:"menu_price"`
	FunctionTypeCharge int64                    `json:"function_type_charge"`
	AdditionalCharges  []model.AdditionalCharge `json:"additional_charges"`
	Total              int64                    `json:"total"`
}

// Quote computes the price of booking hall for guestCount guests under the
// given event type, with an optional menu (nil for none).  It is a pure
// read with no side effects and deterministic integer arithmetic:
//
//	basePrice          = hall.BasePrice
//	menuPrice          = menu.PricePerPlate * guestCount (0 without menu)
//	functionTypeCharge = basePrice * eventType.PriceModifier / 100
//	additionalCharges  = hall.AdditionalCharges, flat and unconditional
//	total              = basePrice + menuPrice + functionTypeCharge + sum(charges)
//
// The event type must belong to the hall; the caller resolves it by
// (hall, name) beforehand.  A menu from a different hall is rejected.
func Quote(hall *model.Hall, eventType *model.EventType, menu *model.Menu, guestCount uint32) (Breakdown, error) {
	if guestCount == 0 {
		return Breakdown{}, ErrInvalidGuestCount
	}
	if guestCount > hall.Capacity {
		return Breakdown{}, ErrCapacityExceeded
	}
	if eventType.HallID != hall.ID {
		return Breakdown{}, ErrEventTypeMismatch
	}
	if menu != nil && menu.HallID != hall.ID {
		return Breakdown{}, ErrMenuMismatch
	}

	b := Breakdown{
		BasePrice:         hall.BasePrice,
		AdditionalCharges: hall.AdditionalCharges,
	}
	if menu != nil {
		b.MenuPrice = menu.PricePerPlate * int64(guestCount)
	}
	b.FunctionTypeCharge = hall.BasePrice * int64(eventType.PriceModifier) / 100
	b.Total = b.BasePrice + b.MenuPrice + b.FunctionTypeCharge + model.ChargeTotal(b.AdditionalCharges)
	return b, nil
}
