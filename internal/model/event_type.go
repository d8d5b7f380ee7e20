package model

import "time"

// EventType names an occasion a hall can host (Wedding, Birthday,
// Conference...) together with a percentage price modifier applied on top
// of the hall's base price.  The pair (hall, name) is unique; a booking's
// function type must match one of the hall's event types.
//
// Fields:
//  ID            – primary key identifier.
//  HallID        – hall this event type belongs to.
//  Name          – occasion name, unique per hall.
//  PriceModifier – percentage of the base price added as a charge.
//                  Valid range is -100 to 1000.
//  CreatedAt     – creation timestamp.
type EventType struct {
	ID            uint64    // event_types.id
	HallID        uint64    // event_types.hall_id
	Name          string    // event_types.name
	PriceModifier int32     // event_types.price_modifier
	CreatedAt     time.Time // event_types.created_at
}

// Bounds for EventType.PriceModifier.
const (
	MinPriceModifier = -100
	MaxPriceModifier = 1000
)

// ValidPriceModifier reports whether m lies inside the allowed range.
func ValidPriceModifier(m int32) bool {
	return m >= MinPriceModifier && m <= MaxPriceModifier
}
