package model

import "time"

// Menu is a per-plate catering offer attached to a hall.  A booking may
// optionally reference a menu, in which case the menu price is the plate
// price multiplied by the guest count.
//
// Fields:
//  ID            – primary key identifier.
//  HallID        – hall this menu belongs to.
//  Name          – display name of the menu.
//  PricePerPlate – price per guest in whole currency units; >= 0.
//  Items         – dish names served under this menu.
//  CreatedAt     – creation timestamp.
type Menu struct {
	ID            uint64    // menus.id
	HallID        uint64    // menus.hall_id
	Name          string    // menus.name
	PricePerPlate int64     // menus.price_per_plate
	Items         []string  // menus.items (JSON)
	CreatedAt     time.Time // menus.created_at
}
