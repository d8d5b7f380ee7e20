package model

import "time"

// Hall represents a bookable venue listing.  Halls belong to an owner and
// carry everything the pricing engine needs: a base price, a capacity
// ceiling and a list of flat additional charges applied to every booking.
//
// Fields:
//  ID                – primary key identifier.
//  OwnerID           – user ID of the hall owner.
//  Name              – display name of the hall.
//  City              – city the hall is located in, used by search.
//  Capacity          – maximum guest count; always >= 1.
//  BasePrice         – base rental price in whole currency units; >= 0.
//  Amenities         – free-form amenity labels (parking, AC, stage...).
//  AdditionalCharges – flat per-hall fees added to every booking total.
//  IsActive          – whether the hall is visible to customers.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Hall struct {
	ID                uint64             // halls.id
	OwnerID           uint64             // halls.owner_id
	Name              string             // halls.name
	City              string             // halls.city
	Capacity          uint32             // halls.capacity
	BasePrice         int64              // halls.base_price
	Amenities         []string           // halls.amenities (JSON)
	AdditionalCharges []AdditionalCharge // halls.additional_charges (JSON)
	IsActive          bool               // halls.is_active
	CreatedAt         time.Time          // halls.created_at
	UpdatedAt         time.Time          // halls.updated_at
}

// AdditionalCharge is a named flat fee attached to a hall.  Charges are
// applied unconditionally to every booking and never scaled by guest
// count or duration.
type AdditionalCharge struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ChargeTotal sums a list of additional charges.
func ChargeTotal(charges []AdditionalCharge) int64 {
	var sum int64
	for _, ch := range charges {
		sum += ch.Price
	}
	return sum
}
