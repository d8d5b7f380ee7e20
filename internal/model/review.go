package model

import "time"

// Review is a customer's rating of a hall.  A customer may review a hall
// exactly once, and only after a booking for that hall has been completed.
// Reviews are deletable only by their author.
//
// Fields:
//  ID         – primary key identifier.
//  HallID     – hall being reviewed.
//  CustomerID – author of the review.
//  Rating     – integer rating from 1 to 5.
//  Comment    – optional free-form text.
//  CreatedAt  – creation timestamp.
type Review struct {
	ID         uint64    // reviews.id
	HallID     uint64    // reviews.hall_id
	CustomerID uint64    // reviews.customer_id
	Rating     int       // reviews.rating
	Comment    string    // reviews.comment
	CreatedAt  time.Time // reviews.created_at
}

// ValidRating reports whether r is an integer rating between 1 and 5.
func ValidRating(r int) bool { return r >= 1 && r <= 5 }
