package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/venuebook/hall-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  A booking couples
// a customer, a hall and exactly one time slot, and snapshots the full
// price breakdown at creation.  Status changes go through conditional
// updates so that a transition from a stale state affects zero rows.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, hall_id, customer_id, time_slot_id, menu_id, event_type_id, function_type,
	guest_count, base_price, menu_price, function_type_charge, additional_charges, total_price,
	status, notes, created_at, updated_at`

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}, b *model.Booking) error {
	var menuID sql.NullInt64
	var charges sql.NullString
	var notes sql.NullString
	if err := row.Scan(&b.ID, &b.HallID, &b.CustomerID, &b.TimeSlotID, &menuID, &b.EventTypeID,
		&b.FunctionType, &b.GuestCount, &b.BasePrice, &b.MenuPrice, &b.FunctionTypeCharge,
		&charges, &b.TotalPrice, &b.Status, &notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if menuID.Valid {
		id := uint64(menuID.Int64)
		b.MenuID = &id
	}
	if charges.Valid && charges.String != "" {
		if err := json.Unmarshal([]byte(charges.String), &b.AdditionalCharges); err != nil {
			return err
		}
	}
	if notes.Valid {
		b.Notes = notes.String
	}
	return nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// provided record.  The caller must commit or roll back; the slot
// transition to BLOCKED happens in the same transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	charges, err := json.Marshal(b.AdditionalCharges)
	if err != nil {
		return err
	}
	const q = `INSERT INTO bookings (hall_id, customer_id, time_slot_id, menu_id, event_type_id, function_type,
	               guest_count, base_price, menu_price, function_type_charge, additional_charges, total_price, status, notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var menuID interface{}
	if b.MenuID != nil {
		menuID = *b.MenuID
	}
	res, err := tx.ExecContext(ctx, q, b.HallID, b.CustomerID, b.TimeSlotID, menuID, b.EventTypeID,
		b.FunctionType, b.GuestCount, b.BasePrice, b.MenuPrice, b.FunctionTypeCharge,
		string(charges), b.TotalPrice, b.Status, b.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(tx.QueryRowContext(ctx, sel, b.ID), b)
}

// GetForOwnerTx loads a booking within a transaction and verifies that
// the caller owns the booked hall.  Ownership is checked before any
// state inspection: a foreign booking yields ErrForbidden regardless of
// its status.
func (r *BookingRepo) GetForOwnerTx(ctx context.Context, tx *sql.Tx, bookingID, ownerID uint64) (*model.Booking, error) {
	const q = `SELECT b.id, b.hall_id, b.customer_id, b.time_slot_id, b.menu_id, b.event_type_id, b.function_type,
	                  b.guest_count, b.base_price, b.menu_price, b.function_type_charge, b.additional_charges, b.total_price,
	                  b.status, b.notes, b.created_at, b.updated_at, h.owner_id
	           FROM bookings b
	           JOIN halls h ON h.id = b.hall_id
	           WHERE b.id = ?`
	var b model.Booking
	var menuID sql.NullInt64
	var charges, notes sql.NullString
	var actualOwner uint64
	err := tx.QueryRowContext(ctx, q, bookingID).Scan(&b.ID, &b.HallID, &b.CustomerID, &b.TimeSlotID, &menuID,
		&b.EventTypeID, &b.FunctionType, &b.GuestCount, &b.BasePrice, &b.MenuPrice, &b.FunctionTypeCharge,
		&charges, &b.TotalPrice, &b.Status, &notes, &b.CreatedAt, &b.UpdatedAt, &actualOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}
	if menuID.Valid {
		id := uint64(menuID.Int64)
		b.MenuID = &id
	}
	if charges.Valid && charges.String != "" {
		if err := json.Unmarshal([]byte(charges.String), &b.AdditionalCharges); err != nil {
			return nil, err
		}
	}
	if notes.Valid {
		b.Notes = notes.String
	}
	return &b, nil
}

// GetForCustomerTx loads a booking within a transaction and verifies
// that it belongs to the calling customer.
func (r *BookingRepo) GetForCustomerTx(ctx context.Context, tx *sql.Tx, bookingID, customerID uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	var b model.Booking
	if err := scanBooking(tx.QueryRowContext(ctx, q, bookingID), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrForbidden
	}
	return &b, nil
}

// UpdateStatusTx moves a booking from one status to another with a
// conditional update.  Zero affected rows means the booking left the
// expected state since it was read; the caller must roll back and
// report an invalid transition.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, from, to model.BookingStatus) error {
	const q = `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, to, bookingID, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrInvalidStateTransition
	}
	return nil
}

// BookingDetail carries a booking together with the hall and slot
// information needed to render a list without further queries.
type BookingDetail struct {
	ID           uint64              `json:"id"`
	HallID       uint64              `json:"hall_id"`
	HallName     string              `json:"hall_name"`
	CustomerID   uint64              `json:"customer_id"`
	SlotDate     string              `json:"slot_date"`
	SlotStart    string              `json:"slot_start"`
	SlotEnd      string              `json:"slot_end"`
	FunctionType string              `json:"function_type"`
	GuestCount   uint32              `json:"guest_count"`
	TotalPrice   int64               `json:"total_price"`
	Status       model.BookingStatus `json:"status"`
	CreatedAt    string              `json:"created_at"`
}

const bookingDetailQuery = `SELECT b.id, b.hall_id, h.name, b.customer_id,
	       DATE_FORMAT(ts.slot_date, '%Y-%m-%d'), TIME_FORMAT(ts.start_time, '%H:%i'), TIME_FORMAT(ts.end_time, '%H:%i'),
	       b.function_type, b.guest_count, b.total_price, b.status, b.created_at
	FROM bookings b
	JOIN halls h ON h.id = b.hall_id
	JOIN time_slots ts ON ts.id = b.time_slot_id`

func collectBookingDetails(rows *sql.Rows) ([]BookingDetail, error) {
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.HallID, &d.HallName, &d.CustomerID, &d.SlotDate, &d.SlotStart, &d.SlotEnd,
			&d.FunctionType, &d.GuestCount, &d.TotalPrice, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByCustomer returns all bookings of a customer, newest first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, bookingDetailQuery+` WHERE b.customer_id = ? ORDER BY b.created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	return collectBookingDetails(rows)
}

// ListByHallForOwner returns all bookings on a hall when the caller owns
// it.  A missing hall yields ErrHallNotFound, a foreign one ErrForbidden.
func (r *BookingRepo) ListByHallForOwner(ctx context.Context, hallID, ownerID uint64) ([]BookingDetail, error) {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM halls WHERE id = ?`, hallID).Scan(&actualOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}
	rows, err := r.db.QueryContext(ctx, bookingDetailQuery+` WHERE b.hall_id = ? ORDER BY b.created_at DESC`, hallID)
	if err != nil {
		return nil, err
	}
	return collectBookingDetails(rows)
}

// GetByIDForCustomer returns a single booking owned by the customer.
func (r *BookingRepo) GetByIDForCustomer(ctx context.Context, bookingID, customerID uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	var b model.Booking
	if err := scanBooking(r.db.QueryRowContext(ctx, q, bookingID), &b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrForbidden
	}
	return &b, nil
}

// HasCompletedBooking reports whether the customer has at least one
// COMPLETED booking on the hall.  The review gate depends on this.
func (r *BookingRepo) HasCompletedBooking(ctx context.Context, customerID, hallID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE customer_id = ? AND hall_id = ? AND status = ?)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, customerID, hallID, model.BookingCompleted).Scan(&ok)
	return ok, err
}
