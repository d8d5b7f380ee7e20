package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/venuebook/hall-booking/internal/model"
)

// EventTypeRepo manages the event types a hall supports.  Each row pairs
// a hall with an occasion name and the percentage modifier the pricing
// engine applies.  (hall_id, name) is unique at the schema level.
type EventTypeRepo struct {
	db *sql.DB
}

// NewEventTypeRepo constructs an EventTypeRepo with the given DB handle.
func NewEventTypeRepo(db *sql.DB) *EventTypeRepo {
	return &EventTypeRepo{db: db}
}

// Create inserts a new event type.  Duplicate (hall, name) pairs are
// reported as ErrDuplicateEventType via the MySQL 1062 duplicate-key
// error.
func (r *EventTypeRepo) Create(ctx context.Context, et *model.EventType) error {
	const q = `INSERT INTO event_types (hall_id, name, price_modifier) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, et.HallID, et.Name, et.PriceModifier)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateEventType
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	et.ID = uint64(id)
	return nil
}

// ErrDuplicateEventType is returned when a hall already defines the
// requested event type name.
var ErrDuplicateEventType = errors.New("event type already exists for this hall")

// GetByHallAndName resolves the event type a booking's function type
// refers to.  The name comparison is case-insensitive.  Returns
// ErrEventTypeNotFound when the hall does not support the occasion.
func (r *EventTypeRepo) GetByHallAndName(ctx context.Context, hallID uint64, name string) (*model.EventType, error) {
	const q = `SELECT id, hall_id, name, price_modifier, created_at
	           FROM event_types WHERE hall_id = ? AND LOWER(name) = LOWER(?)`
	var et model.EventType
	err := r.db.QueryRowContext(ctx, q, hallID, name).
		Scan(&et.ID, &et.HallID, &et.Name, &et.PriceModifier, &et.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventTypeNotFound
		}
		return nil, err
	}
	return &et, nil
}

// GetByHallAndNameTx is GetByHallAndName inside an existing transaction.
func (r *EventTypeRepo) GetByHallAndNameTx(ctx context.Context, tx *sql.Tx, hallID uint64, name string) (*model.EventType, error) {
	const q = `SELECT id, hall_id, name, price_modifier, created_at
	           FROM event_types WHERE hall_id = ? AND LOWER(name) = LOWER(?)`
	var et model.EventType
	err := tx.QueryRowContext(ctx, q, hallID, name).
		Scan(&et.ID, &et.HallID, &et.Name, &et.PriceModifier, &et.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventTypeNotFound
		}
		return nil, err
	}
	return &et, nil
}

// ListByHall returns all event types of a hall ordered by name.
func (r *EventTypeRepo) ListByHall(ctx context.Context, hallID uint64) ([]model.EventType, error) {
	const q = `SELECT id, hall_id, name, price_modifier, created_at
	           FROM event_types WHERE hall_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.EventType, 0)
	for rows.Next() {
		var et model.EventType
		if err := rows.Scan(&et.ID, &et.HallID, &et.Name, &et.PriceModifier, &et.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, et)
	}
	return out, rows.Err()
}

// DeleteByIDAndOwner removes an event type when its hall belongs to the
// owner.  The join enforces ownership in one statement.
func (r *EventTypeRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE et FROM event_types et
	           JOIN halls h ON h.id = et.hall_id
	           WHERE et.id = ? AND h.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventTypeNotFound
	}
	return nil
}
