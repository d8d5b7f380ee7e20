package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/venuebook/hall-booking/internal/model"
)

// TimeSlotRepo manages the per-hall booking calendar.  Slot status moves
// only through conditional updates so that two requests racing on the
// same slot cannot both succeed: the losing update affects zero rows and
// surfaces ErrSlotTaken.
type TimeSlotRepo struct {
	db *sql.DB
}

// NewTimeSlotRepo constructs a TimeSlotRepo with the given DB handle.
func NewTimeSlotRepo(db *sql.DB) *TimeSlotRepo {
	return &TimeSlotRepo{db: db}
}

const slotColumns = `id, hall_id, DATE_FORMAT(slot_date, '%Y-%m-%d'), TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'), status, created_at, updated_at`

func scanSlot(row interface {
	Scan(dest ...interface{}) error
}, s *model.TimeSlot) error {
	return row.Scan(&s.ID, &s.HallID, &s.Date, &s.StartTime, &s.EndTime, &s.Status, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new slot after checking it against every non-blocked
// slot of the same hall and date with the half-open interval test
// start1 < end2 && start2 < end1.  Returns ErrSlotOverlap on intersection.
// Blocked slots are excluded from the check: they belong to a pending
// booking whose slot already existed before.
func (r *TimeSlotRepo) Create(ctx context.Context, s *model.TimeSlot) error {
	const overlapQ = `SELECT COUNT(*) FROM time_slots
	                  WHERE hall_id = ? AND slot_date = ? AND status <> ?
	                    AND start_time < ? AND ? < end_time`
	var n int
	if err := r.db.QueryRowContext(ctx, overlapQ, s.HallID, s.Date, model.SlotBlocked, s.EndTime, s.StartTime).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrSlotOverlap
	}
	const insertQ = `INSERT INTO time_slots (hall_id, slot_date, start_time, end_time, status) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, insertQ, s.HallID, s.Date, s.StartTime, s.EndTime, model.SlotAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Status = model.SlotAvailable
	const selQ = `SELECT ` + slotColumns + ` FROM time_slots WHERE id = ?`
	return scanSlot(r.db.QueryRowContext(ctx, selQ, s.ID), s)
}

// GetByID returns a slot by ID or ErrSlotNotFound.
func (r *TimeSlotRepo) GetByID(ctx context.Context, id uint64) (*model.TimeSlot, error) {
	const q = `SELECT ` + slotColumns + ` FROM time_slots WHERE id = ?`
	var s model.TimeSlot
	if err := scanSlot(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByIDTx is GetByID inside an existing transaction.
func (r *TimeSlotRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.TimeSlot, error) {
	const q = `SELECT ` + slotColumns + ` FROM time_slots WHERE id = ?`
	var s model.TimeSlot
	if err := scanSlot(tx.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByHallAndDate returns a hall's slots for one date sorted by start
// time.
func (r *TimeSlotRepo) ListByHallAndDate(ctx context.Context, hallID uint64, date string) ([]model.TimeSlot, error) {
	const q = `SELECT ` + slotColumns + ` FROM time_slots
	           WHERE hall_id = ? AND slot_date = ? ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, hallID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TimeSlot, 0)
	for rows.Next() {
		var s model.TimeSlot
		if err := scanSlot(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TryTransitionTx performs the compare-and-swap at the heart of booking
// atomicity: the status only changes when it still equals expected.
// Zero affected rows means another request got there first (or the
// booking was already moved on) and the caller must roll back.
func (r *TimeSlotRepo) TryTransitionTx(ctx context.Context, tx *sql.Tx, slotID uint64, expected, next model.SlotStatus) error {
	const q = `UPDATE time_slots SET status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, next, slotID, expected)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSlotTaken
	}
	return nil
}

// DeleteByIDAndOwner removes a slot when its hall belongs to the owner.
// A slot holding a confirmed booking cannot be deleted (ErrSlotBooked).
func (r *TimeSlotRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const checkQ = `SELECT ts.status, h.owner_id FROM time_slots ts
	                JOIN halls h ON h.id = ts.hall_id
	                WHERE ts.id = ?`
	var status model.SlotStatus
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx, checkQ, id).Scan(&status, &actualOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSlotNotFound
		}
		return err
	}
	if actualOwner != ownerID {
		return ErrForbidden
	}
	if status == model.SlotBooked {
		return ErrSlotBooked
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = ?`, id)
	return err
}
