package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/venuebook/hall-booking/internal/model"
)

// HallRepo provides methods to create and retrieve halls.  It embeds a
// database handle to perform queries and commands.  The amenities and
// additional_charges columns are stored as JSON documents and decoded
// into their model slices on every read.
type HallRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions.
func (r *HallRepo) DB() *sql.DB { return r.db }

func scanHall(row interface {
	Scan(dest ...interface{}) error
}, h *model.Hall) error {
	var amenities, charges sql.NullString
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.City, &h.Capacity, &h.BasePrice,
		&amenities, &charges, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return err
	}
	if amenities.Valid && amenities.String != "" {
		if err := json.Unmarshal([]byte(amenities.String), &h.Amenities); err != nil {
			return err
		}
	}
	if charges.Valid && charges.String != "" {
		if err := json.Unmarshal([]byte(charges.String), &h.AdditionalCharges); err != nil {
			return err
		}
	}
	return nil
}

const hallColumns = `id, owner_id, name, city, capacity, base_price, amenities, additional_charges, is_active, created_at, updated_at`

// Create inserts a new hall and reads the row back so that timestamps
// and defaults are populated on the provided struct.  The hall must have
// OwnerID, Name, City, Capacity and BasePrice set; capacity and price
// bounds are validated by the handler before this call.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	amenities, err := json.Marshal(h.Amenities)
	if err != nil {
		return err
	}
	charges, err := json.Marshal(h.AdditionalCharges)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO halls (owner_id, name, city, capacity, base_price, amenities, additional_charges)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.OwnerID, h.Name, h.City, h.Capacity, h.BasePrice, string(amenities), string(charges))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const qSelect = `SELECT ` + hallColumns + ` FROM halls WHERE id = ?`
	return scanHall(r.db.QueryRowContext(ctx, qSelect, h.ID), h)
}

// GetByID retrieves a hall by its ID regardless of owner.  It returns
// ErrHallNotFound when no row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls WHERE id = ?`
	var h model.Hall
	if err := scanHall(r.db.QueryRowContext(ctx, q, id), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetByIDTx is GetByID inside an existing transaction.  Booking creation
// reads the hall in the same transaction that flips the slot status.
func (r *HallRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls WHERE id = ?`
	var h model.Hall
	if err := scanHall(tx.QueryRowContext(ctx, q, id), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetByIDAndOwner retrieves a hall but only if it belongs to the given
// owner.  This helper is used to enforce resource ownership.  It
// distinguishes a missing hall (ErrHallNotFound) from a foreign one
// (ErrForbidden) so handlers can return 404 vs 403 correctly.
func (r *HallRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Hall, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return h, nil
}

// ListByOwner returns all halls belonging to an owner, newest first.
func (r *HallRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls WHERE owner_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Hall, 0)
	for rows.Next() {
		h := new(model.Hall)
		if err := scanHall(rows, h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every hall including inactive ones, newest first.
// Admin moderation only; the public surface goes through Search.
func (r *HallRepo) ListAll(ctx context.Context) ([]*model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Hall, 0)
	for rows.Next() {
		h := new(model.Hall)
		if err := scanHall(rows, h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateByIDAndOwner updates the mutable hall fields when the hall
// belongs to the given owner.  Returns ErrHallNotFound when no row
// matched.
func (r *HallRepo) UpdateByIDAndOwner(ctx context.Context, h *model.Hall) error {
	amenities, err := json.Marshal(h.Amenities)
	if err != nil {
		return err
	}
	charges, err := json.Marshal(h.AdditionalCharges)
	if err != nil {
		return err
	}
	const q = `UPDATE halls
	           SET name = ?, city = ?, capacity = ?, base_price = ?, amenities = ?, additional_charges = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		h.Name, h.City, h.Capacity, h.BasePrice, string(amenities), string(charges), h.ID, h.OwnerID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}

// SetActive flips the is_active flag.  Owners pass their own ID; admins
// pass 0 to skip the ownership restriction.
func (r *HallRepo) SetActive(ctx context.Context, hallID, ownerID uint64, active bool) error {
	q := `UPDATE halls SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	args := []interface{}{active, hallID}
	if ownerID != 0 {
		q += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}
