package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/venuebook/hall-booking/internal/model"
)

// MenuRepo manages per-plate catering menus attached to halls.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo constructs a MenuRepo with the given DB handle.
func NewMenuRepo(db *sql.DB) *MenuRepo {
	return &MenuRepo{db: db}
}

// Create inserts a new menu for a hall.
func (r *MenuRepo) Create(ctx context.Context, m *model.Menu) error {
	items, err := json.Marshal(m.Items)
	if err != nil {
		return err
	}
	const q = `INSERT INTO menus (hall_id, name, price_per_plate, items) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.HallID, m.Name, m.PricePerPlate, string(items))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

func scanMenu(row interface {
	Scan(dest ...interface{}) error
}, m *model.Menu) error {
	var items sql.NullString
	if err := row.Scan(&m.ID, &m.HallID, &m.Name, &m.PricePerPlate, &items, &m.CreatedAt); err != nil {
		return err
	}
	if items.Valid && items.String != "" {
		return json.Unmarshal([]byte(items.String), &m.Items)
	}
	return nil
}

// GetByID returns a menu by ID or ErrMenuNotFound.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (*model.Menu, error) {
	const q = `SELECT id, hall_id, name, price_per_plate, items, created_at FROM menus WHERE id = ?`
	var m model.Menu
	if err := scanMenu(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByIDTx is GetByID inside an existing transaction.
func (r *MenuRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Menu, error) {
	const q = `SELECT id, hall_id, name, price_per_plate, items, created_at FROM menus WHERE id = ?`
	var m model.Menu
	if err := scanMenu(tx.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByHall returns all menus of a hall ordered by price per plate.
func (r *MenuRepo) ListByHall(ctx context.Context, hallID uint64) ([]model.Menu, error) {
	const q = `SELECT id, hall_id, name, price_per_plate, items, created_at
	           FROM menus WHERE hall_id = ? ORDER BY price_per_plate`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Menu, 0)
	for rows.Next() {
		var m model.Menu
		if err := scanMenu(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteByIDAndOwner removes a menu when its hall belongs to the owner.
func (r *MenuRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE m FROM menus m
	           JOIN halls h ON h.id = m.hall_id
	           WHERE m.id = ? AND h.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMenuNotFound
	}
	return nil
}
