package repository

import (
	"context"
	"strings"

	"github.com/venuebook/hall-booking/internal/model"
)

// HallSearchQuery defines the optional, conjunctive filters for hall
// search.  Zero values mean "no filter".  When Date is set, only halls
// with at least one AVAILABLE slot on that date survive, and the
// matching slots are attached to each result.
type HallSearchQuery struct {
	City         string
	MinCapacity  uint32
	MaxCapacity  uint32
	MinPrice     int64
	MaxPrice     int64
	FunctionType string
	Amenities    []string
	Date         string
	Page         int
	PageSize     int
}

// HallSearchRow is one search result: the hall plus its menus, event
// types and (when a date filter was given) the available slots that day.
type HallSearchRow struct {
	Hall       model.Hall        `json:"hall"`
	Menus      []model.Menu      `json:"menus"`
	EventTypes []model.EventType `json:"event_types"`
	Slots      []model.TimeSlot  `json:"available_slots,omitempty"`
}

// buildHallSearchWhere assembles the WHERE clause for a search query.
// All filters are ANDed; absent filters contribute nothing.  Split out
// of Search so predicate assembly is testable without a database.
func buildHallSearchWhere(q HallSearchQuery) (string, []interface{}) {
	where := []string{"h.is_active = 1"}
	args := []interface{}{}

	if q.City != "" {
		where = append(where, "LOWER(h.city) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	if q.MinCapacity > 0 {
		where = append(where, "h.capacity >= ?")
		args = append(args, q.MinCapacity)
	}
	if q.MaxCapacity > 0 {
		where = append(where, "h.capacity <= ?")
		args = append(args, q.MaxCapacity)
	}
	if q.MinPrice > 0 {
		where = append(where, "h.base_price >= ?")
		args = append(args, q.MinPrice)
	}
	if q.MaxPrice > 0 {
		where = append(where, "h.base_price <= ?")
		args = append(args, q.MaxPrice)
	}
	if q.FunctionType != "" {
		where = append(where, "EXISTS (SELECT 1 FROM event_types et WHERE et.hall_id = h.id AND LOWER(et.name) = LOWER(?))")
		args = append(args, q.FunctionType)
	}
	for _, am := range q.Amenities {
		// amenities subset: every requested label must be present
		where = append(where, "JSON_CONTAINS(h.amenities, JSON_QUOTE(?))")
		args = append(args, am)
	}
	if q.Date != "" {
		where = append(where, "EXISTS (SELECT 1 FROM time_slots ts WHERE ts.hall_id = h.id AND ts.slot_date = ? AND ts.status = ?)")
		args = append(args, q.Date, model.SlotAvailable)
	}
	return strings.Join(where, " AND "), args
}

// Search runs the hall search and annotates each hit with menus, event
// types and (with a date filter) available slots.  The annotations are
// fetched with IN-list secondary queries keyed by hall ID.
func (r *HallRepo) Search(ctx context.Context, q HallSearchQuery) ([]HallSearchRow, int64, error) {
	cond, args := buildHallSearchWhere(q)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM halls h WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.PageSize <= 0 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT ` + prefixedHallColumns + ` FROM halls h WHERE ` + cond + ` ORDER BY h.id LIMIT ? OFFSET ?`
	argsData := append(append([]interface{}{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]HallSearchRow, 0, limit)
	index := make(map[uint64]int)
	for rows.Next() {
		var row HallSearchRow
		if err := scanHall(rows, &row.Hall); err != nil {
			return nil, 0, err
		}
		row.Menus = []model.Menu{}
		row.EventTypes = []model.EventType{}
		index[row.Hall.ID] = len(out)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(out) == 0 {
		return out, total, nil
	}

	ids := make([]interface{}, 0, len(out))
	placeholders := make([]string, 0, len(out))
	for _, row := range out {
		ids = append(ids, row.Hall.ID)
		placeholders = append(placeholders, "?")
	}
	in := strings.Join(placeholders, ",")

	// menus for all result halls in one query
	menuRows, err := r.db.QueryContext(ctx,
		`SELECT id, hall_id, name, price_per_plate, items, created_at FROM menus
		 WHERE hall_id IN (`+in+`) ORDER BY hall_id, price_per_plate`, ids...)
	if err != nil {
		return nil, 0, err
	}
	defer menuRows.Close()
	for menuRows.Next() {
		var m model.Menu
		if err := scanMenu(menuRows, &m); err != nil {
			return nil, 0, err
		}
		if i, ok := index[m.HallID]; ok {
			out[i].Menus = append(out[i].Menus, m)
		}
	}
	if err := menuRows.Err(); err != nil {
		return nil, 0, err
	}

	// event types for all result halls
	etRows, err := r.db.QueryContext(ctx,
		`SELECT id, hall_id, name, price_modifier, created_at FROM event_types
		 WHERE hall_id IN (`+in+`) ORDER BY hall_id, name`, ids...)
	if err != nil {
		return nil, 0, err
	}
	defer etRows.Close()
	for etRows.Next() {
		var et model.EventType
		if err := etRows.Scan(&et.ID, &et.HallID, &et.Name, &et.PriceModifier, &et.CreatedAt); err != nil {
			return nil, 0, err
		}
		if i, ok := index[et.HallID]; ok {
			out[i].EventTypes = append(out[i].EventTypes, et)
		}
	}
	if err := etRows.Err(); err != nil {
		return nil, 0, err
	}

	if q.Date != "" {
		slotArgs := append(append([]interface{}{}, ids...), q.Date, model.SlotAvailable)
		slotRows, err := r.db.QueryContext(ctx,
			`SELECT `+slotColumns+` FROM time_slots
			 WHERE hall_id IN (`+in+`) AND slot_date = ? AND status = ?
			 ORDER BY hall_id, start_time`, slotArgs...)
		if err != nil {
			return nil, 0, err
		}
		defer slotRows.Close()
		for slotRows.Next() {
			var s model.TimeSlot
			if err := scanSlot(slotRows, &s); err != nil {
				return nil, 0, err
			}
			if i, ok := index[s.HallID]; ok {
				out[i].Slots = append(out[i].Slots, s)
			}
		}
		if err := slotRows.Err(); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

const prefixedHallColumns = `h.id, h.owner_id, h.name, h.city, h.capacity, h.base_price, h.amenities, h.additional_charges, h.is_active, h.created_at, h.updated_at`
