package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildHallSearchWhere_NoFilters(t *testing.T) {
	cond, args := buildHallSearchWhere(HallSearchQuery{})
	assert.Equal(t, "h.is_active = 1", cond)
	assert.Empty(t, args)
}

func TestBuildHallSearchWhere_AllFiltersAreConjunctive(t *testing.T) {
	q := HallSearchQuery{
		City:         "Karachi",
		MinCapacity:  100,
		MaxCapacity:  500,
		MinPrice:     100000,
		MaxPrice:     900000,
		FunctionType: "Wedding",
		Amenities:    []string{"parking", "stage"},
		Date:         "2025-06-14",
	}
	cond, args := buildHallSearchWhere(q)

	// one predicate per filter, joined by AND; amenities add one each
	// and the date filter binds both the date and the AVAILABLE status
	assert.Len(t, args, 10)
	assert.Contains(t, cond, "LOWER(h.city) LIKE ?")
	assert.Contains(t, cond, "h.capacity >= ?")
	assert.Contains(t, cond, "h.capacity <= ?")
	assert.Contains(t, cond, "h.base_price >= ?")
	assert.Contains(t, cond, "h.base_price <= ?")
	assert.Contains(t, cond, "et.hall_id = h.id")
	assert.Contains(t, cond, "JSON_CONTAINS(h.amenities, JSON_QUOTE(?))")
	assert.Contains(t, cond, "ts.slot_date = ? AND ts.status = ?")
	assert.NotContains(t, cond, " OR ")

	assert.Equal(t, "%karachi%", args[0])
}

func TestBuildHallSearchWhere_PartialFilters(t *testing.T) {
	cond, args := buildHallSearchWhere(HallSearchQuery{City: "Lahore", MinCapacity: 50})
	assert.Contains(t, cond, "LOWER(h.city) LIKE ?")
	assert.Contains(t, cond, "h.capacity >= ?")
	assert.NotContains(t, cond, "h.capacity <= ?")
	assert.NotContains(t, cond, "time_slots")
	assert.Len(t, args, 2)
}

func TestBuildHallSearchWhere_DateFilterRequiresAvailableSlot(t *testing.T) {
	cond, args := buildHallSearchWhere(HallSearchQuery{Date: "2025-06-14"})
	assert.Contains(t, cond, "EXISTS (SELECT 1 FROM time_slots ts")
	assert.Len(t, args, 2)
	assert.Equal(t, "2025-06-14", args[0])
}
