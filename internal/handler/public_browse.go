package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/repository"
)

// PublicHandler serves the unauthenticated browse and search surface.
// Only active halls are visible here.
type PublicHandler struct {
	Halls      *repository.HallRepo
	Menus      *repository.MenuRepo
	EventTypes *repository.EventTypeRepo
	Slots      *repository.TimeSlotRepo
	Reviews    *repository.ReviewRepo
}

func NewPublicHandler(halls *repository.HallRepo, menus *repository.MenuRepo, eventTypes *repository.EventTypeRepo, slots *repository.TimeSlotRepo, reviews *repository.ReviewRepo) *PublicHandler {
	if halls == nil || menus == nil || eventTypes == nil || slots == nil || reviews == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Halls: halls, Menus: menus, EventTypes: eventTypes, Slots: slots, Reviews: reviews}
}

// SearchHalls handles GET /v1/halls.  All query filters are optional
// and combine conjunctively:
//
//	city, min_capacity, max_capacity, min_price, max_price,
//	function_type, amenities (comma separated), date (YYYY-MM-DD),
//	page, page_size
//
// A date filter narrows results to halls with at least one AVAILABLE
// slot that day and attaches those slots to each result.
func (h *PublicHandler) SearchHalls(c echo.Context) error {
	q := repository.HallSearchQuery{
		City:         strings.TrimSpace(c.QueryParam("city")),
		FunctionType: strings.TrimSpace(c.QueryParam("function_type")),
	}
	if v := c.QueryParam("min_capacity"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_capacity"})
		}
		q.MinCapacity = uint32(n)
	}
	if v := c.QueryParam("max_capacity"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_capacity"})
		}
		q.MaxCapacity = uint32(n)
	}
	if v := c.QueryParam("min_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
		}
		q.MinPrice = n
	}
	if v := c.QueryParam("max_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		q.MaxPrice = n
	}
	if v := strings.TrimSpace(c.QueryParam("amenities")); v != "" {
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				q.Amenities = append(q.Amenities, a)
			}
		}
	}
	if v := strings.TrimSpace(c.QueryParam("date")); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		q.Date = v
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Page = n
		}
	}
	if v := c.QueryParam("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.PageSize = n
		}
	}

	items, total, err := h.Halls.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
	})
}

// GetHall handles GET /v1/halls/:id.  It returns an active hall with
// its menus, event types and reviews.  An optional ?date= query also
// attaches that day's slots.
func (h *PublicHandler) GetHall(c echo.Context) error {
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	ctx := c.Request().Context()

	hall, err := h.Halls.GetByID(ctx, hallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !hall.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
	}

	menus, err := h.Menus.ListByHall(ctx, hallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menus"})
	}
	eventTypes, err := h.EventTypes.ListByHall(ctx, hallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event types"})
	}
	reviews, err := h.Reviews.ListByHall(ctx, hallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}

	resp := echo.Map{
		"hall":        hall,
		"menus":       menus,
		"event_types": eventTypes,
		"reviews":     reviews,
	}
	if date := strings.TrimSpace(c.QueryParam("date")); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		slots, err := h.Slots.ListByHallAndDate(ctx, hallID, date)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load slots"})
		}
		resp["slots"] = slots
	}
	return c.JSON(http.StatusOK, resp)
}
