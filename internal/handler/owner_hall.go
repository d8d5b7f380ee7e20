package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/model"
	"github.com/venuebook/hall-booking/internal/repository"
)

// OwnerHandler bundles repositories for hall owners to manage their
// halls, menus, event types, time slots and incoming bookings.
type OwnerHandler struct {
	Halls      *repository.HallRepo
	Menus      *repository.MenuRepo
	EventTypes *repository.EventTypeRepo
	Slots      *repository.TimeSlotRepo
	Bookings   *repository.BookingRepo
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any dependency is nil.
func NewOwnerHandler(halls *repository.HallRepo, menus *repository.MenuRepo, eventTypes *repository.EventTypeRepo, slots *repository.TimeSlotRepo, bookings *repository.BookingRepo) *OwnerHandler {
	if halls == nil || menus == nil || eventTypes == nil || slots == nil || bookings == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{Halls: halls, Menus: menus, EventTypes: eventTypes, Slots: slots, Bookings: bookings}
}

type hallReq struct {
	Name              string                   `json:"name"`
	City              string                   `json:"city"`
	Capacity          uint32                   `json:"capacity"`
	BasePrice         int64                    `json:"base_price"`
	Amenities         []string                 `json:"amenities"`
	AdditionalCharges []model.AdditionalCharge `json:"additional_charges"`
}

func (r *hallReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.City = strings.TrimSpace(r.City)
	if r.Name == "" || r.City == "" {
		return "name and city are required"
	}
	if r.Capacity == 0 {
		return "capacity must be a positive integer"
	}
	if r.BasePrice < 0 {
		return "base_price must not be negative"
	}
	for _, ch := range r.AdditionalCharges {
		if strings.TrimSpace(ch.Name) == "" || ch.Price < 0 {
			return "additional charges need a name and a non-negative price"
		}
	}
	return ""
}

// CreateHall handles POST /v1/hall-owner/halls.
func (h *OwnerHandler) CreateHall(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	hall := &model.Hall{
		OwnerID:           ownerID,
		Name:              req.Name,
		City:              req.City,
		Capacity:          req.Capacity,
		BasePrice:         req.BasePrice,
		Amenities:         req.Amenities,
		AdditionalCharges: req.AdditionalCharges,
	}
	if err := h.Halls.Create(c.Request().Context(), hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create hall"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"hall": hall})
}

// ListHalls handles GET /v1/hall-owner/halls.
func (h *OwnerHandler) ListHalls(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	halls, err := h.Halls.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load halls"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": halls})
}

// UpdateHall handles PUT /v1/hall-owner/halls/:id.
func (h *OwnerHandler) UpdateHall(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	hall, err := h.Halls.GetByIDAndOwner(ctx, hallID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	hall.Name = req.Name
	hall.City = req.City
	hall.Capacity = req.Capacity
	hall.BasePrice = req.BasePrice
	hall.Amenities = req.Amenities
	hall.AdditionalCharges = req.AdditionalCharges
	if err := h.Halls.UpdateByIDAndOwner(ctx, hall); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hall": hall})
}

type activeReq struct {
	Active bool `json:"active"`
}

// SetHallActive handles PATCH /v1/hall-owner/halls/:id/active.  Owners
// can take a hall off the public surface and bring it back; existing
// bookings are unaffected.
func (h *OwnerHandler) SetHallActive(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req activeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Halls.SetActive(c.Request().Context(), hallID, ownerID, req.Active); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": hallID, "active": req.Active})
}
