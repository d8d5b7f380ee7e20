package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/model"
	"github.com/venuebook/hall-booking/internal/repository"
)

// ownHall resolves a hall the caller owns or writes the error response.
func (h *OwnerHandler) ownHall(c echo.Context, ownerID, hallID uint64) (*model.Hall, bool) {
	hall, err := h.Halls.GetByIDAndOwner(c.Request().Context(), hallID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrHallNotFound):
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		case errors.Is(err, repository.ErrForbidden):
			_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return nil, false
	}
	return hall, true
}

type menuReq struct {
	Name          string   `json:"name"`
	PricePerPlate int64    `json:"price_per_plate"`
	Items         []string `json:"items"`
}

// CreateMenu handles POST /v1/hall-owner/halls/:id/menus.
func (h *OwnerHandler) CreateMenu(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req menuReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.PricePerPlate < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_per_plate must not be negative"})
	}
	if _, ok := h.ownHall(c, ownerID, hallID); !ok {
		return nil
	}
	menu := &model.Menu{
		HallID:        hallID,
		Name:          req.Name,
		PricePerPlate: req.PricePerPlate,
		Items:         req.Items,
	}
	if err := h.Menus.Create(c.Request().Context(), menu); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create menu"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"menu": menu})
}

// ListMenus handles GET /v1/hall-owner/halls/:id/menus.
func (h *OwnerHandler) ListMenus(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	if _, ok := h.ownHall(c, ownerID, hallID); !ok {
		return nil
	}
	menus, err := h.Menus.ListByHall(c.Request().Context(), hallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menus"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": menus})
}

// DeleteMenu handles DELETE /v1/hall-owner/menus/:id.
func (h *OwnerHandler) DeleteMenu(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	menuID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu id"})
	}
	if err := h.Menus.DeleteByIDAndOwner(c.Request().Context(), menuID, ownerID); err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete menu"})
	}
	return c.NoContent(http.StatusNoContent)
}

type eventTypeReq struct {
	Name          string `json:"name"`
	PriceModifier int32  `json:"price_modifier"`
}

// CreateEventType handles POST /v1/hall-owner/halls/:id/event-types.
// The set of event types on a hall is its supported function list.
func (h *OwnerHandler) CreateEventType(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req eventTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !model.ValidPriceModifier(req.PriceModifier) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_modifier must be between -100 and 1000"})
	}
	if _, ok := h.ownHall(c, ownerID, hallID); !ok {
		return nil
	}
	et := &model.EventType{
		HallID:        hallID,
		Name:          req.Name,
		PriceModifier: req.PriceModifier,
	}
	if err := h.EventTypes.Create(c.Request().Context(), et); err != nil {
		if errors.Is(err, repository.ErrDuplicateEventType) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "event type already exists for this hall"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create event type"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"event_type": et})
}

// ListEventTypes handles GET /v1/hall-owner/halls/:id/event-types.
func (h *OwnerHandler) ListEventTypes(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	if _, ok := h.ownHall(c, ownerID, hallID); !ok {
		return nil
	}
	eventTypes, err := h.EventTypes.ListByHall(c.Request().Context(), hallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event types"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": eventTypes})
}

// DeleteEventType handles DELETE /v1/hall-owner/event-types/:id.
func (h *OwnerHandler) DeleteEventType(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	etID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event type id"})
	}
	if err := h.EventTypes.DeleteByIDAndOwner(c.Request().Context(), etID, ownerID); err != nil {
		if errors.Is(err, repository.ErrEventTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event type not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete event type"})
	}
	return c.NoContent(http.StatusNoContent)
}
