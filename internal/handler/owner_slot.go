package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/model"
	"github.com/venuebook/hall-booking/internal/repository"
)

type slotReq struct {
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// CreateSlot handles POST /v1/hall-owner/halls/:id/time-slots.  The new
// slot must not overlap any existing non-blocked slot of the same hall
// and date; intervals are half-open so touching boundaries are fine.
func (h *OwnerHandler) CreateSlot(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Date = strings.TrimSpace(req.Date)
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)
	if err := model.ValidateSlotWindow(req.Date, req.StartTime, req.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if _, ok := h.ownHall(c, ownerID, hallID); !ok {
		return nil
	}
	slot := &model.TimeSlot{
		HallID:    hallID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := h.Slots.Create(c.Request().Context(), slot); err != nil {
		if errors.Is(err, repository.ErrSlotOverlap) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "time slot overlaps an existing slot"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create slot"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"slot": slot})
}

// ListSlots handles GET /v1/hall-owner/halls/:id/time-slots?date=.
func (h *OwnerHandler) ListSlots(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter is required"})
	}
	if _, ok := h.ownHall(c, ownerID, hallID); !ok {
		return nil
	}
	slots, err := h.Slots.ListByHallAndDate(c.Request().Context(), hallID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load slots"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": slots})
}

// DeleteSlot handles DELETE /v1/hall-owner/time-slots/:id.  A slot with
// a confirmed booking cannot be removed.
func (h *OwnerHandler) DeleteSlot(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	if err := h.Slots.DeleteByIDAndOwner(c.Request().Context(), slotID, ownerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrSlotBooked):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot has a confirmed booking"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete slot"})
	}
	return c.NoContent(http.StatusNoContent)
}
