package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/model"
	"github.com/venuebook/hall-booking/internal/queue"
	"github.com/venuebook/hall-booking/internal/repository"
)

// ListHallBookings handles GET /v1/hall-owner/halls/:id/bookings.
func (h *OwnerHandler) ListHallBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	items, err := h.Bookings.ListByHallForOwner(c.Request().Context(), hallID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AcceptBooking handles PATCH /v1/hall-owner/bookings/:id/accept.  A
// PENDING booking becomes CONFIRMED and its slot moves BLOCKED->BOOKED.
func (h *OwnerHandler) AcceptBooking(c echo.Context) error {
	return h.transitionBooking(c, model.ActionAccept, queue.EventBookingConfirmed)
}

// RejectBooking handles PATCH /v1/hall-owner/bookings/:id/reject.  A
// PENDING booking becomes REJECTED and its slot is released.
func (h *OwnerHandler) RejectBooking(c echo.Context) error {
	return h.transitionBooking(c, model.ActionReject, queue.EventBookingRejected)
}

// CompleteBooking handles PATCH /v1/hall-owner/bookings/:id/complete.
// A CONFIRMED booking becomes COMPLETED; the slot stays BOOKED as a
// record of the held event.  Completion opens the review gate for the
// customer.
func (h *OwnerHandler) CompleteBooking(c echo.Context) error {
	return h.transitionBooking(c, model.ActionComplete, queue.EventBookingCompleted)
}

// transitionBooking applies one owner action to a booking.  Ownership is
// verified first, then the transition table decides the target states.
// Both the booking row and the slot row change through conditional
// updates inside one transaction, so a concurrent decision loses cleanly
// with a 409.
func (h *OwnerHandler) transitionBooking(c echo.Context, action model.BookingAction, eventType string) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	booking, err := h.Bookings.GetForOwnerTx(ctx, tx, bookingID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tr, err := model.Transition(booking.Status, action)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "action not allowed in current booking state"})
	}
	if err := h.Bookings.UpdateStatusTx(ctx, tx, booking.ID, booking.Status, tr.Next); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking state changed, retry"})
	}
	if tr.SlotNext != nil {
		expected := slotStateFor(booking.Status)
		if err := h.Slots.TryTransitionTx(ctx, tx, booking.TimeSlotID, expected, *tr.SlotNext); err != nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot state changed, retry"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	publishWithLookups(h.Halls, h.Slots, eventType, booking)

	return c.JSON(http.StatusOK, echo.Map{"id": booking.ID, "status": tr.Next})
}
