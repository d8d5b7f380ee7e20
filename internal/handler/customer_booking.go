package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/model"
	"github.com/venuebook/hall-booking/internal/pricing"
	"github.com/venuebook/hall-booking/internal/queue"
	"github.com/venuebook/hall-booking/internal/repository"
	queue_publisher "github.com/venuebook/hall-booking/internal/service"
)

// CustomerHandler groups repositories required to quote prices, create
// bookings, cancel them and write reviews on behalf of customers.  All
// methods assume that JWT authentication and role validation has
// already been performed by middleware.  Methods may return 401
// Unauthorized if the user ID cannot be extracted from the context.
// Booking creation and cancellation run inside a transaction so the
// booking row and the slot status always move together.
type CustomerHandler struct {
	Halls      *repository.HallRepo
	EventTypes *repository.EventTypeRepo
	Menus      *repository.MenuRepo
	Slots      *repository.TimeSlotRepo
	Bookings   *repository.BookingRepo
	Reviews    *repository.ReviewRepo
}

// NewCustomerHandler constructs a new CustomerHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewCustomerHandler(halls *repository.HallRepo, eventTypes *repository.EventTypeRepo, menus *repository.MenuRepo, slots *repository.TimeSlotRepo, bookings *repository.BookingRepo, reviews *repository.ReviewRepo) *CustomerHandler {
	if halls == nil || eventTypes == nil || menus == nil || slots == nil || bookings == nil || reviews == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		Halls:      halls,
		EventTypes: eventTypes,
		Menus:      menus,
		Slots:      slots,
		Bookings:   bookings,
		Reviews:    reviews,
	}
}

type quoteReq struct {
	FunctionType string  `json:"function_type"`
	MenuID       *uint64 `json:"menu_id"`
	GuestCount   uint32  `json:"guest_count"`
}

// CalculatePrice handles POST /v1/customer/halls/:id/calculate-price.
// It returns the full price breakdown for the requested configuration
// without creating anything.  The same computation runs again at
// booking time, so the preview always matches the charged total.
func (h *CustomerHandler) CalculatePrice(c echo.Context) error {
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req quoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.FunctionType = strings.TrimSpace(req.FunctionType)
	if req.FunctionType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "function_type is required"})
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

	et, err := h.EventTypes.GetByHallAndName(ctx, hallID, req.FunctionType)
	if err != nil {
		if errors.Is(err, repository.ErrEventTypeNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "hall does not support this function type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var menu *model.Menu
	if req.MenuID != nil {
		menu, err = h.Menus.GetByID(ctx, *req.MenuID)
		if err != nil {
			if errors.Is(err, repository.ErrMenuNotFound) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "menu not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	breakdown, err := pricing.Quote(hall, et, menu, req.GuestCount)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, breakdown)
}

type createBookingReq struct {
	HallID       uint64  `json:"hall_id"`
	TimeSlotID   uint64  `json:"time_slot_id"`
	FunctionType string  `json:"function_type"`
	MenuID       *uint64 `json:"menu_id"`
	GuestCount   uint32  `json:"guest_count"`
	Notes        string  `json:"notes"`
}

// CreateBooking handles POST /v1/customer/bookings.  Inside one
// transaction it validates the configuration, prices it, flips the slot
// from AVAILABLE to BLOCKED with a conditional update and inserts the
// PENDING booking with the full price snapshot.  A slot that is no
// longer AVAILABLE yields 409 so exactly one of two racing requests
// can succeed.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.FunctionType = strings.TrimSpace(req.FunctionType)
	if req.HallID == 0 || req.TimeSlotID == 0 || req.FunctionType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id, time_slot_id and function_type are required"})
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

	slot, err := h.Slots.GetByIDTx(ctx, tx, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "time slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if slot.HallID != req.HallID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time slot does not belong to this hall"})
	}

	hall, err := h.Halls.GetByIDTx(ctx, tx, req.HallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !hall.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
	}

	et, err := h.EventTypes.GetByHallAndNameTx(ctx, tx, req.HallID, req.FunctionType)
	if err != nil {
		if errors.Is(err, repository.ErrEventTypeNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "hall does not support this function type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var menu *model.Menu
	if req.MenuID != nil {
		menu, err = h.Menus.GetByIDTx(ctx, tx, *req.MenuID)
		if err != nil {
			if errors.Is(err, repository.ErrMenuNotFound) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "menu not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	breakdown, err := pricing.Quote(hall, et, menu, req.GuestCount)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	// CAS on the slot: only an AVAILABLE slot can be claimed.
	if err := h.Slots.TryTransitionTx(ctx, tx, slot.ID, model.SlotAvailable, model.SlotBlocked); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "time slot is no longer available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update slot status"})
	}

	booking := &model.Booking{
		HallID:             hall.ID,
		CustomerID:         userID,
		TimeSlotID:         slot.ID,
		MenuID:             req.MenuID,
		EventTypeID:        et.ID,
		FunctionType:       et.Name,
		GuestCount:         req.GuestCount,
		BasePrice:          breakdown.BasePrice,
		MenuPrice:          breakdown.MenuPrice,
		FunctionTypeCharge: breakdown.FunctionTypeCharge,
		AdditionalCharges:  breakdown.AdditionalCharges,
		TotalPrice:         breakdown.Total,
		Status:             model.BookingPending,
		Notes:              strings.TrimSpace(req.Notes),
	}
	if err := h.Bookings.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	publishBookingEvent(queue.EventBookingRequested, booking, hall.Name, slot)

	return c.JSON(http.StatusCreated, echo.Map{
		"booking":   booking,
		"breakdown": breakdown,
	})
}

// CancelBooking handles PATCH /v1/customer/bookings/:id/cancel.  A
// customer can cancel a PENDING or CONFIRMED booking; the slot is
// released back to AVAILABLE in the same transaction.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
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

	booking, err := h.Bookings.GetForCustomerTx(ctx, tx, bookingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tr, err := model.Transition(booking.Status, model.ActionCancel)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled in its current state"})
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

	publishWithLookups(h.Halls, h.Slots, queue.EventBookingCancelled, booking)

	return c.JSON(http.StatusOK, echo.Map{"id": booking.ID, "status": tr.Next})
}

// ListBookings handles GET /v1/customer/bookings.  Newest first; empty
// array when the customer has none.
func (h *CustomerHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListByCustomer(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/customer/bookings/:id and returns the full
// booking including its price snapshot.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Bookings.GetByIDForCustomer(c.Request().Context(), bookingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": booking})
}

// slotStateFor returns the slot status implied by a booking status.  A
// PENDING booking blocks its slot; a CONFIRMED one books it.
func slotStateFor(s model.BookingStatus) model.SlotStatus {
	if s == model.BookingConfirmed {
		return model.SlotBooked
	}
	return model.SlotBlocked
}

// publishBookingEvent emits a lifecycle event in the background so a
// broker outage never fails the request.
func publishBookingEvent(eventType string, b *model.Booking, hallName string, slot *model.TimeSlot) {
	ev := queue.BookingEvent{
		Type:         eventType,
		BookingID:    b.ID,
		CustomerID:   b.CustomerID,
		HallID:       b.HallID,
		HallName:     hallName,
		FunctionType: b.FunctionType,
		GuestCount:   b.GuestCount,
		TotalPrice:   b.TotalPrice,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if slot != nil {
		ev.SlotDate = slot.Date
		ev.SlotStart = slot.StartTime
		ev.SlotEnd = slot.EndTime
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishBookingEvent(ctx, ev); err != nil {
			log.Printf("booking-events: publish %s failed: %v", eventType, err)
		}
	}()
}

// publishWithLookups loads the hall and slot for the event payload
// outside the transaction; lookup failures only degrade the payload.
func publishWithLookups(halls *repository.HallRepo, slots *repository.TimeSlotRepo, eventType string, b *model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hallName := ""
	if hall, err := halls.GetByID(ctx, b.HallID); err == nil {
		hallName = hall.Name
	}
	var slot *model.TimeSlot
	if s, err := slots.GetByID(ctx, b.TimeSlotID); err == nil {
		slot = s
	}
	publishBookingEvent(eventType, b, hallName, slot)
}
