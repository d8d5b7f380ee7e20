package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/handler"
	"github.com/venuebook/hall-booking/internal/middleware"
	"github.com/venuebook/hall-booking/internal/model"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1/hall-owner.
// All routes require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1/hall-owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner),
	)

	// ---- Halls ----
	g.POST("/halls", o.CreateHall)
	g.GET("/halls", o.ListHalls)
	g.PUT("/halls/:id", o.UpdateHall)
	g.PATCH("/halls/:id", o.UpdateHall) // alias for clients that use PATCH
	g.PATCH("/halls/:id/active", o.SetHallActive)

	// ---- Menus ----
	g.POST("/halls/:id/menus", o.CreateMenu)
	g.GET("/halls/:id/menus", o.ListMenus)
	g.DELETE("/menus/:id", o.DeleteMenu)

	// ---- Event types (supported functions) ----
	g.POST("/halls/:id/event-types", o.CreateEventType)
	g.GET("/halls/:id/event-types", o.ListEventTypes)
	g.DELETE("/event-types/:id", o.DeleteEventType)

	// ---- Time slots ----
	g.POST("/halls/:id/time-slots", o.CreateSlot)
	g.GET("/halls/:id/time-slots", o.ListSlots)
	g.DELETE("/time-slots/:id", o.DeleteSlot)

	// ---- Bookings ----
	g.GET("/halls/:id/bookings", o.ListHallBookings)
	g.PATCH("/bookings/:id/accept", o.AcceptBooking)
	g.PATCH("/bookings/:id/reject", o.RejectBooking)
	g.PATCH("/bookings/:id/complete", o.CompleteBooking)
}
