package router

import (
	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/handler"
	"github.com/venuebook/hall-booking/internal/middleware"
	"github.com/venuebook/hall-booking/internal/model"
)

// RegisterCustomer registers customer-scoped endpoints under
// /v1/customer.  All routes require a valid JWT and the CUSTOMER role.
// Customers can price a configuration, create and cancel bookings,
// inspect their own bookings and manage their reviews.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/customer",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)

	g.POST("/halls/:id/calculate-price", h.CalculatePrice)

	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PATCH("/bookings/:id/cancel", h.CancelBooking)

	g.POST("/halls/:id/reviews", h.CreateReview)
	g.DELETE("/reviews/:id", h.DeleteReview)
}
