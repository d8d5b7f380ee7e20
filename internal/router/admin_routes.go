package router

import (
	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/handler"
	"github.com/venuebook/hall-booking/internal/middleware"
	"github.com/venuebook/hall-booking/internal/model"
)

// RegisterAdmin registers the moderation endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/users", a.ListUsers)
	g.PATCH("/users/:id/active", a.SetUserActive)
	g.GET("/halls", a.ListHalls)
	g.PATCH("/halls/:id/active", a.SetHallActive)
	g.DELETE("/reviews/:id", a.DeleteReview)
}
