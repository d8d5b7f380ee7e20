package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/repository"
)

// AdminHandler exposes the moderation surface: listing accounts,
// deactivating users and halls, and removing reviews.  Routes are
// gated on the ADMIN role by middleware.
type AdminHandler struct {
	Users   *repository.UserRepo
	Halls   *repository.HallRepo
	Reviews *repository.ReviewRepo
}

func NewAdminHandler(users *repository.UserRepo, halls *repository.HallRepo, reviews *repository.ReviewRepo) *AdminHandler {
	if users == nil || halls == nil || reviews == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users, Halls: halls, Reviews: reviews}
}

type adminUser struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ListUsers handles GET /v1/admin/users.  Password hashes never leave
// the handler.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load users"})
	}
	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		out = append(out, adminUser{ID: u.ID, Email: u.Email, Role: u.Role, IsActive: u.IsActive})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SetUserActive handles PATCH /v1/admin/users/:id/active.  Deactivated
// accounts cannot log in or refresh sessions.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req activeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Users.SetActive(c.Request().Context(), userID, req.Active); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": userID, "active": req.Active})
}

// ListHalls handles GET /v1/admin/halls and includes inactive halls.
func (h *AdminHandler) ListHalls(c echo.Context) error {
	halls, err := h.Halls.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load halls"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": halls})
}

// SetHallActive handles PATCH /v1/admin/halls/:id/active, overriding
// ownership.
func (h *AdminHandler) SetHallActive(c echo.Context) error {
	hallID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req activeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	// owner 0 skips the ownership restriction
	if err := h.Halls.SetActive(c.Request().Context(), hallID, 0, req.Active); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update hall"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": hallID, "active": req.Active})
}

// DeleteReview handles DELETE /v1/admin/reviews/:id.
func (h *AdminHandler) DeleteReview(c echo.Context) error {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	if err := h.Reviews.DeleteByID(c.Request().Context(), reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	return c.NoContent(http.StatusNoContent)
}
