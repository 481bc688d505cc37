package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutectno/identity-service/internal/core/ports"
)

// AdminHandler exposes user lookup for operators. Routes are guarded by
// RequireRole(ADMIN) in the router.
type AdminHandler struct {
	users ports.UserRepository
}

func NewAdminHandler(users ports.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// GetUser looks up a user by username.
//
// @Summary      Look up a user (admin only)
// @Tags         admin
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/v1/admin/users/{username} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	username := c.Param("username")
	user, err := h.users.FindByUsername(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
