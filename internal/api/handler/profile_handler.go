package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the authenticated-only demo surface.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Demo responds with a welcome message; reachable only with a valid token.
//
// @Summary      Secured demo endpoint
// @Tags         demo
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/demo [post]
func (h *ProfileHandler) Demo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome from secure endpoint",
	})
}

// Me returns the identity resolved for the presented token.
//
// @Summary      Current user profile
// @Tags         demo
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
