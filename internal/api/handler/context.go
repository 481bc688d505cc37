package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutectno/identity-service/internal/api/middleware"
	"github.com/edutectno/identity-service/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Authenticate
// middleware. Handlers behind RequireAuthenticated can rely on it being set;
// the 401 here only fires on a wiring mistake.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return user, nil
}
