package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edutectno/identity-service/internal/api/metrics"
	"github.com/edutectno/identity-service/internal/core/domain"
	"github.com/edutectno/identity-service/internal/core/ports"
	"github.com/edutectno/identity-service/internal/token"
)

// Context keys set by Authenticate and read by downstream gates and handlers.
const (
	ContextUserKey = "auth_user"
	ContextRoleKey = "auth_role"
)

const bearerPrefix = "Bearer "

// Authenticate resolves a bearer token to a user and attaches it to the
// request context. The middleware is fail-open: a missing, malformed,
// tampered, or expired token leaves the request unauthenticated but never
// rejects it — access decisions belong to the gates in rbac.go. Requests
// matching a public route prefix skip token handling entirely.
func Authenticate(codec *token.Codec, users ports.UserRepository, publicPrefixes []string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isPublic(c.Request().URL.Path, publicPrefixes) {
				return next(c)
			}

			raw := bearerToken(c.Request())
			if raw == "" {
				return next(c)
			}

			claims, err := codec.Parse(raw)
			if err != nil {
				if errors.Is(err, token.ErrSignatureInvalid) {
					metrics.TokenValidationsTotal.WithLabelValues("invalid_signature").Inc()
				} else {
					metrics.TokenValidationsTotal.WithLabelValues("malformed").Inc()
				}
				log.Debug().Err(err).Msg("bearer token rejected")
				return next(c)
			}

			subject := claims.Subject
			if subject == "" || c.Get(ContextUserKey) != nil {
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
				} else {
					log.Warn().Err(err).Msg("user lookup failed during token validation")
				}
				return next(c)
			}

			if codec.IsExpired(claims, time.Now().UTC()) || user.Username != subject {
				metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
				return next(c)
			}

			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
			c.Set(ContextUserKey, user)
			c.Set(ContextRoleKey, user.Authority())

			return next(c)
		}
	}
}

func isPublic(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from the Authorization header. The header
// must carry the exact "Bearer " prefix (case-sensitive, single space).
func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	raw, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return ""
	}
	return raw
}
