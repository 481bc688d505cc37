package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edutectno/identity-service/internal/api/handler"
	"github.com/edutectno/identity-service/internal/api/middleware"
	"github.com/edutectno/identity-service/internal/core/domain"
	"github.com/edutectno/identity-service/internal/core/ports"
	"github.com/edutectno/identity-service/internal/core/service"
	"github.com/edutectno/identity-service/internal/infrastructure/config"
	mongorepo "github.com/edutectno/identity-service/internal/infrastructure/db/mongo"
	redisinfra "github.com/edutectno/identity-service/internal/infrastructure/db/redis"
	"github.com/edutectno/identity-service/internal/infrastructure/http/handlers"
	"github.com/edutectno/identity-service/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The hasher is constructed by the caller because its worker pool outlives
// individual requests.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, hasher ports.PasswordHasher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisinfra.NewLoginThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginAttemptWindow)
	authService := service.NewAuthService(userRepo, hasher, codec, throttle, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler()
	adminHandler := handler.NewAdminHandler(userRepo)

	// Token filter runs on every request; public prefixes pass through
	// untouched and everything else gets a best-effort identity resolution.
	e.Use(middleware.Authenticate(codec, userRepo, cfg.PublicRoutePrefixes, log))

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected API surface ---
	apiGroup := e.Group("/api/v1", middleware.RequireAuthenticated())
	apiGroup.POST("/demo", profileHandler.Demo)
	apiGroup.GET("/me", profileHandler.Me)

	adminGroup := apiGroup.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	adminGroup.GET("/users/:username", adminHandler.GetUser)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
