package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/wishlistapp/accounts/docs"
	"github.com/wishlistapp/accounts/internal/api/handler"
	"github.com/wishlistapp/accounts/internal/api/middleware"
	"github.com/wishlistapp/accounts/internal/api/view"
	"github.com/wishlistapp/accounts/internal/core/ports"
)

// RouterConfig carries the dependencies of the HTTP layer.
type RouterConfig struct {
	Accounts  ports.AccountService
	JWTSecret string
	Checks    map[string]handler.Checker
	Log       zerolog.Logger

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)
	e.Validator = handler.NewValidator()
	e.Renderer = view.NewRenderer()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: cfg.Registerer,
	}))

	// --- Dependencies ---
	accountHandler := handler.NewAccountHandler(cfg.Accounts)
	sessionHandler := handler.NewSessionHandler(cfg.Accounts)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Pages ---
	e.GET("/signup", view.Signup)
	e.GET("/login", view.Login)

	// --- Accounts ---
	e.POST("/users", accountHandler.Signup)
	e.GET("/users/:id", accountHandler.GetUser, authMiddleware, middleware.SelfOnly("id"))
	e.PATCH("/users/:id", accountHandler.UpdateProfile, authMiddleware, middleware.SelfOnly("id"))

	// --- Sessions ---
	e.POST("/sessions", sessionHandler.Login)
	e.POST("/sessions/remember", sessionHandler.Resume)
	e.DELETE("/sessions", sessionHandler.Logout, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: cfg.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
