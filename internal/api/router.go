package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/apas/pharmacy-system/docs"
	"github.com/apas/pharmacy-system/internal/api/handler"
	"github.com/apas/pharmacy-system/internal/api/middleware"
	"github.com/apas/pharmacy-system/internal/core/domain"
	"github.com/apas/pharmacy-system/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the outside.
type Dependencies struct {
	IdentityService     ports.IdentityService
	PrescriptionService ports.PrescriptionService

	Mongo handler.MongoPinger
	Redis handler.RedisPinger

	JWTSecret      string
	RequestTimeout time.Duration
	Logger         zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "pharmacy",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestTimeout(deps.RequestTimeout))

	// --- Dependencies ---
	identityHandler := handler.NewIdentityHandler(deps.IdentityService)
	prescriptionHandler := handler.NewPrescriptionHandler(deps.PrescriptionService)
	dashboardHandler := handler.NewDashboardHandler(deps.IdentityService, deps.PrescriptionService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Probes and tooling (no auth required) ---
	e.GET("/", healthDepsHandler.Status)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Identity routes ---
	e.POST("/register/:role", identityHandler.Register)
	e.POST("/login/:role", identityHandler.Login)

	// --- Authenticated routes (any role) ---
	e.GET("/user/:identifier", identityHandler.GetUser, authMiddleware)
	e.GET("/dashboard/:role", dashboardHandler.Get, authMiddleware)
	e.GET("/prescriptions/:identifier", prescriptionHandler.ListByPatient, authMiddleware)

	// --- Doctor routes ---
	doctorOnly := middleware.RBAC(domain.RoleDoctor)
	e.POST("/prescription", prescriptionHandler.Create, authMiddleware, doctorOnly)

	// --- Pharmacist routes ---
	pharmacistOnly := middleware.RBAC(domain.RolePharmacist)
	e.GET("/pharmacist/prescriptions", prescriptionHandler.List, authMiddleware, pharmacistOnly)
	e.PATCH("/pharmacist/prescription/:id", prescriptionHandler.Fulfill, authMiddleware, pharmacistOnly)
	e.POST("/fetch-and-revert-prescriptions", prescriptionHandler.RevertAll, authMiddleware, pharmacistOnly)

	return e
}
