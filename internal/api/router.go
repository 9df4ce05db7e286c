package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tonipcv/user-provisioner/internal/api/handler"
	"github.com/tonipcv/user-provisioner/internal/api/middleware"
	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

// Dependencies carries everything the router needs. Services come in as
// ports so tests can wire stubs.
type Dependencies struct {
	DB          *mongo.Database
	Redis       *redis.Client
	Identity    handler.Pinger
	Provisioner ports.ProvisioningService
	Operators   ports.OperatorService
	JWTSecret   string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("provisioning"))

	// --- Operator auth ---
	operatorHandler := handler.NewOperatorHandler(deps.Operators)
	e.POST("/auth/register", operatorHandler.Register)
	e.POST("/auth/login", operatorHandler.Login)

	// --- Provisioning (operators only) ---
	provisionHandler := handler.NewProvisionHandler(deps.Provisioner)
	v1 := e.Group("/v1",
		middleware.Auth(deps.JWTSecret),
		middleware.RBAC(domain.RoleAdmin, domain.RoleOperator),
	)
	v1.POST("/users", provisionHandler.Create)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis, deps.Identity)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
