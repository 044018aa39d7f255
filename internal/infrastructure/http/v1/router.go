// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"freightops/internal/infrastructure/http/v1/handlers"
	"freightops/internal/infrastructure/http/v1/middleware"
	"freightops/internal/infrastructure/storage/postgres"
	"freightops/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	// Static bearer credentials shared with the automation platform. When
	// TokenHash is set it wins over the plaintext Token.
	Token     string
	TokenHash string

	Automation *handlers.AutomationHandler

	// IdempotencyStore is optional; nil disables the middleware.
	IdempotencyStore *postgres.IdempotencyStore
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Webhooks arrive from arbitrary origins (n8n cloud, chat gateways).
	router.Use(cors.Default())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1/automation")
	api.Use(middleware.Auth(cfg.Token, cfg.TokenHash))
	if cfg.IdempotencyStore != nil {
		api.Use(middleware.Idempotency(cfg.IdempotencyStore))
	}
	{
		api.POST("/create_shipment", cfg.Automation.CreateShipment)
		api.POST("/add_costs", cfg.Automation.AddCosts)
		api.POST("/add_revenue", cfg.Automation.AddRevenue)
		api.POST("/update_status", cfg.Automation.UpdateStatus)
		api.POST("/record_payment", cfg.Automation.RecordPayment)
		api.POST("/query_shipments", cfg.Automation.QueryShipments)
		api.POST("/query_supplier_balance", cfg.Automation.QuerySupplierBalance)
		api.POST("/cashflow_projection", cfg.Automation.CashflowProjection)
		api.POST("/notify", cfg.Automation.Notify)
	}

	return router
}
