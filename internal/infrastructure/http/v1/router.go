package v1

import (
	"github.com/gin-gonic/gin"

	"gstbill/internal/domain/auth"
	"gstbill/internal/domain/catalogs/company"
	"gstbill/internal/domain/catalogs/product"
	"gstbill/internal/domain/invoice"
	"gstbill/internal/domain/settings"
	"gstbill/internal/infrastructure/http/v1/handlers"
	"gstbill/internal/infrastructure/http/v1/middleware"
	"gstbill/internal/infrastructure/pdf"
	"gstbill/internal/infrastructure/storage/postgres"
	"gstbill/internal/infrastructure/storage/postgres/catalog_repo"
	"gstbill/internal/infrastructure/storage/postgres/document_repo"
	"gstbill/internal/infrastructure/storage/postgres/settings_repo"
	"gstbill/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations in transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Audit records entity change history
	Audit *postgres.AuditService

	// Development switches Gin into debug mode
	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// Repositories and services share the single-database TxManager.
	companyRepo := catalog_repo.NewCompanyRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	invoiceRepo := document_repo.NewInvoiceRepo(cfg.TxManager)
	settingsRepo := settings_repo.NewSettingsRepo(cfg.TxManager)

	companyService := company.NewService(companyRepo, cfg.TxManager)
	productService := product.NewService(productRepo, cfg.TxManager)
	settingsService := settings.NewService(settingsRepo, cfg.TxManager)
	invoiceService := invoice.NewService(
		invoiceRepo,
		companyRepo,
		productRepo,
		settingsService,
		cfg.TxManager,
		cfg.Audit,
	)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		registerAuthRoutes(apiV1, baseHandler, cfg)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		RegisterCatalogRoutes(
			protected.Group("/companies"),
			handlers.NewCompanyHandler(baseHandler, companyService),
		)
		RegisterCatalogRoutes(
			protected.Group("/products"),
			handlers.NewProductHandler(baseHandler, productService),
		)

		invoiceHandler := handlers.NewInvoiceHandler(
			baseHandler,
			invoiceService,
			companyService,
			settingsService,
			pdf.NewRenderer(),
			cfg.Audit,
		)
		invoices := protected.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.List)
			invoices.POST("", invoiceHandler.Create)
			invoices.GET("/next-number", invoiceHandler.NextNumber)
			invoices.GET("/:id", invoiceHandler.Get)
			invoices.PUT("/:id", invoiceHandler.Update)
			invoices.DELETE("/:id", invoiceHandler.Delete)
			invoices.POST("/:id/payments", invoiceHandler.RecordPayment)
			invoices.POST("/:id/status", invoiceHandler.SetStatus)
			invoices.GET("/:id/pdf", invoiceHandler.DownloadPDF)
			invoices.GET("/:id/history", invoiceHandler.History)
		}

		settingsHandler := handlers.NewSettingsHandler(baseHandler, settingsService)
		settingsGroup := protected.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.Get)
			settingsGroup.PUT("", settingsHandler.Save)
			settingsGroup.POST("/reset", settingsHandler.Reset)
			settingsGroup.POST("/tax-preview", settingsHandler.PreviewTax)
		}
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	public := rg.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.POST("/refresh", authHandler.Refresh)
	}

	private := rg.Group("/auth")
	private.Use(middleware.Auth(cfg.JWTValidator))
	{
		private.POST("/logout", authHandler.Logout)
		private.GET("/me", authHandler.Me)
		private.POST("/tokens/cleanup", middleware.RequireAdmin(), authHandler.CleanupTokens)
	}
}
