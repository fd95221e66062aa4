package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/Pritex32/priscomsales-api/internal/config"
	domainRepo "github.com/Pritex32/priscomsales-api/internal/domain/repository"
	"github.com/Pritex32/priscomsales-api/internal/presentation/http/handler"
	"github.com/Pritex32/priscomsales-api/internal/presentation/http/middleware"
	"github.com/Pritex32/priscomsales-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Employee  *handler.EmployeeHandler
	Inventory *handler.InventoryHandler
	Sale      *handler.SaleHandler
	Proforma  *handler.ProformaHandler
	Payment   *handler.PaymentHandler
	Report    *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	StoragePath     string
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Uploaded invoice documents
	if deps.StoragePath != "" {
		router.Static("/storage", deps.StoragePath)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Customers
	registerCustomerRoutes(protected, h)

	// Employees
	registerEmployeeRoutes(protected, h)

	// Inventory
	registerInventoryRoutes(protected, h)

	// Sales
	registerSaleRoutes(protected, h, deps)

	// Proformas
	registerProformaRoutes(protected, h, deps)

	// Payments
	registerPaymentRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerEmployeeRoutes(protected *gin.RouterGroup, h *Handlers) {
	employees := protected.Group("/employees")
	employees.Use(middleware.RequirePermission("manage-employees"))
	{
		employees.GET("", h.Employee.List)
		employees.POST("", h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", h.Employee.Update)
		employees.DELETE("/:id", h.Employee.Delete)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	items := protected.Group("/inventory")
	items.Use(middleware.RequirePermission("manage-inventory"))
	{
		items.GET("", h.Inventory.List)
		items.POST("", h.Inventory.Create)
		items.GET("/:id", h.Inventory.Get)
		items.PUT("/:id", h.Inventory.Update)
		items.DELETE("/:id", h.Inventory.Delete)
		items.GET("/:id/logs", h.Inventory.ListLogs)
		items.POST("/:id/supply", h.Inventory.RecordSupply)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("manage-sales"))
	{
		sales.GET("", h.Sale.List)
		// Sale creation uses idempotency middleware to prevent duplicates
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.GET("/pending", h.Sale.ListPending)
		sales.GET("/:id", h.Sale.Get)
		sales.DELETE("/:id", h.Sale.Delete)
	}
}

func registerProformaRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	proformas := protected.Group("/proformas")
	proformas.Use(middleware.RequirePermission("manage-proformas"))
	{
		proformas.GET("", h.Proforma.List)
		proformas.POST("", h.Proforma.Create)
		proformas.GET("/:id", h.Proforma.Get)
		proformas.POST("/:id/invoice", h.Proforma.UploadInvoice)
		// Conversion uses idempotency middleware to prevent double conversion
		proformas.POST("/:id/convert", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Proforma.Convert)
		proformas.DELETE("/:id", h.Proforma.Delete)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers) {
	payments := protected.Group("/payments")
	payments.Use(middleware.RequirePermission("record-payments"))
	{
		payments.GET("", h.Payment.List)
		payments.POST("", h.Payment.Apply)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/sales-trend", h.Report.SalesTrend)
		reports.GET("/dashboard", h.Report.Dashboard)
	}
}
