package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/Pritex32/priscomsales-api/internal/application/service"
	"github.com/Pritex32/priscomsales-api/internal/config"
	"github.com/Pritex32/priscomsales-api/internal/infrastructure/database"
	"github.com/Pritex32/priscomsales-api/internal/infrastructure/logger"
	"github.com/Pritex32/priscomsales-api/internal/infrastructure/repository"
	"github.com/Pritex32/priscomsales-api/internal/infrastructure/storage"
	"github.com/Pritex32/priscomsales-api/internal/presentation/http/handler"
	"github.com/Pritex32/priscomsales-api/internal/presentation/http/routes"
	"github.com/Pritex32/priscomsales-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	zapLogger := logger.NewForEnvironment(cfg.App.Env, cfg.Log.Level)
	defer zapLogger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		zapLogger.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	itemRepo := repository.NewInventoryItemRepository(db)
	logRepo := repository.NewInventoryLogRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	proformaRepo := repository.NewProformaRepository(db)
	proformaItemRepo := repository.NewProformaItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Invoice evidence storage
	evidenceStore := storage.NewEvidenceStore(cfg.Storage.Path, cfg.Storage.UploadMaxSize)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo)
	inventoryService := service.NewInventoryService(itemRepo, logRepo)
	saleService := service.NewSaleService(
		saleRepo,
		saleItemRepo,
		paymentRepo,
		itemRepo,
		logRepo,
		employeeRepo,
		customerRepo,
		cfg.Sales.DefaultVATRate,
		zapLogger,
	)
	proformaService := service.NewProformaService(
		proformaRepo,
		proformaItemRepo,
		itemRepo,
		customerRepo,
		evidenceStore,
		cfg.Sales.ProformaValidityDays,
		cfg.Sales.DefaultVATRate,
	)
	reconciler := service.NewConversionReconciler(
		proformaRepo,
		proformaItemRepo,
		saleRepo,
		saleItemRepo,
		paymentRepo,
		employeeRepo,
		logRepo,
		zapLogger,
	)
	paymentService := service.NewPaymentService(paymentRepo, saleRepo, cfg.Sales.PaymentTolerance, zapLogger)
	reportService := service.NewReportService(analyticsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService),
		Employee:  handler.NewEmployeeHandler(employeeService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Sale:      handler.NewSaleHandler(saleService),
		Proforma:  handler.NewProformaHandler(proformaService, reconciler),
		Payment:   handler.NewPaymentHandler(paymentService),
		Report:    handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          zapLogger,
		IdempotencyRepo: idempotencyRepo,
		StoragePath:     evidenceStore.BasePath(),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	zapLogger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", port),
	)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
