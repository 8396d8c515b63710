package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/vatbooks/vatbooks-api/internal/application/service"
	"github.com/vatbooks/vatbooks-api/internal/config"
	"github.com/vatbooks/vatbooks-api/internal/infrastructure/database"
	"github.com/vatbooks/vatbooks-api/internal/infrastructure/repository"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/handler"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/routes"
	"github.com/vatbooks/vatbooks-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	vatReturnRepo := repository.NewVATReturnRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	companyService := service.NewCompanyService(companyRepo, categoryRepo)
	customerService := service.NewCustomerService(customerRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, categoryRepo, companyRepo)
	vatReturnService := service.NewVATReturnService(vatReturnRepo, invoiceRepo)
	reportService := service.NewReportService(invoiceRepo, categoryRepo)
	dashboardService := service.NewDashboardService(invoiceRepo, customerRepo, categoryRepo)
	exportService := service.NewExportService(invoiceRepo, vatReturnRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Company:   handler.NewCompanyHandler(companyService),
		Customer:  handler.NewCustomerHandler(customerService),
		Category:  handler.NewCategoryHandler(categoryService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		VATReturn: handler.NewVATReturnHandler(vatReturnService),
		Report:    handler.NewReportHandler(reportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Export:    handler.NewExportHandler(exportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		CompanyRepo:     companyRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
