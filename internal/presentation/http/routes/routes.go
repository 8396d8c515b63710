package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vatbooks/vatbooks-api/internal/config"
	domainRepo "github.com/vatbooks/vatbooks-api/internal/domain/repository"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/handler"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/middleware"
	"github.com/vatbooks/vatbooks-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Company   *handler.CompanyHandler
	Customer  *handler.CustomerHandler
	Category  *handler.CategoryHandler
	Invoice   *handler.InvoiceHandler
	VATReturn *handler.VATReturnHandler
	Report    *handler.ReportHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	CompanyRepo     domainRepo.CompanyRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerProtectedRoutes(protected, h)

		// Company-scoped routes (active company header required)
		scoped := protected.Group("")
		scoped.Use(middleware.CompanyMiddleware(deps.CompanyRepo))

		// Per-company rate limiter
		rateLimiter := middleware.NewCompanyRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		scoped.Use(rateLimiter.Middleware())

		registerScopedRoutes(scoped, h, deps)
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

// registerProtectedRoutes wires the endpoints that need a user but no active
// company, profile management and company selection.
func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	companies := protected.Group("/companies")
	{
		companies.GET("", h.Company.List)
		companies.POST("", h.Company.Create)
	}
}

// registerScopedRoutes wires everything that operates on the active company.
func registerScopedRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	company := scoped.Group("/companies/current")
	{
		company.GET("", h.Company.GetCurrent)
		company.PUT("", h.Company.UpdateCurrent)
		company.GET("/members", h.Company.ListMembers)
		company.POST("/members", h.Company.AddMember)
		company.PUT("/members/:user_id", h.Company.UpdateMemberRole)
		company.DELETE("/members/:user_id", h.Company.RemoveMember)
	}

	customers := scoped.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	categories := scoped.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/tree", h.Category.Tree)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	invoices := scoped.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware to prevent duplicates
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/overdue", h.Invoice.Overdue)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.PUT("/:id/status", h.Invoice.UpdateStatus)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}

	vatReturns := scoped.Group("/vat-returns")
	{
		vatReturns.GET("", h.VATReturn.List)
		vatReturns.POST("", h.VATReturn.Create)
		vatReturns.GET("/:id", h.VATReturn.Get)
		vatReturns.POST("/:id/recompute", h.VATReturn.Recompute)
		vatReturns.POST("/:id/finalize", h.VATReturn.Finalize)
		vatReturns.DELETE("/:id", h.VATReturn.Delete)
	}

	reports := scoped.Group("/reports")
	{
		reports.GET("/profit-loss", h.Report.ProfitLoss)
		reports.GET("/cash-flow", h.Report.CashFlow)
		reports.GET("/categories", h.Report.Categories)
	}

	exports := scoped.Group("/exports")
	{
		exports.GET("/invoices.xlsx", h.Export.Invoices)
		// :id carries the .xlsx suffix, the handler strips it
		exports.GET("/vat-returns/:id", h.Export.VATReturn)
	}

	scoped.GET("/dashboard", h.Dashboard.GetStats)
}
