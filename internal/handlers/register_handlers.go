package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/finance_tracker/cmd/docs"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Public authentication routes, rate limited per client IP
	authLimiter, err := middleware.NewMemoryLimiter(cfg.AuthRateLimit)
	if err != nil {
		return fmt.Errorf("invalid AUTH_RATE_LIMIT %q: %w", cfg.AuthRateLimit, err)
	}
	RegisterAuthRoutes(r, services.Auth, middleware.RateLimit(authLimiter))

	setupClientRoutes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("not_found", "Route not found"))
	})
	return nil
}

// setupClientRoutes configures the authenticated /client group and delegates
// to the entity route registrations.
func setupClientRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	client := r.Group("/client", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterAccountRoutes(client, services.Account)
	RegisterIncomeRoutes(client, services.Income)
	RegisterExpenseRoutes(client, services.Expense)
	RegisterSavingsRoutes(client, services.Savings)
	RegisterTransactionRoutes(client, services.Transaction)
	RegisterAnalysisRoutes(client, services.Analysis, services.Analytics)
	RegisterUserRoutes(client, services.User)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/client"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
