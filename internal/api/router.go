package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api/handlers"
	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/config"
	"github.com/swiftkart/storefront/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Public catalog
		api.GET("/products", handlers.HandleListProducts(repos, logger))

		// Buyer routes (require authentication)
		buyerRoutes := api.Group("")
		buyerRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			buyerRoutes.GET("/cart", handlers.HandleGetCart(repos, logger))
			buyerRoutes.PUT("/cart", handlers.HandleUpdateCart(repos, logger))
			buyerRoutes.POST("/addresses", handlers.HandleCreateAddress(repos, logger))
			buyerRoutes.GET("/addresses", handlers.HandleListAddresses(repos, logger))
			buyerRoutes.GET("/orders", handlers.HandleListMyOrders(repos, logger))
			buyerRoutes.POST("/orders", handlers.HandleCheckout(repos, logger))
		}

		// Seller routes (require authentication + seller role)
		sellerRoutes := api.Group("/seller")
		sellerRoutes.Use(middleware.AuthMiddleware(repos, logger))
		sellerRoutes.Use(middleware.RequireSeller(logger))
		{
			sellerRoutes.POST("/products", handlers.HandleCreateProduct(repos, logger))
			sellerRoutes.PUT("/products/:id", handlers.HandleUpdateProduct(repos, logger))
			sellerRoutes.DELETE("/products/:id", handlers.HandleDeleteProduct(repos, logger))
			sellerRoutes.GET("/orders", handlers.HandleListSellerOrders(repos, logger))
			sellerRoutes.PUT("/orders", handlers.HandleUpdateSellerOrder(repos, logger))
			sellerRoutes.GET("/reports/sales", handlers.HandleSalesReport(repos, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
	})
}

// requestIDMiddleware tags each request with a UUID, echoed in the
// X-Request-ID header and attached to access logs.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
