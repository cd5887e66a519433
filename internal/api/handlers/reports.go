package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/repository"
	"github.com/swiftkart/storefront/internal/service"
)

// HandleSalesReport handles GET /api/seller/reports/sales
//
// Query params: range=all|today|week|month|custom, plus from/to
// (YYYY-MM-DD) when range=custom. The aggregation runs server side
// over the seller's orders in the selected window.
func HandleSalesReport(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		rng, err := service.ParseDateRange(
			c.DefaultQuery("range", "all"),
			c.Query("from"),
			c.Query("to"),
			time.Now(),
		)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		orderService := service.NewOrderService(repos, logger)
		report, err := orderService.SellerSalesReport(c.Request.Context(), user.ID, rng)
		if err != nil {
			logger.Error("Failed to build sales report", zap.Error(err), zap.String("seller_id", user.ID.Hex()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
	}
}
