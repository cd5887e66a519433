package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/repository"
	"github.com/swiftkart/storefront/internal/service"
)

// HandleListMyOrders handles GET /api/orders
//
// Returns all of the authenticated buyer's orders newest first, each
// with its address and line-item products resolved. The result set is
// intentionally unbounded; order volume per buyer is small.
func HandleListMyOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		noStore(c)

		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		orders, err := orderService.ListBuyerOrders(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to list buyer orders", zap.Error(err), zap.String("user_id", user.ID.Hex()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}

		if orders == nil {
			orders = []service.OrderView{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// HandleCheckout handles POST /api/orders
func HandleCheckout(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid checkout payload: " + err.Error()})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.PlaceOrder(c.Request.Context(), user, req)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}
