package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/repository"
	"github.com/swiftkart/storefront/internal/service"
)

// HandleListSellerOrders handles GET /api/seller/orders
//
// Returns orders containing at least one of the seller's products.
// Every line item is present; products resolve only for the
// requesting seller's items, and each order carries a customer
// object derived from its shipping address.
func HandleListSellerOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		orders, err := orderService.ListSellerOrders(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to list seller orders", zap.Error(err), zap.String("seller_id", user.ID.Hex()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}

		if orders == nil {
			orders = []service.OrderView{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// HandleUpdateSellerOrder handles PUT /api/seller/orders
//
// Applies a partial update among status, paymentStatus,
// cancellationReason, and refundReason to a single order. The seller
// must own at least one product in the order.
func HandleUpdateSellerOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		var req service.OrderUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "order ID is required"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.UpdateSellerOrder(c.Request.Context(), user.ID, req)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "order updated successfully",
			"order":   order,
		})
	}
}
