package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/repository"
)

// UpdateCartRequest replaces the user's cart wholesale. The client
// keeps the authoritative copy and syncs it here.
type UpdateCartRequest struct {
	Items map[string]int `json:"items" binding:"required"`
}

// HandleGetCart handles GET /api/cart
func HandleGetCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		cart := user.Cart
		if cart == nil {
			cart = map[string]int{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
	}
}

// HandleUpdateCart handles PUT /api/cart
func HandleUpdateCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		var req UpdateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid cart payload: " + err.Error()})
			return
		}

		// Drop malformed product keys and non-positive quantities
		// rather than rejecting the whole cart.
		cleaned := make(map[string]int, len(req.Items))
		for id, qty := range req.Items {
			if _, err := primitive.ObjectIDFromHex(id); err != nil {
				continue
			}
			if qty <= 0 {
				continue
			}
			cleaned[id] = qty
		}

		if err := repos.User.UpdateCart(c.Request.Context(), user.ID, cleaned); err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cleaned})
	}
}
