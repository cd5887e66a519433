package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/internal/repository"
)

// CreateAddressRequest represents the address creation payload.
// Addresses are written once at checkout time and never mutated.
type CreateAddressRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Area        string `json:"area" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Pincode     string `json:"pincode" binding:"required"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Area        string `json:"area"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

func toAddressResponse(a *domain.Address) AddressResponse {
	return AddressResponse{
		ID:          a.ID.Hex(),
		FullName:    a.FullName,
		PhoneNumber: a.PhoneNumber,
		Area:        a.Area,
		City:        a.City,
		State:       a.State,
		Pincode:     a.Pincode,
	}
}

// HandleCreateAddress handles POST /api/addresses
func HandleCreateAddress(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		var req CreateAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid address payload: " + err.Error()})
			return
		}

		address := &domain.Address{
			UserID:      user.ID,
			FullName:    req.FullName,
			PhoneNumber: req.PhoneNumber,
			Area:        req.Area,
			City:        req.City,
			State:       req.State,
			Pincode:     req.Pincode,
		}

		if err := repos.Address.Create(c.Request.Context(), address); err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "address": toAddressResponse(address)})
	}
}

// HandleListAddresses handles GET /api/addresses
func HandleListAddresses(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			return
		}

		addresses, err := repos.Address.ListByUserID(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to list addresses", zap.Error(err), zap.String("user_id", user.ID.Hex()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
			return
		}

		responses := make([]AddressResponse, len(addresses))
		for i, a := range addresses {
			responses[i] = toAddressResponse(a)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "addresses": responses})
	}
}
