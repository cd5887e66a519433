package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/pkg/errors"
)

// writeError maps a service error onto the response envelope.
// Authorization and validation failures carry their own message;
// anything else is logged in full and surfaced as a generic internal
// error so persistence details never leak to callers.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": e.Error()})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": e.Error()})
	case *errors.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": e.Error()})
	case *errors.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": e.Error()})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": e.Error()})
	default:
		logger.Error("Internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

// noStore marks a response as non-cacheable
func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store, max-age=0")
}
