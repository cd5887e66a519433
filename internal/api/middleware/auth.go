package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/internal/repository"
)

const UserContextKey = "user"

// AuthMiddleware authenticates requests using API key.
// Keys are located by SHA256 digest, then verified against the bcrypt
// hash; bcrypt alone can't be used for lookup since its output is
// salted.
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid authorization header format"})
			c.Abort()
			return
		}

		apiKey := strings.TrimSpace(parts[1])
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing API key"})
			c.Abort()
			return
		}

		user, err := repos.User.GetByAPIKeyLookup(c.Request.Context(), LookupDigest(apiKey))
		if err != nil {
			logger.Warn("Failed to authenticate user", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid API key"})
			c.Abort()
			return
		}

		if !VerifyAPIKey(apiKey, user.APIKeyHash) {
			logger.Warn("API key verification failed", zap.String("user_id", user.ID.Hex()))
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid API key"})
			c.Abort()
			return
		}

		// Store user in context
		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireSeller rejects authenticated users that are not sellers.
// Non-sellers receive 401, matching the storefront's seller surface.
func RequireSeller(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authenticated"})
			c.Abort()
			return
		}
		if user.Role != domain.RoleSeller {
			logger.Warn("Non-seller attempted seller route", zap.String("user_id", user.ID.Hex()))
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserFromContext retrieves the user from the Gin context
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	user, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}

	u, ok := user.(*domain.User)
	return u, ok
}

// LookupDigest computes the SHA256 lookup digest for an API key
func LookupDigest(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}

// HashAPIKey hashes an API key using bcrypt
func HashAPIKey(apiKey string) string {
	// Use a cost of 10 for API keys (faster than passwords)
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		// This should never happen, but handle it
		return ""
	}
	return string(hash)
}

// VerifyAPIKey verifies an API key against a hash
func VerifyAPIKey(apiKey, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey))
	return err == nil
}
