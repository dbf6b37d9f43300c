// File: middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	userRepo "slotbook/database/repository/user"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "userRole"
)

// AuthMiddleware validates the bearer token signature and checks its hash
// against the stored one, so logged-out tokens are rejected even before
// they expire.
func AuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		account, err := users.GetByTokenHash(c.Request.Context(), utils.HashToken(tokenString))
		if err != nil || account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or user not found"})
			return
		}

		c.Set(ContextUserIDKey, account.ID)
		c.Set(ContextRoleKey, account.Role)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid bearer token is present
// but lets anonymous requests through untouched.
func OptionalAuth(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.Next()
			return
		}
		if account, err := users.GetByTokenHash(c.Request.Context(), utils.HashToken(tokenString)); err == nil && account != nil {
			c.Set(ContextUserIDKey, account.ID)
			c.Set(ContextRoleKey, account.Role)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
