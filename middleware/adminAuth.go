// File: middleware/adminAuth.go
package middleware

import (
	"net/http"

	"slotbook/models"

	"github.com/gin-gonic/gin"
)

// AdminOnly gates a route group to accounts carrying the admin role. Must
// run after AuthMiddleware so the role is already in the context.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
