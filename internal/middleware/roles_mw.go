package middleware

import (
	"net/http"

	"expensetracker/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware that admits only the given roles. It
// must run after JWTAuthMiddleware; if claims are missing it fails closed and
// treats the request as unauthenticated rather than assuming a default role.
func RoleMiddleware(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required."})
			return
		}

		userRole, ok := roleVal.(model.Role)
		if !ok || !userRole.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required."})
			return
		}

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Admin privileges required."})
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}
