package middleware

import (
	"net/http"
	"strings"

	"expensetracker/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// AuthClaimsKey holds the full decoded token claims in the request context
	AuthClaimsKey = "authClaims"
	// AuthUserKey holds the authenticated subject id (uuid.UUID)
	AuthUserKey = "authUser"
	// AuthRoleKey holds the authenticated role (model.Role)
	AuthRoleKey = "authRole"
)

// TokenCookieName is the cookie the auth endpoints set and this middleware reads
const TokenCookieName = "token"

// JWTAuthMiddleware creates a middleware for JWT authentication. The token is
// taken from the cookie first, then from a bearer Authorization header. All
// rejection paths return the same 401 surface; the reason is a log-only
// concern.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := c.Cookie(TokenCookieName)
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Please login first."})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token. Please login again."})
			return
		}

		// Set user information in context for downstream handlers
		c.Set(AuthClaimsKey, claims)
		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}
