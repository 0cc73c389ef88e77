package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to the given account roles. Must run
// after AuthMiddleware, which stores the verified role in the context.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := c.GetString("userRole")
		if current == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "no role in session"})
			return
		}

		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
