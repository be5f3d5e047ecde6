package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/hotel-management-app/utils"
)

// WebSocketAuthMiddleware authenticates dashboard socket connections.
// Browsers cannot set headers on WebSocket upgrades, so the token comes
// in as a query parameter.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}
