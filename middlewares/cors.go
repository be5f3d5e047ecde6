package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/hotel-management-app/config"
)

func CORSMiddlewares() gin.HandlerFunc {
	allowedOrigin := config.Getenv("CORS_ALLOWED_ORIGIN", "http://127.0.0.1:5500")
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
