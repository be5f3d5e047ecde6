package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeremiapane/hotel-management-app/utils"
)

// PaymentRateLimiter bounds the rate of settlement/refund mutations.
func PaymentRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Second), 10)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(429, gin.H{
				"error": "Too many requests, please wait before retrying",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// LogPaymentRequest records every settlement/refund mutation with its
// outcome for the audit log.
func LogPaymentRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		utils.InfoLogger.Printf(
			"Payment request - method: %s, path: %s, status: %d, duration: %v, operator: %v",
			method, path, status, duration, c.GetUint("user_id"),
		)
	}
}
