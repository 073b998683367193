package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware logs every request with its ID, status, latency and
// client IP. The request ID is generated when the caller does not send one
// and echoed back in the X-Request-ID header.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		// Caller-supplied IDs can be shorter than the generated UUIDs.
		shortID := requestID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		log.Printf("[%s] %s | %d | %v | %s | %s",
			shortID,
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", shortID, e.Err)
		}
	}
}
