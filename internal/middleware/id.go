package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// setupIds -
func setupIds(engine *gin.Engine) {
	engine.Use(RequestIDMiddleware(""))
}

// GetRequestID retrieves the request ID from Gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// RequestIDMiddleware keeps the caller's request id or generates one, and
// echoes it back in the response header
func RequestIDMiddleware(headerName string) gin.HandlerFunc {
	if headerName == "" {
		headerName = requestIDHeader
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(headerName)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(headerName, requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}
