package utils

import (
	"github.com/gin-gonic/gin"
)

// GetCurrentProtocolAndHost returns the current protocol and host
func GetCurrentProtocolAndHost(c *gin.Context) string {
	protocol := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		protocol = "https"
	}
	host := c.Request.Host

	return protocol + "://" + host
}

// ListenAddr turns a port into a listen address
func ListenAddr(port string) string {
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
