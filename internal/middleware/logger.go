package middleware

import (
	"strings"
	"time"

	"glpidashboard/internal/config"
	"glpidashboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// setupLogger -
func setupLogger(engine *gin.Engine, cfg *config.App) {
	middlewareConfig := DefaultMiddlewareConfig()
	middlewareConfig.SkipPrefixes = append(middlewareConfig.SkipPrefixes, "/dashboard/assets/")
	engine.Use(LoggerMiddleware(cfg.Logger, middlewareConfig))
}

// MiddlewareConfig configures the logging middleware
type MiddlewareConfig struct {
	// Paths to skip logging (exact match)
	SkipPaths []string
	// Path prefixes to skip, e.g. static assets
	SkipPrefixes []string
	// Whether to log only errors (4xx, 5xx status codes)
	ErrorsOnly bool
}

// DefaultMiddlewareConfig returns a default configuration
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{
		SkipPaths: []string{
			"/healthcheck/",
		},
		SkipPrefixes: []string{
			"/swagger/",
		},
	}
}

// LoggerMiddleware creates a Gin middleware that logs one entry per request.
// It expects RequestIDMiddleware to run first.
func LoggerMiddleware(log *logger.Logger, config ...MiddlewareConfig) gin.HandlerFunc {
	cfg := DefaultMiddlewareConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	skipPaths := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipPaths[path] || hasAnyPrefix(path, cfg.SkipPrefixes) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		if cfg.ErrorsOnly && statusCode < 400 {
			return
		}

		var (
			level   logger.LogLevel
			message string
		)
		switch {
		case statusCode >= 500:
			level, message = logger.LevelError, "HTTP Server Error"
		case statusCode >= 400:
			level, message = logger.LevelWarn, "HTTP Client Error"
		default:
			level, message = logger.LevelInfo, "HTTP Request"
		}

		fields := map[string]interface{}{
			"component": "http_middleware",
		}
		if customFields, exists := c.Get("log_fields"); exists {
			if fieldMap, ok := customFields.(map[string]interface{}); ok {
				for k, v := range fieldMap {
					fields[k] = v
				}
			}
		}

		log.WithContext(level, message, logger.LogContext{
			HTTP: &logger.HTTPContext{
				Method:     c.Request.Method,
				Path:       path,
				Query:      c.Request.URL.RawQuery,
				UserAgent:  c.Request.UserAgent(),
				RemoteIP:   c.ClientIP(),
				StatusCode: statusCode,
				RequestID:  GetRequestID(c),
			},
			Performance: &logger.PerformanceContext{
				Duration:   duration,
				DurationMs: float64(duration.Microseconds()) / 1000,
			},
			Fields: fields,
		})
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AddLogFields adds custom fields to be included in logs
func AddLogFields(c *gin.Context, fields map[string]interface{}) {
	existing, exists := c.Get("log_fields")
	if !exists {
		c.Set("log_fields", fields)
		return
	}

	if existingMap, ok := existing.(map[string]interface{}); ok {
		for k, v := range fields {
			existingMap[k] = v
		}
		c.Set("log_fields", existingMap)
	} else {
		c.Set("log_fields", fields)
	}
}
