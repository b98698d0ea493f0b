// Package dto contains Data Transfer Objects for API responses
package dto

import (
	"time"

	"github.com/gin-gonic/gin"
)

// BaseResponse contém campos comuns a todas as respostas
type BaseResponse struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// ErrorResponse representa uma resposta de erro. Detail é o campo que o
// frontend exibe.
type ErrorResponse struct {
	BaseResponse
	Error   string      `json:"error" example:"glpi_timeout"`
	Code    int         `json:"code" example:"504"`
	Detail  string      `json:"detail" example:"Tempo de resposta do GLPI excedido"`
	Details interface{} `json:"details,omitempty"`
}

// HealthResponse representa a resposta do healthcheck
type HealthResponse struct {
	BaseResponse
	Status  string            `json:"status" example:"OK"`
	Service string            `json:"service" example:"GLPI Dashboard API"`
	Version string            `json:"version" example:"1.0.0"`
	Uptime  string            `json:"uptime,omitempty" example:"1h30m45s"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// AuthErrorResponse representa erros específicos de autenticação
type AuthErrorResponse struct {
	BaseResponse
	Error  string `json:"error" example:"unauthorized"`
	Code   int    `json:"code" example:"401"`
	Detail string `json:"detail" example:"Token de autorização inválido ou expirado"`
}

// RateLimitErrorResponse representa erros de rate limit
type RateLimitErrorResponse struct {
	BaseResponse
	Error      string    `json:"error" example:"rate_limit_exceeded"`
	Code       int       `json:"code" example:"429"`
	Detail     string    `json:"detail" example:"Limite de requisições excedido"`
	RetryAfter string    `json:"retry_after" example:"60s"`
	Limit      int       `json:"limit" example:"100"`
	Remaining  int       `json:"remaining" example:"0"`
	ResetTime  time.Time `json:"reset_time" example:"2024-01-01T12:01:00Z"`
}

// Helper functions para criar responses padronizadas

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(c *gin.Context, code int, error string, detail string, details interface{}) ErrorResponse {
	return ErrorResponse{
		BaseResponse: BaseResponse{
			Success:   false,
			Timestamp: time.Now().UTC(),
			RequestID: getRequestID(c),
		},
		Error:   error,
		Code:    code,
		Detail:  detail,
		Details: details,
	}
}

// NewHealthResponse cria uma nova resposta de health
func NewHealthResponse(c *gin.Context, status, service, version, uptime string, checks map[string]string) HealthResponse {
	return HealthResponse{
		BaseResponse: BaseResponse{
			Success:   status == "OK",
			Timestamp: time.Now().UTC(),
			RequestID: getRequestID(c),
		},
		Status:  status,
		Service: service,
		Version: version,
		Uptime:  uptime,
		Checks:  checks,
	}
}

// NewAuthErrorResponse cria uma nova resposta de erro de autenticação
func NewAuthErrorResponse(c *gin.Context, message string) AuthErrorResponse {
	return AuthErrorResponse{
		BaseResponse: BaseResponse{
			Success:   false,
			Timestamp: time.Now().UTC(),
			RequestID: getRequestID(c),
		},
		Error:  "unauthorized",
		Code:   401,
		Detail: message,
	}
}

// NewRateLimitErrorResponse cria uma nova resposta de rate limit
func NewRateLimitErrorResponse(c *gin.Context, retryAfter string, limit, remaining int, resetTime time.Time) RateLimitErrorResponse {
	return RateLimitErrorResponse{
		BaseResponse: BaseResponse{
			Success:   false,
			Timestamp: time.Now().UTC(),
			RequestID: getRequestID(c),
		},
		Error:      "rate_limit_exceeded",
		Code:       429,
		Detail:     "Limite de requisições excedido",
		RetryAfter: retryAfter,
		Limit:      limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
	}
}

// getRequestID extrai o request ID do contexto
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
