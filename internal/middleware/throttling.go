package middleware

import (
	"context"
	"net/http"
	"time"

	"glpidashboard/internal/config"
	"glpidashboard/internal/models/dto"
	"glpidashboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"
)

const (
	defaultMaxRequests = 60
	rateLimitWindow    = 60 * time.Second
)

// RateStore is the part of the redis repository the limiter needs
type RateStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimiter encapsula a lógica de rate limiting por IP, janela fixa
type RateLimiter struct {
	store       RateStore
	maxRequests int
	window      time.Duration
	log         *logger.Logger
}

// NewRateLimiter cria uma nova instância do rate limiter
func NewRateLimiter(store RateStore, maxRequests int, window time.Duration, log *logger.Logger) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	return &RateLimiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
		log:         log,
	}
}

// setupRedisDB configura o middleware de rate limiting
func setupRedisDB(engine *gin.Engine, cfg *config.App) {
	rateLimiter := NewRateLimiter(cfg.Redis, cfg.Settings.MaxRequestsByIP, rateLimitWindow, cfg.Logger)
	engine.Use(rateLimiter.Middleware())
}

// Middleware retorna o middleware do Gin para rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, retryAfter, err := rl.checkRateLimit(c.Request.Context(), ip)
		if err != nil {
			// redis fora do ar não derruba o dashboard
			rl.log.Warn("rate limit check failed, letting request through", map[string]interface{}{
				"ip":    ip,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		if !allowed {
			rl.handleRateLimitExceeded(c, retryAfter)
			return
		}

		c.Next()
	}
}

// checkRateLimit verifica se o IP pode fazer a requisição
func (rl *RateLimiter) checkRateLimit(ctx context.Context, ip string) (allowed bool, retryAfter time.Duration, err error) {
	key := "ratelimit:" + ip

	count, err := rl.store.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	// Primeira requisição da janela
	if count == 1 {
		if err := rl.store.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(rl.maxRequests) {
		ttl, err := rl.store.TTL(ctx, key).Result()
		if err != nil {
			return false, 0, err
		}
		if ttl < 0 {
			ttl = rl.window
		}
		return false, ttl, nil
	}

	return true, 0, nil
}

// handleRateLimitExceeded trata quando o limite é excedido
func (rl *RateLimiter) handleRateLimitExceeded(c *gin.Context, retryAfter time.Duration) {
	c.Writer.Header().Set("Retry-After", retryAfter.String())
	c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewRateLimitErrorResponse(
		c, retryAfter.String(), rl.maxRequests, 0, time.Now().UTC().Add(retryAfter),
	))
}

// setupSemaphore limita as requisições em andamento no processo. Quem
// excede espera, e só recebe 429 se desistir antes.
func setupSemaphore(engine *gin.Engine, max int64) {
	if max <= 0 {
		max = 10
	}
	sema := semaphore.NewWeighted(max)
	engine.Use(func(c *gin.Context) {
		if err := sema.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(c, http.StatusTooManyRequests, "too_many_requests", "Servidor ocupado, tente novamente", nil))
			return
		}
		defer sema.Release(1)
		c.Next()
	})
}
