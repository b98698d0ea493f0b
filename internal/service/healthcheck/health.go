package healthcheck

import (
	"context"
	"net/http"
	"time"

	"glpidashboard/internal/config"
	"glpidashboard/internal/models/dto"

	"github.com/gin-gonic/gin"
)

// Health - Healthcheck endpoint
// @Summary      Healthcheck
// @Description  Estado do serviço, do cache e da configuração do GLPI
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /healthcheck/ [get]
func Health(cfg *config.App) gin.HandlerFunc {

	return func(c *gin.Context) {
		status := "OK"
		checks := map[string]string{
			"cache": cfg.CacheBackend(),
			"glpi":  "configured",
		}

		if !cfg.Settings.GLPIConfigured() {
			checks["glpi"] = "missing_config"
			status = "DEGRADED"
		}

		if cfg.Redis != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.Redis.Ping(ctx); err != nil {
				cfg.Logger.Error("redis ping failed", err)
				checks["redis"] = "unreachable"
				status = "DEGRADED"
			} else {
				checks["redis"] = "ok"
			}
		}

		code := http.StatusOK
		if status != "OK" {
			code = http.StatusServiceUnavailable
		}

		uptime := ""
		if !cfg.StartedAt.IsZero() {
			uptime = time.Since(cfg.StartedAt).Truncate(time.Second).String()
		}

		c.JSON(code, dto.NewHealthResponse(c, status, config.ServiceName, config.Version, uptime, checks))
	}
}
