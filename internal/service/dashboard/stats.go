package dashboard

import (
	"net/http"

	"glpidashboard/internal/config"
	"glpidashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GetLevelStats handles GET /api/v1/status-niveis
// @Summary      Tickets por nível
// @Description  Quantidade de tickets por nível de atendimento (N1 a N4) e grupo de status
// @Tags         dashboard
// @Produce      json
// @Param        inicio  query     string  false  "Data inicial (YYYY-MM-DD)"
// @Param        fim     query     string  false  "Data final (YYYY-MM-DD)"
// @Success      200     {object}  dto.LevelStats
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Failure      504     {object}  dto.ErrorResponse
// @Router       /api/v1/status-niveis [get]
func GetLevelStats(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dr, ok := dateRange(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		scope := newSessionScope(cfg)
		defer scope.close(ctx)

		stats, key, hit, err := fetchLevelStats(ctx, cfg, scope, dr)
		if err != nil {
			writeError(c, cfg, "status-niveis", err)
			return
		}
		logCache(c, cfg, "status-niveis", key, hit, dr)
		middleware.AddLogFields(c, map[string]interface{}{"cache": cacheState(hit)})

		c.JSON(http.StatusOK, stats)
	}
}

// GetGeneralStats handles GET /api/v1/metrics-gerais
// @Summary      Métricas gerais
// @Description  Totais de tickets por grupo de status
// @Tags         dashboard
// @Produce      json
// @Param        inicio  query     string  false  "Data inicial (YYYY-MM-DD)"
// @Param        fim     query     string  false  "Data final (YYYY-MM-DD)"
// @Success      200     {object}  dto.GeneralStats
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Failure      504     {object}  dto.ErrorResponse
// @Router       /api/v1/metrics-gerais [get]
func GetGeneralStats(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dr, ok := dateRange(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		scope := newSessionScope(cfg)
		defer scope.close(ctx)

		stats, key, hit, err := fetchGeneralStats(ctx, cfg, scope, dr)
		if err != nil {
			writeError(c, cfg, "metrics-gerais", err)
			return
		}
		logCache(c, cfg, "metrics-gerais", key, hit, dr)
		middleware.AddLogFields(c, map[string]interface{}{"cache": cacheState(hit)})

		c.JSON(http.StatusOK, stats)
	}
}
