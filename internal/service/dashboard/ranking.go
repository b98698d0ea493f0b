package dashboard

import (
	"net/http"

	"glpidashboard/internal/config"
	"glpidashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GetTechnicianRanking handles GET /api/v1/ranking-tecnicos
// @Summary      Ranking de técnicos
// @Description  Técnicos ativos do grupo pai ordenados por quantidade de tickets atribuídos
// @Tags         dashboard
// @Produce      json
// @Param        inicio  query     string  false  "Data inicial (YYYY-MM-DD)"
// @Param        fim     query     string  false  "Data final (YYYY-MM-DD)"
// @Success      200     {array}   dto.TechnicianRankingItem
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Failure      504     {object}  dto.ErrorResponse
// @Router       /api/v1/ranking-tecnicos [get]
func GetTechnicianRanking(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dr, ok := dateRange(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		scope := newSessionScope(cfg)
		defer scope.close(ctx)

		ranking, key, hit, err := fetchRanking(ctx, cfg, scope, dr)
		if err != nil {
			writeError(c, cfg, "ranking-tecnicos", err)
			return
		}
		logCache(c, cfg, "ranking-tecnicos", key, hit, dr)
		middleware.AddLogFields(c, map[string]interface{}{"cache": cacheState(hit)})

		c.JSON(http.StatusOK, ranking)
	}
}
