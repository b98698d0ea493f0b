package dashboard

import (
	"net/http"

	"glpidashboard/internal/config"
	"glpidashboard/internal/models/dto"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// GetDashboard handles GET /api/v1/dashboard: the four panels in one call.
// They run in parallel on a single GLPI session and the first failure
// answers the request.
// @Summary      Dashboard completo
// @Description  Ranking, status por nível, métricas gerais e tickets novos em uma única resposta
// @Tags         dashboard
// @Produce      json
// @Param        inicio  query     string  false  "Data inicial (YYYY-MM-DD)"
// @Param        fim     query     string  false  "Data final (YYYY-MM-DD)"
// @Success      200     {object}  dto.DashboardResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Failure      504     {object}  dto.ErrorResponse
// @Router       /api/v1/dashboard [get]
func GetDashboard(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		dr, ok := dateRange(c)
		if !ok {
			return
		}

		scope := newSessionScope(cfg)
		defer scope.close(c.Request.Context())

		var resp dto.DashboardResponse
		g, ctx := errgroup.WithContext(c.Request.Context())

		g.Go(func() error {
			v, key, hit, err := fetchRanking(ctx, cfg, scope, dr)
			if err == nil {
				resp.Ranking = v
				logCache(c, cfg, "ranking-tecnicos", key, hit, dr)
			}
			return err
		})
		g.Go(func() error {
			v, key, hit, err := fetchLevelStats(ctx, cfg, scope, dr)
			if err == nil {
				resp.Niveis = v
				logCache(c, cfg, "status-niveis", key, hit, dr)
			}
			return err
		})
		g.Go(func() error {
			v, key, hit, err := fetchGeneralStats(ctx, cfg, scope, dr)
			if err == nil {
				resp.Geral = v
				logCache(c, cfg, "metrics-gerais", key, hit, dr)
			}
			return err
		})
		g.Go(func() error {
			s, err := scope.get(ctx)
			if err != nil {
				return err
			}
			v, err := cfg.Engine.GetNewTickets(ctx, s)
			if err == nil {
				resp.TicketsNovos = v
			}
			return err
		})

		if err := g.Wait(); err != nil {
			writeError(c, cfg, "dashboard", err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
