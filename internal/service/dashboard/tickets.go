package dashboard

import (
	"net/http"

	"glpidashboard/internal/config"

	"github.com/gin-gonic/gin"
)

// GetNewTickets handles GET /api/v1/tickets-novos. Never cached.
// @Summary      Tickets novos
// @Description  Os tickets mais recentes com status novo
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   dto.NewTicketItem
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/v1/tickets-novos [get]
func GetNewTickets(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		scope := newSessionScope(cfg)
		defer scope.close(ctx)

		s, err := scope.get(ctx)
		if err != nil {
			writeError(c, cfg, "tickets-novos", err)
			return
		}

		tickets, err := cfg.Engine.GetNewTickets(ctx, s)
		if err != nil {
			writeError(c, cfg, "tickets-novos", err)
			return
		}

		c.JSON(http.StatusOK, tickets)
	}
}
