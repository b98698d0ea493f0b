// Package dashboard serves the aggregated GLPI numbers the frontend renders.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"glpidashboard/internal/cache"
	"glpidashboard/internal/config"
	"glpidashboard/internal/engine"
	"glpidashboard/internal/models/dto"
	"glpidashboard/internal/repositories/glpi"
	"glpidashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

var errMissingConfig = errors.New("API_URL, APP_TOKEN e USER_TOKEN são obrigatórios")

const killSessionTimeout = 3 * time.Second

// sessionScope opens one GLPI session on first use and kills it on close.
// Requests answered from the cache never open one.
type sessionScope struct {
	cfg     *config.App
	once    sync.Once
	session glpi.Session
	err     error
	opened  bool
}

func newSessionScope(cfg *config.App) *sessionScope {
	return &sessionScope{cfg: cfg}
}

func (s *sessionScope) get(ctx context.Context) (glpi.Session, error) {
	s.once.Do(func() {
		st := s.cfg.Settings
		if !st.GLPIConfigured() {
			s.err = errMissingConfig
			return
		}
		s.session, s.err = s.cfg.GLPI.InitSession(ctx, st.APIURL, st.AppToken, st.UserToken)
		s.opened = s.err == nil
	})
	return s.session, s.err
}

// close must run after every get returned. A failed kill is only logged.
func (s *sessionScope) close(ctx context.Context) {
	if !s.opened {
		return
	}
	killCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), killSessionTimeout)
	defer cancel()
	if err := s.cfg.GLPI.KillSession(killCtx, s.session); err != nil {
		s.cfg.Logger.Warn("killSession failed", map[string]interface{}{"error": err.Error()})
	}
}

// dateRange reads inicio and fim. On invalid input it answers 400 and returns
// false.
func dateRange(c *gin.Context) (engine.DateRange, bool) {
	dr := engine.DateRange{Start: c.Query("inicio"), End: c.Query("fim")}
	if err := utils.ValidateDateRange(dr.Start, dr.End); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(c, http.StatusBadRequest, "invalid_date_range", err.Error(), gin.H{
			"inicio": dr.Start,
			"fim":    dr.End,
		}))
		return dr, false
	}
	return dr, true
}

// errorStatus maps a failure to the status, error code and detail the client sees.
func errorStatus(err error) (int, string, string) {
	var authErr *glpi.AuthError
	switch {
	case errors.Is(err, errMissingConfig):
		return http.StatusInternalServerError, "config_missing", "Configuração do GLPI ausente: " + err.Error()
	case errors.As(err, &authErr):
		status := authErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusUnauthorized
		}
		return status, "glpi_auth_failed", "Falha de autenticação no GLPI"
	case glpi.IsTimeout(err):
		return http.StatusGatewayTimeout, "glpi_timeout", "Tempo de resposta do GLPI excedido"
	case glpi.IsNetwork(err):
		return http.StatusBadGateway, "glpi_unreachable", "Não foi possível conectar ao GLPI"
	case glpi.IsSearch(err):
		return http.StatusBadGateway, "glpi_search_failed", "Erro ao consultar o GLPI"
	default:
		return http.StatusInternalServerError, "internal_error", "Erro interno ao gerar o dashboard"
	}
}

func writeError(c *gin.Context, cfg *config.App, endpoint string, err error) {
	status, code, detail := errorStatus(err)
	cfg.Logger.Error(endpoint+" failed", err, map[string]interface{}{
		"endpoint":   endpoint,
		"status":     status,
		"request_id": c.GetString("request_id"),
	})
	c.JSON(status, dto.NewErrorResponse(c, status, code, detail, nil))
}

func cacheState(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// logCache is safe to call from several goroutines of one request.
func logCache(c *gin.Context, cfg *config.App, endpoint, key string, hit bool, dr engine.DateRange) {
	cfg.Logger.Info(endpoint+" served", map[string]interface{}{
		"endpoint":   endpoint,
		"cache":      cacheState(hit),
		"key":        key,
		"inicio":     dr.Start,
		"fim":        dr.End,
		"request_id": c.GetString("request_id"),
	})
}

func rangeParams(dr engine.DateRange) []cache.Param {
	return []cache.Param{cache.P("inicio", dr.Start), cache.P("fim", dr.End)}
}

func rankingKey(cfg *config.App, dr engine.DateRange) string {
	return cache.Key("ranking-tecnicos", append(rangeParams(dr), cache.P("limit", strconv.Itoa(cfg.Engine.Config().TopN)))...)
}

func levelStatsKey(dr engine.DateRange) string {
	return cache.Key("status-niveis", rangeParams(dr)...)
}

func generalStatsKey(dr engine.DateRange) string {
	return cache.Key("metrics-gerais", append(rangeParams(dr), cache.P("status", engine.StatusFingerprint()))...)
}

func fetchRanking(ctx context.Context, cfg *config.App, scope *sessionScope, dr engine.DateRange) ([]dto.TechnicianRankingItem, string, bool, error) {
	key := rankingKey(cfg, dr)
	v, hit, err := cache.Fetch(ctx, cfg.Cache, key, func(ctx context.Context) ([]dto.TechnicianRankingItem, error) {
		s, err := scope.get(ctx)
		if err != nil {
			return nil, err
		}
		return cfg.Engine.GenerateTechnicianRanking(ctx, s, dr)
	})
	return v, key, hit, err
}

func fetchLevelStats(ctx context.Context, cfg *config.App, scope *sessionScope, dr engine.DateRange) (dto.LevelStats, string, bool, error) {
	key := levelStatsKey(dr)
	v, hit, err := cache.Fetch(ctx, cfg.Cache, key, func(ctx context.Context) (dto.LevelStats, error) {
		s, err := scope.get(ctx)
		if err != nil {
			return nil, err
		}
		return cfg.Engine.GenerateLevelStats(ctx, s, dr)
	})
	return v, key, hit, err
}

func fetchGeneralStats(ctx context.Context, cfg *config.App, scope *sessionScope, dr engine.DateRange) (dto.GeneralStats, string, bool, error) {
	key := generalStatsKey(dr)
	v, hit, err := cache.Fetch(ctx, cfg.Cache, key, func(ctx context.Context) (dto.GeneralStats, error) {
		s, err := scope.get(ctx)
		if err != nil {
			return dto.GeneralStats{}, err
		}
		return cfg.Engine.GenerateGeneralStats(ctx, s, dr)
	})
	return v, key, hit, err
}
