package routes

import (
	"net/http"
	"os"

	_ "glpidashboard/docs"
	"glpidashboard/internal/config"
	"glpidashboard/internal/middleware"
	"glpidashboard/internal/service/dashboard"
	"glpidashboard/internal/service/healthcheck"
	"glpidashboard/internal/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// InitiateRoutes is a function that initializes the routes for the application
func InitiateRoutes(engine *gin.Engine, cfg *config.App) {

	engine.GET("/", Root(cfg))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthGroup := engine.Group("/healthcheck")
	{
		healthGroup.GET("/", healthcheck.Health(cfg))
	}

	// Dashboard: somente leitura, protegido quando JWT_SECRET está definido
	api := engine.Group("/api/v1", middleware.Auth(cfg.Settings.JWTSecret))
	{
		api.GET("/ranking-tecnicos", dashboard.GetTechnicianRanking(cfg))
		api.GET("/status-niveis", dashboard.GetLevelStats(cfg))
		api.GET("/metrics-gerais", dashboard.GetGeneralStats(cfg))
		api.GET("/tickets-novos", dashboard.GetNewTickets(cfg))
		api.GET("/dashboard", dashboard.GetDashboard(cfg))
	}

	serveFrontend(engine, cfg)
}

// Root - service name and version
// @Summary      Informações do serviço
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func Root(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := utils.GetCurrentProtocolAndHost(c)
		c.JSON(http.StatusOK, gin.H{
			"message": config.ServiceName,
			"version": config.Version,
			"docs":    base + "/swagger/index.html",
		})
	}
}

// serveFrontend serves the built frontend under /dashboard when the build
// directory exists
func serveFrontend(engine *gin.Engine, cfg *config.App) {
	dir := cfg.Settings.FrontendBuildDir
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		cfg.Logger.Info("frontend build not found, /dashboard disabled", map[string]interface{}{"dir": dir})
		return
	}
	engine.Static("/dashboard", dir)
}
