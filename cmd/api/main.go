package main

import (
	"fmt"
	"log"
	"os"

	"glpidashboard/internal/config"
	"glpidashboard/internal/middleware"
	"glpidashboard/internal/routes"
	"glpidashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           GLPI Dashboard API
// @version         1.0.0
// @description     Agregações de tickets do GLPI para o dashboard de suporte.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in              header
// @name            Authorization
func main() {

	// .env é opcional, em container as variáveis vêm do ambiente
	envPath := "/app/.env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../../.env"
	}
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error creating config: %v", err)
	}
	defer cfg.CloseAll()

	cfg.Logger.Info(fmt.Sprintf("Starting server with execution ID %s", cfg.Logger.ExecutionID), map[string]interface{}{
		"environment": cfg.Settings.Environment,
		"cache":       cfg.CacheBackend(),
	})

	engine := middleware.SetupServer(cfg)

	routes.InitiateRoutes(engine, cfg)

	startServer(engine, cfg)
}

func startServer(engine *gin.Engine, cfg *config.App) {
	addr := utils.ListenAddr(cfg.Settings.Port)
	if cfg.Settings.TLSEnabled() {
		cfg.Logger.Info("Starting server with TLS on " + addr)
		if err := engine.RunTLS(addr, cfg.Settings.CertFile, cfg.Settings.KeyFile); err != nil {
			cfg.Logger.Fatal("Error starting TLS server", err)
			os.Exit(1)
		}
		return
	}

	cfg.Logger.Info("Starting server on " + addr)
	if err := engine.Run(addr); err != nil {
		cfg.Logger.Fatal("Error starting server", err)
		os.Exit(1)
	}
}
