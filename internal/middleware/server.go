package middleware

import (
	"time"

	"glpidashboard/internal/config"
	"glpidashboard/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// sets up a new gin engine with request ids, logging, cors and throttling
func SetupServer(cfg *config.App) (engine *gin.Engine) {

	gin.SetMode(gin.ReleaseMode)
	engine = gin.New()
	engine.Use(gin.Recovery())

	setupIds(engine)
	setupLogger(engine, cfg)
	setupCors(engine, cfg.Settings.CORSOrigins)
	setupSemaphore(engine, cfg.Settings.MaxRequestsGlobal)
	if cfg.Redis != nil {
		setupRedisDB(engine, cfg)
	}

	if cfg.Settings.TLSEnabled() {
		setupSSL(engine, cfg)
	}

	return engine
}

// setupCors allows the dashboard frontend origins. No origin configured
// means any origin.
func setupCors(engine *gin.Engine, origins []string) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	engine.Use(cors.New(corsConfig))
}

// setupSSL is a function that sets up the SSL configuration for the server
func setupSSL(engine *gin.Engine, cfg *config.App) {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:          true,
		SSLHost:              utils.ListenAddr(cfg.Settings.Port),
		STSSeconds:           31536000,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		IsDevelopment:        cfg.Settings.Environment == "development",
		SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
		STSIncludeSubdomains: true,
	})
	engine.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			cfg.Logger.Warn("secure middleware rejected request", map[string]interface{}{"error": err.Error()})
			c.Abort()
			return
		}
		c.Next()
	})
}
