package config

import (
	"fmt"
	"time"

	"glpidashboard/internal/cache"
	"glpidashboard/internal/engine"
	"glpidashboard/internal/repositories/glpi"
	"glpidashboard/internal/repositories/redis"
	"glpidashboard/pkg/logger"

	"github.com/google/uuid"
)

const (
	ServiceName = "GLPI Dashboard API"
	Version     = "1.0.0"
)

// App - holds every long-lived collaborator of the service
type App struct {
	Settings  Settings
	Logger    *logger.Logger
	GLPI      *glpi.Client
	Redis     *redis.RedisInternal
	Cache     *cache.Cache
	Engine    *engine.Engine
	StartedAt time.Time
}

// NewConfig - builds the App from the process environment
func NewConfig() (*App, error) {
	return NewApp(LoadSettings())
}

// NewApp - builds the App from settings. Redis is only dialed when the redis
// cache backend is selected.
func NewApp(settings Settings) (*App, error) {
	cfg := &App{Settings: settings, StartedAt: time.Now()}

	executionID := uuid.New().String()[0:5]
	cfg.Logger = logger.NewLogger(logger.Config{
		Service:      "glpi-dashboard-api",
		Version:      Version,
		Environment:  settings.Environment,
		LogLevel:     logger.ParseLevel(settings.LogLevel),
		LogDir:       settings.LogDir,
		EnableCaller: true,
		ExecutionID:  executionID,
	})

	if !settings.GLPIConfigured() {
		cfg.Logger.Warn("GLPI credentials missing, dashboard endpoints will answer 500", map[string]interface{}{
			"api_url_set":    settings.APIURL != "",
			"app_token_set":  settings.AppToken != "",
			"user_token_set": settings.UserToken != "",
		})
	}

	client, err := glpi.NewClient(&glpi.Config{
		ConnectTimeout:     settings.GLPIConnectTimeout,
		ReadTimeout:        settings.GLPIReadTimeout,
		PoolSize:           settings.GLPIPoolSize,
		InsecureSkipVerify: settings.GLPIInsecureSkipVerify,
	})
	if err != nil {
		return cfg, fmt.Errorf("creating GLPI client: %w", err)
	}
	cfg.GLPI = client

	if err := cfg.newCache(); err != nil {
		return cfg, err
	}

	cfg.Engine = engine.New(client, engine.Config{
		ParentGroupID: settings.ParentGroupID,
		TopN:          settings.RankingLimit,
		Workers:       settings.AggregatorWorkers,
	}, cfg.Logger)

	return cfg, nil
}

// CloseAll - a function that closes all connections
func (cfg *App) CloseAll() {
	if cfg.GLPI != nil {
		cfg.GLPI.Close()
	}

	if cfg.Redis != nil {
		_ = cfg.Redis.Close()
	}

	if cfg.Logger != nil {
		_ = cfg.Logger.Close()
	}
}

func (cfg *App) newCache() error {
	opts := cache.Options{
		TTL:          cfg.Settings.CacheTTL,
		SingleFlight: cfg.Settings.CacheSingleFlight,
	}

	switch cfg.Settings.CacheBackend {
	case "redis":
		r, err := redis.NewRedisInternal(redis.Options{
			Addr:      cfg.Settings.RedisAddr,
			Password:  cfg.Settings.RedisPassword,
			DB:        cfg.Settings.RedisDB,
			KeyPrefix: "glpi-dashboard:",
		})
		if err != nil {
			return fmt.Errorf("creating redis client: %w", err)
		}
		cfg.Redis = r
		cfg.Cache = cache.New(cache.NewRedis(r, cfg.Logger), opts, cfg.Logger)
	case "", "memory":
		cfg.Cache = cache.New(cache.NewMemory(nil), opts, cfg.Logger)
	default:
		return fmt.Errorf("unknown CACHE_BACKEND: %q", cfg.Settings.CacheBackend)
	}

	cfg.Logger.Info("cache ready", map[string]interface{}{
		"backend":       cfg.CacheBackend(),
		"ttl_sec":       int(cfg.Cache.TTL().Seconds()),
		"single_flight": opts.SingleFlight,
	})
	return nil
}

// CacheBackend names the store in use
func (cfg *App) CacheBackend() string {
	if cfg.Redis != nil {
		return "redis"
	}
	return "memory"
}
