package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings - every value the service reads from the environment
type Settings struct {
	APIURL    string
	AppToken  string
	UserToken string

	ParentGroupID     int
	RankingLimit      int
	AggregatorWorkers int

	CacheTTL          time.Duration
	CacheBackend      string
	CacheSingleFlight bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GLPIPoolSize           int
	GLPIConnectTimeout     time.Duration
	GLPIReadTimeout        time.Duration
	GLPIInsecureSkipVerify bool

	Port     string
	CertFile string
	KeyFile  string

	JWTSecret         string
	MaxRequestsGlobal int64
	MaxRequestsByIP   int
	CORSOrigins       []string
	FrontendBuildDir  string

	LogLevel    string
	LogDir      string
	Environment string
}

// GLPIConfigured reports whether the GLPI credentials are present
func (s Settings) GLPIConfigured() bool {
	return s.APIURL != "" && s.AppToken != "" && s.UserToken != ""
}

// TLSEnabled reports whether both certificate files are configured
func (s Settings) TLSEnabled() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("RANKING_TECHNICIAN_PARENT_GROUP_ID", 17)
	v.SetDefault("RANKING_LIMIT", 20)
	v.SetDefault("AGGREGATOR_WORKERS", 10)
	v.SetDefault("CACHE_TTL_SEC", 300)
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_SINGLE_FLIGHT", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("GLPI_POOL_SIZE", 20)
	// segundos
	v.SetDefault("GLPI_CONNECT_TIMEOUT", 3)
	v.SetDefault("GLPI_READ_TIMEOUT", 6)
	v.SetDefault("GLPI_INSECURE_SKIP_VERIFY", false)
	v.SetDefault("PORT", "8080")
	v.SetDefault("MAX_REQUEST_COUNT_GLOBAL", 10)
	v.SetDefault("MAX_REQUEST_COUNT_BY_IP", 60)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("FRONTEND_BUILD_DIR", "../frontend/dist")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("ENVIRONMENT_APP", "development")

	return v
}

// LoadSettings reads the settings from the process environment
func LoadSettings() Settings {
	return settingsFrom(newViper())
}

func settingsFrom(v *viper.Viper) Settings {
	return Settings{
		APIURL:    strings.TrimRight(v.GetString("API_URL"), "/"),
		AppToken:  v.GetString("APP_TOKEN"),
		UserToken: v.GetString("USER_TOKEN"),

		ParentGroupID:     v.GetInt("RANKING_TECHNICIAN_PARENT_GROUP_ID"),
		RankingLimit:      v.GetInt("RANKING_LIMIT"),
		AggregatorWorkers: v.GetInt("AGGREGATOR_WORKERS"),

		CacheTTL:          time.Duration(v.GetInt("CACHE_TTL_SEC")) * time.Second,
		CacheBackend:      strings.ToLower(v.GetString("CACHE_BACKEND")),
		CacheSingleFlight: v.GetBool("CACHE_SINGLE_FLIGHT"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		GLPIPoolSize:           v.GetInt("GLPI_POOL_SIZE"),
		GLPIConnectTimeout:     seconds(v.GetFloat64("GLPI_CONNECT_TIMEOUT")),
		GLPIReadTimeout:        seconds(v.GetFloat64("GLPI_READ_TIMEOUT")),
		GLPIInsecureSkipVerify: v.GetBool("GLPI_INSECURE_SKIP_VERIFY"),

		Port:     v.GetString("PORT"),
		CertFile: v.GetString("CERT_FILE"),
		KeyFile:  v.GetString("KEY_FILE"),

		JWTSecret:         v.GetString("JWT_SECRET"),
		MaxRequestsGlobal: v.GetInt64("MAX_REQUEST_COUNT_GLOBAL"),
		MaxRequestsByIP:   v.GetInt("MAX_REQUEST_COUNT_BY_IP"),
		CORSOrigins:       splitList(v.GetString("CORS_ORIGINS")),
		FrontendBuildDir:  v.GetString("FRONTEND_BUILD_DIR"),

		LogLevel:    v.GetString("LOG_LEVEL"),
		LogDir:      v.GetString("LOG_DIR"),
		Environment: v.GetString("ENVIRONMENT_APP"),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
