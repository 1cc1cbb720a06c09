package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv            string
	LogLevel          string
	HTTPAddr          string
	MetricsAddr       string
	RedisAddr         string // empty disables caching
	RedisDB           int
	RedisPass         string
	HostawayBase      string
	HostawayAccountID string
	HostawayKey       string
	HostawayRPS       int
	ApprovalWorkers   int
	ReportWorkers     int
	CacheTTL          time.Duration
}

// HasHostawayCredentials reports whether live Hostaway calls can be made.
func (c Config) HasHostawayCredentials() bool {
	return c.HostawayAccountID != "" && c.HostawayKey != ""
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Real environment variables win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg(".env present but unreadable")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:            env("APP_ENV", "prod"),
		LogLevel:          env("LOG_LEVEL", "info"),
		HTTPAddr:          env("HTTP_ADDR", ":8080"),
		MetricsAddr:       env("METRICS_ADDR", ""),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPass:         env("REDIS_PASSWORD", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		HostawayBase:      env("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
		HostawayAccountID: env("HOSTAWAY_ACCOUNT_ID", ""),
		HostawayKey:       env("HOSTAWAY_API_KEY", ""),
		HostawayRPS:       atoi("HOSTAWAY_RPS", 5),
		ApprovalWorkers:   atoi("APPROVAL_WORKERS", 4),
		ReportWorkers:     atoi("REPORT_WORKERS", 4),
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
	}
	if !c.HasHostawayCredentials() {
		log.Warn().Msg("HOSTAWAY_ACCOUNT_ID or HOSTAWAY_API_KEY is empty, serving mock reviews")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
