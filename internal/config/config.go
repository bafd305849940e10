package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	StorefrontAddr    string
	AdminAddr         string
	APIBaseURL        string
	APITimeout        time.Duration
	RedisURL          string
	AdminUsername     string
	AdminPassword     string // plain demo password, only used when no hash is configured
	AdminPasswordHash string
	SessionTTL        time.Duration
	CartTTL           time.Duration
	CookieSecure      bool
	LogLevel          string
	MaxUploadBytes    int64

	// problems seen while loading, logged by Report
	warnings []string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func (c *Config) getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		c.warnings = append(c.warnings, k+": invalid duration "+strconv.Quote(v)+", using default")
		return def
	}
	return d
}

func (c *Config) getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.warnings = append(c.warnings, k+": invalid bool "+strconv.Quote(v)+", using default")
		return def
	}
	return b
}

func (c *Config) getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.warnings = append(c.warnings, k+": invalid integer "+strconv.Quote(v)+", using default")
		return def
	}
	return n
}

// Load reads the environment (and .env when present). Nothing is logged here;
// call Report once the service logger is set up.
func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		StorefrontAddr:    getenv("STOREFRONT_ADDR", ":8080"),
		AdminAddr:         getenv("ADMIN_ADDR", ":8081"),
		APIBaseURL:        strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8000"), "/"),
		RedisURL:          os.Getenv("REDIS_URL"),
		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
	}
	cfg.APITimeout = cfg.getduration("API_TIMEOUT", 5*time.Second)
	cfg.SessionTTL = cfg.getduration("SESSION_TTL", 12*time.Hour)
	cfg.CartTTL = cfg.getduration("CART_TTL", 24*time.Hour)
	cfg.CookieSecure = cfg.getbool("COOKIE_SECURE", false)
	cfg.MaxUploadBytes = int64(cfg.getint("MAX_UPLOAD_MB", 10)) << 20

	if cfg.AdminPasswordHash == "" {
		// demo credentials; hashed at startup by the session package
		cfg.AdminPassword = "butchery123"
		cfg.warnings = append(cfg.warnings, "ADMIN_PASSWORD_HASH not set, using demo admin password")
	}
	return cfg
}

// Report logs the effective settings and any problems found by Load.
func (c Config) Report(l zerolog.Logger) {
	for _, w := range c.warnings {
		l.Warn().Msg("[config] " + w)
	}
	l.Info().Str("addr", c.StorefrontAddr).Msg("[config] STOREFRONT_ADDR")
	l.Info().Str("addr", c.AdminAddr).Msg("[config] ADMIN_ADDR")
	l.Info().Str("url", c.APIBaseURL).Msg("[config] API_BASE_URL")
	if c.RedisURL == "" {
		l.Info().Msg("[config] REDIS_URL not set, using in-memory stores")
	}
}
