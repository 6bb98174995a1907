package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port      string
	StaticDir string

	// Security
	AllowedOrigins []string
	TrustedProxies []string // IPs or CIDRs whose X-Forwarded-For is believed
	SessionTTL     time.Duration

	// Rate Limiting
	RateLimitAPI  rate.Limit
	RateLimitAuth rate.Limit
	RateLimitWS   rate.Limit

	// Logging
	LogLevel string

	// Submission
	SubmitDelay time.Duration

	// Background
	BackgroundStable bool
	Background       usecase.BackgroundCounts

	// Dashboard
	DashboardFixture string
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:           "8080",
		StaticDir:      "./static",
		AllowedOrigins: []string{"http://localhost:8080", "http://localhost:3000"},
		SessionTTL:     domain.SessionTTL,
		RateLimitAPI:   domain.DefaultRateLimitAPI,
		RateLimitAuth:  domain.DefaultRateLimitAuth,
		RateLimitWS:    domain.DefaultRateLimitWS,
		LogLevel:       "info", // Options: debug, info, warn, error, silent
		SubmitDelay:    domain.SubmitDelay,
		Background:     usecase.DefaultBackgroundCounts,
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	// Server
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		cfg.StaticDir = dir
	}

	// Security
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = parseList(origins)
	}
	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		cfg.TrustedProxies = parseList(proxies)
	}

	if hours, ok := positiveInt("SESSION_TTL_HOURS"); ok {
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}

	// Rate Limiting
	if val, ok := positiveInt("RATE_LIMIT_API"); ok {
		cfg.RateLimitAPI = rate.Limit(val)
	}
	if val, ok := positiveInt("RATE_LIMIT_AUTH"); ok {
		cfg.RateLimitAuth = rate.Limit(val)
	}
	if val, ok := positiveInt("RATE_LIMIT_WS"); ok {
		cfg.RateLimitWS = rate.Limit(val)
	}

	// Logging
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	// Submission; 0 completes immediately
	if ms := os.Getenv("SUBMIT_DELAY_MS"); ms != "" {
		if val, err := strconv.Atoi(ms); err == nil && val >= 0 {
			cfg.SubmitDelay = time.Duration(val) * time.Millisecond
		}
	}

	// Background
	if stable := os.Getenv("BACKGROUND_STABLE"); stable != "" {
		if val, err := strconv.ParseBool(stable); err == nil {
			cfg.BackgroundStable = val
		}
	}
	counts := []struct {
		key string
		dst *int
	}{
		{"BACKGROUND_BLOBS", &cfg.Background.Blobs},
		{"BACKGROUND_LINES", &cfg.Background.Lines},
		{"BACKGROUND_ACCENTS", &cfg.Background.Accents},
		{"BACKGROUND_CIRCLES", &cfg.Background.Circles},
		{"BACKGROUND_POLYGONS", &cfg.Background.Polygons},
		{"BACKGROUND_DOTS", &cfg.Background.Dots},
	}
	for _, c := range counts {
		if v := os.Getenv(c.key); v != "" {
			if val, err := strconv.Atoi(v); err == nil && val >= 0 && val <= domain.MaxShapeCount {
				*c.dst = val
			}
		}
	}

	// Dashboard
	if path := os.Getenv("DASHBOARD_FIXTURE"); path != "" {
		cfg.DashboardFixture = path
	}

	return cfg
}

// positiveInt reads key as an integer greater than zero
func positiveInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	val, err := strconv.Atoi(v)
	if err != nil || val <= 0 {
		return 0, false
	}
	return val, true
}

// parseList splits a comma-separated value, dropping blanks
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// IsOriginAllowed reports whether a WebSocket handshake from origin is
// accepted. An empty origin is a same-origin request.
func (c *Config) IsOriginAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}

// Global configuration instance
var AppConfig = LoadFromEnv()
