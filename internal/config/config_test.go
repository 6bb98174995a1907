package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, rate.Limit(10), cfg.RateLimitAPI)
	assert.Equal(t, rate.Limit(2), cfg.RateLimitAuth)
	assert.Equal(t, rate.Limit(5), cfg.RateLimitWS)
	assert.Equal(t, 2*time.Second, cfg.SubmitDelay)
	assert.False(t, cfg.BackgroundStable)
	assert.Equal(t, usecase.DefaultBackgroundCounts, cfg.Background)
	assert.Empty(t, cfg.DashboardFixture)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STATIC_DIR", "/srv/static")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("RATE_LIMIT_API", "40")
	t.Setenv("RATE_LIMIT_AUTH", "3")
	t.Setenv("RATE_LIMIT_WS", "7")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SUBMIT_DELAY_MS", "0")
	t.Setenv("BACKGROUND_STABLE", "true")
	t.Setenv("BACKGROUND_DOTS", "5")
	t.Setenv("BACKGROUND_BLOBS", "0")
	t.Setenv("DASHBOARD_FIXTURE", "dash.yaml")

	cfg := LoadFromEnv()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/srv/static", cfg.StaticDir)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, rate.Limit(40), cfg.RateLimitAPI)
	assert.Equal(t, rate.Limit(3), cfg.RateLimitAuth)
	assert.Equal(t, rate.Limit(7), cfg.RateLimitWS)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.SubmitDelay)
	assert.True(t, cfg.BackgroundStable)
	assert.Equal(t, 5, cfg.Background.Dots)
	assert.Equal(t, 0, cfg.Background.Blobs)
	assert.Equal(t, usecase.DefaultBackgroundCounts.Lines, cfg.Background.Lines)
	assert.Equal(t, "dash.yaml", cfg.DashboardFixture)
}

func TestLoadFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "-1")
	t.Setenv("RATE_LIMIT_API", "fast")
	t.Setenv("SUBMIT_DELAY_MS", "-5")
	t.Setenv("BACKGROUND_STABLE", "maybe")
	t.Setenv("BACKGROUND_DOTS", "100000")

	cfg := LoadFromEnv()
	def := DefaultConfig()

	assert.Equal(t, def.SessionTTL, cfg.SessionTTL)
	assert.Equal(t, def.RateLimitAPI, cfg.RateLimitAPI)
	assert.Equal(t, def.SubmitDelay, cfg.SubmitDelay)
	assert.False(t, cfg.BackgroundStable)
	assert.Equal(t, def.Background.Dots, cfg.Background.Dots)
}

func TestIsOriginAllowed(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:8080", true},
		{"http://evil.example", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, cfg.IsOriginAllowed(tc.origin), tc.origin)
	}

	cfg.AllowedOrigins = []string{"*"}
	assert.True(t, cfg.IsOriginAllowed("http://anything.example"))
}
