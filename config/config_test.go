package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)

	assert.True(t, cfg.Browser.Headless)
	assert.False(t, cfg.Browser.NoSandbox)
	assert.Equal(t, []string{"Image", "Stylesheet", "Font", "Media"}, cfg.Browser.BlockedResourceTypes)

	assert.Equal(t, DefaultSourceURL, cfg.Scraper.SourceURL)
	assert.Equal(t, 45*time.Second, cfg.Scraper.NavigationTimeout)
	assert.Equal(t, 700*time.Millisecond, cfg.Scraper.ScrollPause)
	assert.Equal(t, 750*time.Millisecond, cfg.Scraper.SettleDelay)

	assert.Equal(t, 1.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 2, cfg.RateLimit.Burst)
	assert.Equal(t, 64, cfg.Cache.MaxEntries)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BIDWATCH_PORT", "9090")
	t.Setenv("BIDWATCH_HEADLESS", "false")
	t.Setenv("BIDWATCH_SOURCE_URL", "https://staging.example.com/allitems")
	t.Setenv("BIDWATCH_SCROLL_PAUSE", "1s")
	t.Setenv("BIDWATCH_BLOCKED_RESOURCES", "Image, Font")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "https://staging.example.com/allitems", cfg.Scraper.SourceURL)
	assert.Equal(t, time.Second, cfg.Scraper.ScrollPause)
	assert.Equal(t, []string{"Image", "Font"}, cfg.Browser.BlockedResourceTypes)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("BIDWATCH_PORT", "not-a-port")
	t.Setenv("BIDWATCH_HEADLESS", "maybe")
	t.Setenv("BIDWATCH_NAV_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 45*time.Second, cfg.Scraper.NavigationTimeout)
}
