package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// DefaultProxy is the proxy URL for all requests.
	DefaultProxy string

	// UserAgent is sent on every page. The default mimics desktop Chrome.
	UserAgent string

	// BlockedResourceTypes lists resource types to block.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// ScraperConfig controls traversal behavior and its timing knobs.
type ScraperConfig struct {
	// SourceURL is the listing page the traversal starts from.
	SourceURL string

	// NavigationTimeout bounds the initial navigation. Navigation
	// failure is fatal to the invocation.
	NavigationTimeout time.Duration // default: 45s

	// ItemWaitTimeout bounds the wait for the first item card to
	// appear. Expiry is non-fatal; the traversal proceeds.
	ItemWaitTimeout time.Duration // default: 20s

	// LoadWaitTimeout bounds the load-complete wait after clicking a
	// next-page link. Expiry is non-fatal.
	LoadWaitTimeout time.Duration // default: 20s

	// ScrollPause is the pause between scroll rounds while draining
	// lazy-loaded content.
	ScrollPause time.Duration // default: 700ms

	// SettleDelay is the pause after clicking a load-more control
	// before draining.
	SettleDelay time.Duration // default: 750ms
}

// RateLimitConfig controls per-client rate limiting on the API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per client IP.
	Burst int // default: 2
}

// CacheConfig controls the batch-result cache of the HTTP service.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached batch results.
	MaxEntries int // default: 64
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultSourceURL is the listing page scraped when no override is set.
const DefaultSourceURL = "https://www.mvbataxsales.com/allitems"

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: envOr("BIDWATCH_HOST", "0.0.0.0"),
			Port: envIntOr("BIDWATCH_PORT", 8080),
			Mode: envOr("BIDWATCH_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("BIDWATCH_HEADLESS", true),
			NoSandbox:    envBoolOr("BIDWATCH_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("BIDWATCH_BROWSER_BIN"),
			DefaultProxy: os.Getenv("BIDWATCH_PROXY"),
			UserAgent:    envOr("BIDWATCH_USER_AGENT", defaultUserAgent),
			BlockedResourceTypes: envSliceOr("BIDWATCH_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Scraper: ScraperConfig{
			SourceURL:         envOr("BIDWATCH_SOURCE_URL", DefaultSourceURL),
			NavigationTimeout: envDurationOr("BIDWATCH_NAV_TIMEOUT", 45*time.Second),
			ItemWaitTimeout:   envDurationOr("BIDWATCH_ITEM_WAIT_TIMEOUT", 20*time.Second),
			LoadWaitTimeout:   envDurationOr("BIDWATCH_LOAD_WAIT_TIMEOUT", 20*time.Second),
			ScrollPause:       envDurationOr("BIDWATCH_SCROLL_PAUSE", 700*time.Millisecond),
			SettleDelay:       envDurationOr("BIDWATCH_SETTLE_DELAY", 750*time.Millisecond),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("BIDWATCH_RATE_RPS", 1.0),
			Burst:             envIntOr("BIDWATCH_RATE_BURST", 2),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("BIDWATCH_CACHE_MAX_ENTRIES", 64),
		},
		Log: LogConfig{
			Level:  envOr("BIDWATCH_LOG_LEVEL", "info"),
			Format: envOr("BIDWATCH_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
