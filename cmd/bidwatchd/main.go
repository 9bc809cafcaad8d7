package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bidwatch/bidwatch/api"
	"github.com/bidwatch/bidwatch/browser"
	"github.com/bidwatch/bidwatch/cache"
	"github.com/bidwatch/bidwatch/config"
	"github.com/bidwatch/bidwatch/models"
	"github.com/bidwatch/bidwatch/scraper"
)

// scrapeRunner implements handler.Runner: one traversal per call, on a
// fresh isolated page that is always closed on completion. The browser
// process itself is shared across requests.
type scrapeRunner struct {
	browser *browser.Browser
	cfg     config.ScraperConfig
	metrics *scraper.Metrics
}

func (r *scrapeRunner) Scrape(ctx context.Context, start, end int) (*models.BatchResult, error) {
	page, err := r.browser.NewPage(ctx, r.cfg.NavigationTimeout)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	trav := scraper.NewTraversal(r.cfg, r.metrics)
	return trav.Run(ctx, page, start, end, nil)
}

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("bidwatchd starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"sourceURL", cfg.Scraper.SourceURL,
	)

	// ── 3. Launch browser ───────────────────────────────────────────
	b, err := browser.New(cfg.Browser)
	if err != nil {
		slog.Error("failed to launch browser", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	// ── 4. Wire metrics, cache and the traversal runner ─────────────
	metrics := scraper.NewMetrics()

	cc, err := cache.New(cfg.Cache.MaxEntries)
	if err != nil {
		slog.Error("failed to initialise cache", "error", err)
		os.Exit(1)
	}

	runner := &scrapeRunner{browser: b, cfg: cfg.Scraper, metrics: metrics}

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(runner, cfg, cc, metrics.Registry, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests a grace period; a scrape mid-traversal
	// is abandoned when its request context dies.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// b.Close() runs via defer — kills Chrome.
	slog.Info("bidwatchd stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
