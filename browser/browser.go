// Package browser owns the Rod browser lifecycle and provides the
// rendered-page implementation the scraper package consumes. One
// Browser (one Chrome process) serves the whole process; every scrape
// invocation opens its own isolated page and closes it on completion.
package browser

import (
	"log/slog"
	"time"

	"github.com/bidwatch/bidwatch/config"
	"github.com/bidwatch/bidwatch/models"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
)

// Browser manages the global browser process.
type Browser struct {
	browser *rod.Browser
	cfg     config.BrowserConfig
}

// New launches a browser per the config and connects to it.
func New(cfg config.BrowserConfig) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.DefaultProxy != "" {
		l = l.Proxy(cfg.DefaultProxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	return &Browser{browser: b, cfg: cfg}, nil
}

// Close kills the browser process. Call on shutdown to prevent zombie
// Chrome processes.
func (b *Browser) Close() {
	slog.Info("browser shutting down")
	b.browser.MustClose()
}

// navTimeoutDefault bounds Navigate when the caller does not override it.
const navTimeoutDefault = 45 * time.Second
