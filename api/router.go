// Package api assembles the HTTP surface of the scrape service.
package api

import (
	"time"

	"github.com/bidwatch/bidwatch/api/handler"
	"github.com/bidwatch/bidwatch/api/middleware"
	"github.com/bidwatch/bidwatch/cache"
	"github.com/bidwatch/bidwatch/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version reported by the health endpoint.
const Version = "0.1.0"

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	Scrape:  RateLimit
//
// Health and metrics sit outside rate limiting so probes and Prometheus
// scrapes always work.
func NewRouter(run handler.Runner, cfg *config.Config, cc *cache.Cache, registry *prometheus.Registry, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(startTime, Version))

	protected := v1.Group("")
	protected.Use(middleware.RateLimit(cfg.RateLimit))
	protected.GET("/scrape", handler.Scrape(run, cc, cfg.Scraper.SourceURL))

	if registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	return r
}
