package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/bidwatch/bidwatch/cache"
	"github.com/bidwatch/bidwatch/models"
	"github.com/gin-gonic/gin"
)

// Runner executes one traversal over a fresh, isolated browser page.
// The server's wiring implements it; tests stub it.
type Runner interface {
	Scrape(ctx context.Context, start, end int) (*models.BatchResult, error)
}

// Scrape returns the handler for GET /api/v1/scrape.
//
// Query parameters: either `page` (shorthand for start=1,end=page) or
// explicit `start`/`end`; optional `max_age_ms` opts into the result
// cache. An invalid range is rejected with 400 before any browser work.
func Scrape(run Runner, cc *cache.Cache, sourceURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, err := resolveRange(c.Query("page"), c.Query("start"), c.Query("end"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		maxAge := time.Duration(intOr(c.Query("max_age_ms"), 0)) * time.Millisecond
		key := cache.Key(sourceURL, start, end)

		if cc != nil && maxAge > 0 {
			if cached, hit := cc.Get(key, maxAge); hit {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		result, err := run.Scrape(c.Request.Context(), start, end)
		if err != nil {
			respondError(c, err)
			return
		}

		if cc != nil && maxAge > 0 {
			cc.Set(key, result)
		}
		c.JSON(http.StatusOK, result)
	}
}

// resolveRange applies the page/start/end shorthand rules:
// nothing set means page 1; `page` alone means 1..max(1,page); `start`
// alone means that single page; `end` alone means 1..end. An explicit
// value below 1 is rejected, never reinterpreted as absent.
func resolveRange(pageQ, startQ, endQ string) (int, int, error) {
	var (
		start, end       int
		hasStart, hasEnd bool
	)
	if startQ != "" {
		v, err := strconv.Atoi(startQ)
		if err != nil {
			return 0, 0, errInvalid("start", startQ)
		}
		if v < 1 {
			return 0, 0, rangeError{msg: "start must be >= 1"}
		}
		start, hasStart = v, true
	}
	if endQ != "" {
		v, err := strconv.Atoi(endQ)
		if err != nil {
			return 0, 0, errInvalid("end", endQ)
		}
		if v < 1 {
			return 0, 0, rangeError{msg: "end must be >= 1"}
		}
		end, hasEnd = v, true
	}

	switch {
	case !hasStart && !hasEnd:
		page := 1
		if pageQ != "" {
			v, err := strconv.Atoi(pageQ)
			if err != nil {
				return 0, 0, errInvalid("page", pageQ)
			}
			page = v
		}
		if page < 1 {
			page = 1
		}
		start, end = 1, page
	case hasStart && !hasEnd:
		end = start
	case !hasStart && hasEnd:
		start = 1
	}

	if end < start {
		return 0, 0, rangeError{msg: "end must be >= start"}
	}
	return start, end, nil
}

type rangeError struct{ msg string }

func (e rangeError) Error() string { return e.msg }

func errInvalid(name, value string) error {
	return rangeError{msg: "invalid " + name + " value: " + value}
}

func intOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return fallback
}

// respondError maps a ScrapeError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error) {
	scrapeErr, ok := err.(*models.ScrapeError)
	if !ok {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
	}
	c.JSON(mapErrorToStatus(scrapeErr), gin.H{"error": scrapeErr.ToDetail()})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation, models.ErrCodeBrowserCrash:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
