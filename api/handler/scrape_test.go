package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bidwatch/bidwatch/cache"
	"github.com/bidwatch/bidwatch/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	calls  int
	start  int
	end    int
	result *models.BatchResult
	err    error
}

func (s *stubRunner) Scrape(_ context.Context, start, end int) (*models.BatchResult, error) {
	s.calls++
	s.start, s.end = start, end
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &models.BatchResult{Start: start, End: end}, nil
}

func newScrapeRouter(run Runner, cc *cache.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/scrape", Scrape(run, cc, "https://www.example.com/allitems"))
	return r
}

func doScrape(t *testing.T, r *gin.Engine, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/scrape"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScrape_RangeShorthand(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStart  int
		wantEnd    int
		wantStatus int
	}{
		{"no params defaults to page 1", "", 1, 1, http.StatusOK},
		{"page expands to 1..N", "?page=3", 1, 3, http.StatusOK},
		{"page below 1 clamps", "?page=0", 1, 1, http.StatusOK},
		{"start alone is a single page", "?start=2", 2, 2, http.StatusOK},
		{"end alone starts at 1", "?end=4", 1, 4, http.StatusOK},
		{"explicit window", "?start=2&end=5", 2, 5, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &stubRunner{}
			w := doScrape(t, newScrapeRouter(run, nil), tt.query)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, 1, run.calls)
			assert.Equal(t, tt.wantStart, run.start)
			assert.Equal(t, tt.wantEnd, run.end)
		})
	}
}

func TestScrape_InvalidRangeRejectedBeforeBrowserWork(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"end below start", "?start=5&end=2"},
		{"start below 1", "?start=0&end=3"},
		{"explicit zero start alone", "?start=0"},
		{"explicit zero end alone", "?end=0"},
		{"negative start", "?start=-2&end=3"},
		{"non-numeric start", "?start=abc"},
		{"non-numeric page", "?page=first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &stubRunner{}
			w := doScrape(t, newScrapeRouter(run, nil), tt.query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, run.calls, "runner must not be invoked on a bad range")
			assert.Contains(t, w.Body.String(), models.ErrCodeInvalidInput)
		})
	}
}

func TestScrape_ErrorCodeToStatusMapping(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus int
	}{
		{models.ErrCodeTimeout, http.StatusGatewayTimeout},
		{models.ErrCodeNavigation, http.StatusBadGateway},
		{models.ErrCodeBrowserCrash, http.StatusBadGateway},
		{models.ErrCodeInvalidInput, http.StatusBadRequest},
		{models.ErrCodeRateLimited, http.StatusTooManyRequests},
		{models.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			run := &stubRunner{err: models.NewScrapeError(tt.code, "boom", nil)}
			w := doScrape(t, newScrapeRouter(run, nil), "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestScrape_CacheIsOptIn(t *testing.T) {
	cc, err := cache.New(4)
	require.NoError(t, err)
	run := &stubRunner{result: &models.BatchResult{Start: 1, End: 2, ItemsCount: 7}}
	r := newScrapeRouter(run, cc)

	// Without max_age_ms every request pays for a traversal.
	doScrape(t, r, "?page=2")
	doScrape(t, r, "?page=2")
	assert.Equal(t, 2, run.calls)

	// With max_age_ms the second request is served from cache.
	w := doScrape(t, r, "?page=2&max_age_ms=60000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, run.calls)

	w = doScrape(t, r, "?page=2&max_age_ms=60000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, run.calls, "cache hit must not reach the runner")
	assert.Contains(t, w.Body.String(), `"items_count":7`)
}

func TestScrape_CacheKeyIsWindowScoped(t *testing.T) {
	cc, err := cache.New(4)
	require.NoError(t, err)
	run := &stubRunner{}
	r := newScrapeRouter(run, cc)

	doScrape(t, r, "?page=2&max_age_ms=60000")
	doScrape(t, r, "?page=3&max_age_ms=60000")

	assert.Equal(t, 2, run.calls, "different windows must not share cache entries")
}
