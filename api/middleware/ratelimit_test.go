package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bidwatch/bidwatch/config"
	"github.com/bidwatch/bidwatch/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	r := newLimitedRouter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)

	w := get(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrCodeRateLimited)
}

func TestRateLimit_ClientsAreIndependent(t *testing.T) {
	r := newLimitedRouter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.1:1234").Code)

	// A different client IP has its own bucket.
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2:1234").Code)
}
