package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustar/intake-backend/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedEngine(t *testing.T, rate int, clock *time.Time) *gin.Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rl := NewRateLimiter(ctx, rate, time.Minute)
	rl.now = func() time.Time { return *clock }

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.POST("/submit", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func submitFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.RemoteAddr = ip + ":1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_LimitsPerIP(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedEngine(t, 2, &now)

	assert.Equal(t, http.StatusOK, submitFrom(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, submitFrom(r, "10.0.0.1").Code)

	w := submitFrom(r, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, response.ErrRateLimitExceeded, body.Code)
	assert.NotEmpty(t, body.RequestID)

	// Other clients keep their own bucket.
	assert.Equal(t, http.StatusOK, submitFrom(r, "10.0.0.2").Code)

	// Tokens come back after the interval.
	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, submitFrom(r, "10.0.0.1").Code)
}

func TestRateLimiter_ZeroRateDisables(t *testing.T) {
	now := time.Now()
	r := newLimitedEngine(t, 0, &now)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, submitFrom(r, "10.0.0.1").Code)
	}
}

func TestRateLimiter_NonPositiveWindowDisables(t *testing.T) {
	for _, window := range []time.Duration{0, -time.Minute} {
		ctx, cancel := context.WithCancel(context.Background())
		rl := NewRateLimiter(ctx, 1, window)

		r := gin.New()
		r.Use(gin.Recovery())
		r.POST("/submit", rl.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, submitFrom(r, "10.0.0.1").Code, window)
		}
		cancel()
	}
}

func TestRateLimiter_CleanupForgetsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(context.Background(), 1, time.Minute)
	rl.now = func() time.Time { return now }

	require.True(t, rl.allow("10.0.0.1"))
	now = now.Add(4 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.visitors)
}

func TestBrotli_CompressesLargeBodies(t *testing.T) {
	payload := strings.Repeat("EDU-ABC234,", 500)

	r := gin.New()
	r.Use(Brotli())
	r.GET("/big", func(c *gin.Context) { c.String(http.StatusOK, payload) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/big", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	r.ServeHTTP(w, req)

	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, payload, string(decoded))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/small", nil)
	req.Header.Set("Accept-Encoding", "br")
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestBrotli_Skipper(t *testing.T) {
	payload := strings.Repeat("x", 4096)

	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{
		Skipper: func(c *gin.Context) bool { return c.Query("raw") == "1" },
	}))
	r.GET("/export", func(c *gin.Context) { c.String(http.StatusOK, payload) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/export?raw=1", nil)
	req.Header.Set("Accept-Encoding", "br")
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, payload, w.Body.String())
}

func TestBrotli_PassesThroughEncodedBodies(t *testing.T) {
	payload := []byte(strings.Repeat("PK", 2048))

	r := gin.New()
	r.Use(Brotli())
	r.GET("/xlsx", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
	})
	r.GET("/gzipped", func(c *gin.Context) {
		c.Header("Content-Encoding", "gzip")
		c.Data(http.StatusOK, "text/plain", payload)
	})

	for _, path := range []string{"/xlsx", "/gzipped"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "br")
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "br", w.Header().Get("Content-Encoding"), path)
		assert.Equal(t, payload, w.Body.Bytes(), path)
	}
}

func TestBrotli_AcceptsQualityValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip;q=1.0, BR;q=0.8")
	assert.True(t, acceptsBrotli(req))

	req.Header.Set("Accept-Encoding", "gzip, deflate")
	assert.False(t, acceptsBrotli(req))
}

func TestCacheHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/immutable", CacheControl(3600), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fresh", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/immutable", nil))
	assert.Equal(t, "private, max-age=3600, immutable", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fresh", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(response.RequestIDMiddleware(), RequestLogger(zerolog.New(&buf)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(response.HeaderRequestID, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "http", line["component"])
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "/missing", line["path"])
	assert.EqualValues(t, 404, line["status"])
}
