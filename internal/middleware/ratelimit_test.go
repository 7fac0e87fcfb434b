package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/config"
)

func limiterTestConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       10,
		RefillTokens:   1,
		RefillInterval: 3 * time.Second,
		TTL:            10 * time.Minute,
		Prefix:         "rl",
	}
}

func runLimited(t *testing.T, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/auth/login")

	handlerRan := false
	h := mw(func(c echo.Context) error {
		handlerRan = true
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec, handlerRan
}

func TestTokenBucketDisabledIsPassThrough(t *testing.T) {
	cfg := limiterTestConfig()
	cfg.Enabled = false

	rec, ran := runLimited(t, NewTokenBucket(cfg, deadRedis()))
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestTokenBucketNilClientIsPassThrough(t *testing.T) {
	rec, ran := runLimited(t, NewTokenBucket(limiterTestConfig(), nil))
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenBucketFailsOpenWhenRedisDown(t *testing.T) {
	// An unreachable bucket store must never take the login endpoint down
	// with it; the request goes through without limiter headers.
	rec, ran := runLimited(t, NewTokenBucket(limiterTestConfig(), deadRedis()))
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.Empty(t, rec.Header().Get("Retry-After"))
}

func TestRetryAfterSecsRoundsUp(t *testing.T) {
	tests := []struct {
		ms   int64
		want int
	}{
		{0, 0},
		{1, 1},
		{999, 1},
		{1000, 1},
		{1001, 2},
		{2999, 3},
		{-50, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, retryAfterSecs(tt.ms), "ms=%d", tt.ms)
	}
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"int64", int64(7), 7},
		{"int", 7, 7},
		{"float64", float64(7.9), 7},
		{"numeric string", "42", 42},
		{"bad string", "nope", 0},
		{"nil", nil, 0},
		{"unsupported type", []byte("1"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, asInt64(tt.in))
		})
	}
}
