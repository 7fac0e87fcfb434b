package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/config"
)

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          30 * time.Second,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

// deadRedis returns a client whose every command fails immediately, for
// exercising the degrade-gracefully paths without a server.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:       "127.0.0.1:0",
		MaxRetries: -1,
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis down")
		},
	})
}

func newCacheContext(method, target, uid string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/tasks")
	if uid != "" {
		c.Set(UserIDKey, uid)
	}
	return c, rec
}

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`[{"id":"task-1"}]`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, []string{"a", "b"}, gotHdr.Values("X-Custom"))
	assert.Equal(t, body, gotBody)
}

func TestEncodeDecodePayloadEmptyBody(t *testing.T) {
	payload, err := encodePayload(http.StatusOK, http.Header{}, nil)
	require.NoError(t, err)

	status, _, body, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body)
}

func TestDecodePayloadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"shorter than the fixed header", []byte{0, 0, 0, 200}},
		// Header length claims more bytes than the buffer holds.
		{"truncated header", []byte{0, 0, 0, 200, 0, 0, 0, 99, '{'}},
		{"garbage header json", append([]byte{0, 0, 0, 200, 0, 0, 0, 3}, []byte("{{{")...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, ok := decodePayload(tt.raw)
			assert.False(t, ok)
		})
	}
}

func TestUserCacheKeyChangesWithVersion(t *testing.T) {
	c, _ := newCacheContext(http.MethodGet, "/api/tasks?category=Work", "user-a")

	k1 := userCacheKey("cache", "user-a", 1, c)
	k1again := userCacheKey("cache", "user-a", 1, c)
	k2 := userCacheKey("cache", "user-a", 2, c)

	assert.Equal(t, k1, k1again)
	// A bumped version orphans every prior entry.
	assert.NotEqual(t, k1, k2)
}

func TestUserCacheKeyIsolatesUsersAndQueries(t *testing.T) {
	c, _ := newCacheContext(http.MethodGet, "/api/tasks?category=Work", "user-a")
	other, _ := newCacheContext(http.MethodGet, "/api/tasks?category=Home", "user-a")

	assert.NotEqual(t,
		userCacheKey("cache", "user-a", 1, c),
		userCacheKey("cache", "user-b", 1, c))
	assert.NotEqual(t,
		userCacheKey("cache", "user-a", 1, c),
		userCacheKey("cache", "user-a", 1, other))
}

func runCached(t *testing.T, mw echo.MiddlewareFunc, method, uid string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	c, rec := newCacheContext(method, "/api/tasks", uid)
	handlerRan := false
	h := mw(func(c echo.Context) error {
		handlerRan = true
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	require.NoError(t, h(c))
	return rec, handlerRan
}

func TestUserCacheDisabledIsPassThrough(t *testing.T) {
	cfg := cacheTestConfig()
	cfg.Enabled = false

	rec, ran := runCached(t, NewUserCache(cfg, deadRedis()), http.MethodGet, "user-a")
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestUserCacheNilClientIsPassThrough(t *testing.T) {
	rec, ran := runCached(t, NewUserCache(cacheTestConfig(), nil), http.MethodGet, "user-a")
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestUserCacheMutationsPassThrough(t *testing.T) {
	// POST is not in Methods: the request reaches the handler untouched
	// and the failed version bump is swallowed.
	rec, ran := runCached(t, NewUserCache(cacheTestConfig(), deadRedis()), http.MethodPost, "user-a")
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestUserCacheServesMissWhenRedisDown(t *testing.T) {
	rec, ran := runCached(t, NewUserCache(cacheTestConfig(), deadRedis()), http.MethodGet, "user-a")
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestUserCacheSkipsAnonymousRequests(t *testing.T) {
	rec, ran := runCached(t, NewUserCache(cacheTestConfig(), deadRedis()), http.MethodGet, "")
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
