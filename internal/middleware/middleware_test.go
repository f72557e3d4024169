package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tushar07778/expert-session-booking/internal/config"
	"github.com/Tushar07778/expert-session-booking/internal/utils"
)

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func serve(e *echo.Echo, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketMemoryFallback(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Minute,
		TTL: 5 * time.Minute, KeyStrategy: "ip_route", Prefix: "rl",
	}
	store := NewLimiterStore(cfg.PerSecond(), cfg.Capacity)
	e := echo.New()
	e.POST("/v1/bookings", ok, NewTokenBucket(cfg, nil, store))

	for i := 0; i < 2; i++ {
		rec := serve(e, http.MethodPost, "/v1/bookings", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}
	rec := serve(e, http.MethodPost, "/v1/bookings", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "too_many_requests")
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// a different client has its own bucket
	rec = serve(e, http.MethodPost, "/v1/bookings", http.Header{"X-Real-Ip": {"10.0.0.9"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, store.Len())
}

func TestTokenBucketPassThrough(t *testing.T) {
	e := echo.New()
	e.GET("/a", ok, NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil, NewLimiterStore(0.0001, 1)))
	e.GET("/b", ok, NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/a", nil).Code)
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/b", nil).Code)
	}
}

func TestLimiterStoreCleanup(t *testing.T) {
	store := NewLimiterStore(1, 1, WithIdleTTL(-time.Second))
	store.Get("a")
	store.Get("b")
	assert.Equal(t, 2, store.Len())
	store.Cleanup()
	assert.Equal(t, 0, store.Len())
}

func TestOperatorAuth(t *testing.T) {
	const secret = "s3cret"
	e := echo.New()
	e.PATCH("/status", func(c echo.Context) error {
		return c.String(http.StatusOK, OperatorID(c))
	}, JWTAuth(secret), RequireRole(RoleOperator))

	rec := serve(e, http.MethodPatch, "/status", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodPatch, "/status", http.Header{"Authorization": {"Bearer garbage"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	wrongKey, err := utils.NewOperatorToken("other", "ops", RoleOperator, time.Hour)
	require.NoError(t, err)
	rec = serve(e, http.MethodPatch, "/status", http.Header{"Authorization": {"Bearer " + wrongKey.Token}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	viewer, err := utils.NewOperatorToken(secret, "viewer", "VIEWER", time.Hour)
	require.NoError(t, err)
	rec = serve(e, http.MethodPatch, "/status", http.Header{"Authorization": {"Bearer " + viewer.Token}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	op, err := utils.NewOperatorToken(secret, "ops@example.com", RoleOperator, time.Hour)
	require.NoError(t, err)
	rec = serve(e, http.MethodPatch, "/status", http.Header{"Authorization": {"Bearer " + op.Token}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ops@example.com", rec.Body.String())
}

func TestRedisCacheWithoutRedisIsNoop(t *testing.T) {
	e := echo.New()
	e.GET("/v1/experts", ok, NewRedisCache(config.CacheConfig{Enabled: true, Methods: []string{"GET"}}, nil))
	rec := serve(e, http.MethodGet, "/v1/experts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCachePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, `{"items":[]}`, string(body))

	_, _, _, ok = decodePayload(payload[:5])
	assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	key := func(strategy, target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/v1/experts")
		return cacheKeyFrom(config.CacheConfig{Prefix: "cache", KeyStrategy: strategy}, c)
	}
	assert.NotEqual(t, key("route_query", "/v1/experts?page=1"), key("route_query", "/v1/experts?page=2"))
	assert.Equal(t, key("route", "/v1/experts?page=1"), key("route", "/v1/experts?page=2"))
	assert.Regexp(t, `^cache:[0-9a-f]{40}$`, key("", "/v1/experts"))
}
