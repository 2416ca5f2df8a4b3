package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/retail-pos-backend/internal/config"
)

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func runCached(t *testing.T, mw echo.MiddlewareFunc, method, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(h)(c))
	return rec
}

func TestRedisCacheHitServesStoredResponse(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := NewRedisCache(cacheTestConfig(), rdb)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"items": []string{"milk", "bread"}})
	}

	first := runCached(t, mw, http.MethodGet, "/v1/products", h)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)

	second := runCached(t, mw, http.MethodGet, "/v1/products", h)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls, "handler must not run on a cache hit")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestRedisCacheSeparatesPathParams(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := NewRedisCache(cacheTestConfig(), rdb)

	// Dispatch through the router so the cache sees the :id routes the
	// way production wires them.
	e := echo.New()
	e.GET("/v1/categories/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "category-"+c.Param("id"))
	}, mw)

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/v1/categories/1", nil))
	assert.Equal(t, "category-1", first.Body.String())
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	other := httptest.NewRecorder()
	e.ServeHTTP(other, httptest.NewRequest(http.MethodGet, "/v1/categories/2", nil))
	assert.Equal(t, "category-2", other.Body.String(), "ids must not share a cache entry")
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))

	again := httptest.NewRecorder()
	e.ServeHTTP(again, httptest.NewRequest(http.MethodGet, "/v1/categories/1", nil))
	assert.Equal(t, "category-1", again.Body.String())
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
}

func TestRedisCacheKeyIncludesQuery(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := NewRedisCache(cacheTestConfig(), rdb)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"q": c.QueryString()})
	}

	runCached(t, mw, http.MethodGet, "/v1/products?page=1", h)
	runCached(t, mw, http.MethodGet, "/v1/products?page=2", h)
	assert.Equal(t, 2, calls, "different query strings must not share an entry")
}

func TestRedisCacheSkipsNonOKResponses(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := NewRedisCache(cacheTestConfig(), rdb)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	runCached(t, mw, http.MethodGet, "/v1/products", h)
	rec := runCached(t, mw, http.MethodGet, "/v1/products", h)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
}

func TestRedisCacheIgnoresUnlistedMethods(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := NewRedisCache(cacheTestConfig(), rdb)

	rec := runCached(t, mw, http.MethodPost, "/v1/products", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestRedisCacheNilClientPassesThrough(t *testing.T) {
	mw := NewRedisCache(cacheTestConfig(), nil)
	rec := runCached(t, mw, http.MethodGet, "/v1/products", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("tiny"))
	assert.False(t, ok)
}
