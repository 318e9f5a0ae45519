package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"anilink/internal/backend"
	"anilink/internal/config"
	"anilink/internal/middleware"
	jwtsvc "anilink/internal/pkg/jwt"
	"anilink/internal/realtime"
	"anilink/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGateway struct {
	router   *gin.Engine
	registry *session.Registry
	jwt      *jwtsvc.Service
	calls    *atomic.Int32
}

func setupGateway(t *testing.T) *testGateway {
	t.Helper()
	gin.SetMode(gin.TestMode)

	calls := &atomic.Int32{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bookings", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"b1","status":"REQUESTED"},{"id":"b2","status":"CONFIRMED"}]`))
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	upstream, err := backend.New(srv.URL, 5*time.Second)
	require.NoError(t, err)

	cfg := &config.Config{AppOrigin: "http://app.test"}
	registry := session.NewRegistry()
	j := jwtsvc.New("router-secret", time.Hour)
	r := newRouter(cfg, deps{upstream: upstream, registry: registry, hub: realtime.NewHub(), jwt: j})
	return &testGateway{router: r, registry: registry, jwt: j, calls: calls}
}

func (g *testGateway) do(t *testing.T, method, path, userID, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		tok, err := g.jwt.GenerateToken(userID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rr := httptest.NewRecorder()
	g.router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Healthz(t *testing.T) {
	g := setupGateway(t)

	rr := g.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRouter_RequiresAuth(t *testing.T) {
	g := setupGateway(t)

	rr := g.do(t, http.MethodGet, "/api/v1/bookings", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "AUTH_HEADER_MISSING")
}

func TestRouter_BookingsServedFromSessionCache(t *testing.T) {
	g := setupGateway(t)

	for _, tab := range []string{"pending", "upcoming", ""} {
		rr := g.do(t, http.MethodGet, "/api/v1/bookings?tab="+tab, "u1", "OWNER")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}
	assert.Equal(t, int32(1), g.calls.Load())
	assert.Equal(t, 1, g.registry.Len())

	// Another user gets an isolated cache.
	rr := g.do(t, http.MethodGet, "/api/v1/bookings", "u2", "OWNER")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int32(2), g.calls.Load())
}

func TestRouter_ExpiredTokenWithBogusRefreshSkipsCache(t *testing.T) {
	g := setupGateway(t)

	rr := g.do(t, http.MethodGet, "/api/v1/bookings", "u1", "OWNER")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, int32(1), g.calls.Load())

	expired, err := jwtsvc.New("router-secret", -24*time.Hour).GenerateToken("u1", "OWNER")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	req.Header.Set(middleware.RefreshTokenHeader, "garbage")
	rr = httptest.NewRecorder()
	g.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "REFRESH_FAILED")
	assert.NotContains(t, rr.Body.String(), "b1")
	assert.Equal(t, int32(1), g.calls.Load())
}

func TestRouter_SellerRoutesGuarded(t *testing.T) {
	g := setupGateway(t)

	rr := g.do(t, http.MethodGet, "/api/v1/seller/products", "u1", "OWNER")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = g.do(t, http.MethodGet, "/api/v1/seller/orders", "u1", "VET")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRouter_SignOutDropsSession(t *testing.T) {
	g := setupGateway(t)

	rr := g.do(t, http.MethodGet, "/api/v1/bookings", "u1", "OWNER")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = g.do(t, http.MethodPost, "/api/v1/session/sign-out", "u1", "OWNER")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "signed_out", body.Data.Status)
	assert.Zero(t, g.registry.Len())

	rr = g.do(t, http.MethodGet, "/api/v1/bookings", "u1", "OWNER")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int32(2), g.calls.Load(), "signed-out session refetches")
}
