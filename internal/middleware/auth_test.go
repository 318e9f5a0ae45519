package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anilink/internal/backend"
	"anilink/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func expiredToken(t *testing.T, secret string) string {
	t.Helper()
	tok, err := jwt.New(secret, -time.Minute).GenerateToken("u-expired", "OWNER")
	require.NoError(t, err)
	return tok
}

func TestJWTAuth_ValidToken(t *testing.T) {
	// Arrange
	secret := "test-secret-123"
	jwtService := jwt.New(secret, 1*time.Hour)
	validToken, _ := jwtService.GenerateToken("u-42", "VET")

	router := gin.New()
	router.Use(JWTAuth(jwtService, nil))

	router.GET("/protected", func(c *gin.Context) {
		tokens := backend.TokensFrom(c.Request.Context())
		require.NotNil(t, tokens)
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
			"access":  tokens.Access(),
		})
	})

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-42")
	assert.Contains(t, w.Body.String(), "VET")
	assert.Contains(t, w.Body.String(), validToken)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	jwtService := jwt.New("wrong-secret", 1*time.Hour)

	router := gin.New()
	router.Use(JWTAuth(jwtService, nil))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("This handler should not be reached")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_NoToken(t *testing.T) {
	jwtService := jwt.New("secret", 1*time.Hour)

	router := gin.New()
	router.Use(JWTAuth(jwtService, nil))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	// No Authorization header
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	jwtService := jwt.New("secret", 1*time.Hour)

	router := gin.New()
	router.Use(JWTAuth(jwtService, nil))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestJWTAuth_ExpiredWithoutRefresh(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(jwt.New("secret", time.Hour), nil))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expiredToken(t, "secret"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func newRefreshUpstream(t *testing.T, refreshed string) *backend.Client {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			if refreshed == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"accessToken":"` + refreshed + `","refreshToken":"refresh-2"}`))
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+refreshed {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(upstream.Close)
	client, err := backend.New(upstream.URL, time.Second)
	require.NoError(t, err)
	return client
}

func TestJWTAuth_ExpiredWithRefreshRotatesBeforeHandler(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	fresh, err := jwtService.GenerateToken("u-expired", "OWNER")
	require.NoError(t, err)
	client := newRefreshUpstream(t, fresh)

	router := gin.New()
	router.Use(JWTAuth(jwtService, client))
	router.GET("/protected", func(c *gin.Context) {
		assert.Equal(t, "u-expired", c.GetString("user_id"))
		tokens := backend.TokensFrom(c.Request.Context())
		require.NotNil(t, tokens)
		assert.Equal(t, fresh, tokens.Access())
		assert.Equal(t, "refresh-2", tokens.Refresh())

		_, err := client.ListAnimals(c.Request.Context())
		require.NoError(t, err)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expiredToken(t, "secret"))
	req.Header.Set(RefreshTokenHeader, "refresh-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fresh, w.Header().Get(AccessTokenHeader))
	assert.Equal(t, "refresh-2", w.Header().Get(RefreshTokenHeader))
}

func TestJWTAuth_ExpiredWithRejectedRefresh(t *testing.T) {
	client := newRefreshUpstream(t, "")

	router := gin.New()
	router.Use(JWTAuth(jwt.New("secret", time.Hour), client))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expiredToken(t, "secret"))
	req.Header.Set(RefreshTokenHeader, "garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "REFRESH_FAILED")
}

func TestJWTAuth_RefreshedTokenMustVerify(t *testing.T) {
	client := newRefreshUpstream(t, "not-a-jwt")

	router := gin.New()
	router.Use(JWTAuth(jwt.New("secret", time.Hour), client))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expiredToken(t, "secret"))
	req.Header.Set(RefreshTokenHeader, "refresh-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "REFRESH_FAILED")
}

func TestJWTAuth_ExpiredWithRefreshButNoRefresher(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(jwt.New("secret", time.Hour), nil))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expiredToken(t, "secret"))
	req.Header.Set(RefreshTokenHeader, "refresh-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}
