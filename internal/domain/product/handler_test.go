package product

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anilink/internal/cache"
	"anilink/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T, up Upstream) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cc := cache.New("s1")
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "s1")
		c.Set("role", "SELLER")
		session.Set(c, cc)
		c.Next()
	})
	h := NewHandler(NewService(up))
	api := r.Group("/api/v1")
	h.RegisterSellerRoutes(api)
	h.RegisterMarketplaceRoutes(api)
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_CreateSellerProduct_Validation(t *testing.T) {
	r := setupTestRouter(t, new(MockUpstream))

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/seller/products", map[string]any{"title": "Feed", "category": "feed", "price": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Price")
}

func TestHandler_UpdateSellerProduct_RejectsBadPrice(t *testing.T) {
	up := new(MockUpstream)
	r := setupTestRouter(t, up)

	rr := doJSONRequest(r, http.MethodPut, "/api/v1/seller/products/p1", map[string]any{"price": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	up.AssertNotCalled(t, "UpdateSellerProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_UpdateSellerProduct_PartialBody(t *testing.T) {
	up := new(MockUpstream)
	up.On("UpdateSellerProduct", mock.Anything, "p1", mock.MatchedBy(func(req UpdateProductRequest) bool {
		return req.Title != nil && *req.Title == "New title" && req.Price == nil && req.Stock == nil
	})).Return(&SellerProduct{ID: "p1", Title: "New title"}, nil)
	r := setupTestRouter(t, up)

	rr := doJSONRequest(r, http.MethodPatch, "/api/v1/seller/products/p1", map[string]any{"title": "New title"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "New title")
	up.AssertExpectations(t)
}

func TestHandler_ListMarketplace_QueryFilter(t *testing.T) {
	up := new(MockUpstream)
	up.On("ListMarketplaceProducts", mock.Anything).Return(market, nil)
	r := setupTestRouter(t, up)

	rr := doJSONRequest(r, http.MethodGet, "/api/v1/marketplace/products?category=feed&in_stock=true&verified=true", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body struct {
		Data MarketplaceListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Data.Products, 1)
	assert.Equal(t, "p1", body.Data.Products[0].ID)
}
