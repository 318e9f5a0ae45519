package notification

import (
	"errors"
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

func setupTestRouter(t *testing.T, up Upstream, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cc := cache.New("u1")
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Set("role", role)
		session.Set(c, cc)
		c.Next()
	})
	NewHandler(newTestService(up)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestHandler_GetNotifications(t *testing.T) {
	up := new(MockUpstream)
	up.On("ListNotifications", mock.Anything).Return(inbox, nil)
	r := setupTestRouter(t, up, "SELLER")

	rr := serve(r, http.MethodGet, "/api/v1/notifications?limit=2")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"unreadCount":3`)
	assert.Contains(t, rr.Body.String(), `"canView":false`)
	assert.Contains(t, rr.Body.String(), `"total":4`)
}

func TestHandler_GetNotifications_BadLimit(t *testing.T) {
	r := setupTestRouter(t, new(MockUpstream), "OWNER")

	rr := serve(r, http.MethodGet, "/api/v1/notifications?limit=ten")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_MarkAllAsRead_PartialFailure(t *testing.T) {
	up := new(MockUpstream)
	up.On("ListNotifications", mock.Anything).Return(inbox, nil)
	up.On("MarkNotificationRead", mock.Anything, "n1").Return(errors.New("boom"))
	up.On("MarkNotificationRead", mock.Anything, mock.Anything).Return(nil)
	r := setupTestRouter(t, up, "OWNER")

	rr := serve(r, http.MethodPost, "/api/v1/notifications/read-all")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "PARTIAL_FAILURE")
	assert.Contains(t, rr.Body.String(), `"failed":1`)
}

func TestHandler_MarkAsRead_UpstreamNotFound(t *testing.T) {
	up := new(MockUpstream)
	up.On("MarkNotificationRead", mock.Anything, "gone").
		Return(&upstreamError{status: http.StatusNotFound, body: `{"detail":"Notification not found"}`})
	r := setupTestRouter(t, up, "OWNER")

	rr := serve(r, http.MethodPost, "/api/v1/notifications/gone/read")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Notification not found")
}

type upstreamError struct {
	status int
	body   string
}

func (e *upstreamError) Error() string        { return "upstream" }
func (e *upstreamError) HTTPStatus() int      { return e.status }
func (e *upstreamError) ResponseBody() []byte { return []byte(e.body) }
