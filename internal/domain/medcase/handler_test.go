package medcase

import (
	"bytes"
	"mime/multipart"
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

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

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
	NewHandler(NewService(up)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

type formFile struct {
	name    string
	content []byte
}

func caseForm(t *testing.T, fields map[string]string, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandler_CreateCase_Multipart(t *testing.T) {
	up := new(MockUpstream)
	up.On("CreateCase", mock.Anything, mock.MatchedBy(func(req CreateCaseRequest) bool {
		return req.AnimalType == "goat" &&
			req.Symptoms == "cough, fever" &&
			req.AnimalID == "a1" &&
			len(req.Images) == 1 &&
			req.Images[0].ContentType == "image/png" &&
			req.Images[0].Filename == "my_goat.png"
	})).Return(&Case{ID: "c1", Status: StatusOpen}, nil)
	r := setupTestRouter(t, up, "OWNER")

	body, ct := caseForm(t, map[string]string{
		"animal_type": "goat",
		"symptoms":    "cough, fever",
		"animal_id":   "a1",
	}, formFile{name: "my goat.png", content: pngHeader})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"id":"c1"`)
	up.AssertExpectations(t)
}

func TestHandler_CreateCase_RejectsNonImage(t *testing.T) {
	up := new(MockUpstream)
	r := setupTestRouter(t, up, "OWNER")

	body, ct := caseForm(t, map[string]string{"animal_type": "goat", "symptoms": "cough"},
		formFile{name: "notes.txt", content: []byte("plain text, not an image")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_IMAGE")
	up.AssertNotCalled(t, "CreateCase", mock.Anything, mock.Anything)
}

func TestHandler_CreateCase_MissingFields(t *testing.T) {
	r := setupTestRouter(t, new(MockUpstream), "OWNER")

	body, ct := caseForm(t, map[string]string{"animal_type": "goat"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR")
}

func TestHandler_ListCases_VetDefaultsToVetScope(t *testing.T) {
	up := new(MockUpstream)
	up.On("ListCases", mock.Anything, ListFilter{Scope: ScopeVet}).Return([]Case{{ID: "c1"}}, nil)
	r := setupTestRouter(t, up, "vet")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"scope":"vet"`)
}

func TestHandler_ListCases_InvalidScope(t *testing.T) {
	r := setupTestRouter(t, new(MockUpstream), "OWNER")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases?scope=all", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_SCOPE")
}
