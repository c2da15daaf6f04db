package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/haven/pkg/auth/jwt"
	"github.com/kart-io/haven/pkg/errors"
	"github.com/kart-io/haven/pkg/id"
	"github.com/kart-io/haven/pkg/middleware"
	jwtopts "github.com/kart-io/haven/pkg/options/jwt"
	"github.com/kart-io/haven/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID_GeneratesULID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = middleware.GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := perform(r, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seen)
	assert.True(t, id.IsValid(seen))
	assert.Equal(t, seen, w.Header().Get(middleware.HeaderXRequestID))
}

func TestRequestID_HonorsIncomingHeader(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/ping", map[string]string{
		middleware.HeaderXRequestID: "upstream-id",
	})

	assert.Equal(t, "upstream-id", w.Header().Get(middleware.HeaderXRequestID))
}

func TestRecovery_ReturnsInternalErrorBody(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := perform(r, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, errors.ErrPanic.Code, body.Code)
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodOptions, "/ping", map[string]string{
		"Origin": "https://app.example.com",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Max-Age"))
}

func TestTimeout_BoundsRequestContext(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Timeout(10 * time.Millisecond))

	var hadDeadline bool
	r.GET("/slow", func(c *gin.Context) {
		_, hadDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	perform(r, http.MethodGet, "/slow", nil)
	assert.True(t, hadDeadline)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.Manager) {
	t.Helper()

	opts := jwtopts.NewOptions()
	opts.Key = "0123456789abcdef0123456789abcdef"
	manager, err := jwt.New(opts)
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.Auth(manager, "/healthz"))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.UserID(c))
	})
	return r, manager
}

func TestAuth_MissingHeader(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := perform(r, http.MethodGet, "/me", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, errors.ErrUnauthorized.Code, body.Code)
}

func TestAuth_MalformedScheme(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := perform(r, http.MethodGet, "/me", map[string]string{
		"Authorization": "Basic abc123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, errors.ErrInvalidToken.Code, body.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	r, manager := newAuthRouter(t)

	token, err := manager.Sign(t.Context(), "user-42")
	require.NoError(t, err)

	w := perform(r, http.MethodGet, "/me", map[string]string{
		"Authorization": "Bearer " + token.AccessToken,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", w.Body.String())
}

func TestAuth_SkipPath(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := perform(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
