package apiserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/haven/internal/apiserver/biz"
)

func newTestServerOptions(t *testing.T) *Options {
	t.Helper()

	guidePath := filepath.Join(t.TempDir(), "guide.md")
	guide := "Welcome.\n\n## Handling Cravings\n\nRide the wave; the craving passes.\n"
	require.NoError(t, os.WriteFile(guidePath, []byte(guide), 0o600))

	opts := NewOptions()
	opts.SQLite.Path = ":memory:"
	opts.JWT.Key = "0123456789abcdef0123456789abcdef"
	opts.LLM.APIKey = ""
	opts.Guide.Path = guidePath
	return opts
}

func postJSON(t *testing.T, h http.Handler, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewServer_StartsWithoutModelCredential(t *testing.T) {
	opts := newTestServerOptions(t)
	require.False(t, opts.LLM.HasCredential())

	srv, err := NewServer(opts)
	require.NoError(t, err)
	require.NotNil(t, srv)
	t.Cleanup(srv.manager.CloseAll)
}

func TestAdvisorAsk_FallsBackWithoutModelCredential(t *testing.T) {
	opts := newTestServerOptions(t)

	srv, err := NewServer(opts)
	require.NoError(t, err)
	t.Cleanup(srv.manager.CloseAll)

	w := postJSON(t, srv.engine, "/v1/auth/register", "", map[string]string{
		"email":    "sam@example.com",
		"password": "a-long-password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Data struct {
			Token struct {
				AccessToken string `json:"access_token"`
			} `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.Data.Token.AccessToken)

	w = postJSON(t, srv.engine, "/v1/advisor/ask", registered.Data.Token.AccessToken, map[string]string{
		"question": "How do I handle a craving tonight?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var asked struct {
		Code int `json:"code"`
		Data struct {
			Response string `json:"response"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &asked))
	assert.Zero(t, asked.Code)
	assert.Equal(t, biz.FallbackResponse, asked.Data.Response)
}
