package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{SecretKey: testSecret, AccessTokenValidityDuration: 10 * time.Minute}
}

// newTestServer wires real services over the in-memory store.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	return newServerWith(t, Options{AuthRateLimit: "1000-M"},
		services.NewAuthService(nil, rm, testConfig()),
		services.NewBookService(nil, rm))
}

func newServerWith(t *testing.T, opts Options, as AuthService, bs BookService) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := NewServer(opts, logging.Nop{}, as, bs)
	require.NoError(t, err)
	return s
}

func doRequest(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// registerAndLogin creates a user through the API and returns its token.
func registerAndLogin(t *testing.T, s *Server, email, password, role string) string {
	t.Helper()
	body := map[string]any{"email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	w := doRequest(t, s, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, s, http.MethodPost, "/api/auth/login", map[string]any{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createBook(t *testing.T, s *Server, token string, body map[string]any) map[string]any {
	t.Helper()
	w := doRequest(t, s, http.MethodPost, "/api/books", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data, ok := decode(t, w)["data"].(map[string]any)
	require.True(t, ok)
	return data
}

func duneBody() map[string]any {
	return map[string]any{"title": "Dune", "author": "Herbert", "genre": []string{"sf"}, "date": "1965-01-01"}
}
