package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	s := newTestServer(t)

	claims := auth.Claims{UserID: "11111111-1111-1111-1111-111111111111", UserName: "alice", Email: "a@x.com", Role: models.RoleUser}
	valid, err := auth.GenerateToken(claims, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	expired, err := auth.GenerateToken(claims, []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.GenerateToken(claims, []byte("other-secret"), time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantKey    string
		wantReason string
	}{
		{"Should reject missing header", "", http.StatusUnauthorized, "message", "Access denied"},
		{"Should reject non-bearer scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "error", "The token must be in jwt format"},
		{"Should reject bare token", valid, http.StatusUnauthorized, "error", "The token must be in jwt format"},
		{"Should reject empty token", "Bearer", http.StatusUnauthorized, "error", "Invalid token"},
		{"Should reject blank token", "Bearer    ", http.StatusUnauthorized, "error", "Invalid token"},
		{"Should reject garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, "error", "Invalid token"},
		{"Should reject token signed with another secret", "Bearer " + foreign, http.StatusUnauthorized, "error", "Invalid token"},
		{"Should reject expired token", "Bearer " + expired, http.StatusUnauthorized, "error", "Token expired"},
		{"Should accept valid token", "Bearer " + valid, http.StatusOK, "", ""},
		{"Should accept lowercase scheme", "bearer " + valid, http.StatusOK, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/books", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			body := decode(t, w)
			if tt.wantKey == "" {
				assert.Equal(t, true, body["success"])
				return
			}
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantReason, body[tt.wantKey])
		})
	}
}
