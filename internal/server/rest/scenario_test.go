package rest

import (
	"net/http"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two users share a store: B can neither see nor delete A's book.
func TestScenario_OwnershipIsolation(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/auth/register", map[string]any{"email": "a@x.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/auth/login", map[string]any{"email": "a@x.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	tokenA := decode(t, w)["token"].(string)

	claimsA, err := auth.ParseToken(tokenA, []byte(testSecret))
	require.NoError(t, err)

	w = doRequest(t, s, http.MethodPost, "/api/books", duneBody(), tokenA)
	require.Equal(t, http.StatusCreated, w.Code)
	book := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, claimsA.UserID, book["user"])
	bookID := book["id"].(string)

	tokenB := registerAndLogin(t, s, "b@x.com", "secret1", "")

	w = doRequest(t, s, http.MethodGet, "/api/books", nil, tokenB)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["data"])

	w = doRequest(t, s, http.MethodDelete, "/api/books/"+bookID, nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/books", nil, tokenA)
	assert.Equal(t, []string{"Dune"}, titlesOf(t, decode(t, w)))
}
