package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenres_ValueAndScan(t *testing.T) {
	v, err := Genres{"sf", "classic"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["sf","classic"]`, v)

	v, err = Genres(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	var g Genres
	require.NoError(t, g.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, Genres{"a", "b"}, g)

	require.NoError(t, g.Scan(`["c"]`))
	assert.Equal(t, Genres{"c"}, g)

	require.NoError(t, g.Scan(nil))
	assert.Equal(t, Genres{}, g)

	assert.Error(t, g.Scan(42))
	assert.Error(t, g.Scan("not json"))
}

func TestBookPatch_IsEmpty(t *testing.T) {
	assert.True(t, BookPatch{}.IsEmpty())

	title := "Dune"
	assert.False(t, BookPatch{Title: &title}.IsEmpty())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}
