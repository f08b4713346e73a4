package models

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	ts := NewTokenStore(t.TempDir())

	token, err := ts.GetToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, ts.SaveToken("abc123"))
	token, err = ts.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	info, err := os.Stat(ts.TokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, ts.ClearToken())
	require.NoError(t, ts.ClearToken())
	token, err = ts.GetToken()
	require.NoError(t, err)
	assert.Empty(t, token)
}
