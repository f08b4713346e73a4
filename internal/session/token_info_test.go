package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeReadsClaims(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "cook@example.com",
		"exp":   expires.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	info := Describe(signed)

	assert.False(t, info.Opaque)
	assert.Equal(t, "user-1", info.Subject)
	assert.Equal(t, "cook@example.com", info.Email)
	assert.True(t, info.ExpiresAt.Equal(expires))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(expires.Add(time.Minute)))
}

func TestDescribeOpaqueToken(t *testing.T) {
	info := Describe("not-a-jwt")

	assert.True(t, info.Opaque)
	assert.False(t, info.Expired(time.Now()))
}
