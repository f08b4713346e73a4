package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from an access token without the
// server's signing key
type TokenInfo struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	// Opaque is set when the token is not a JWT. Nothing else is filled in.
	Opaque bool
}

// Expired reports whether the token carries an expiry that has passed
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

type accessClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Describe inspects a token for display. The signature is not checked;
// only the server can do that.
func Describe(token string) TokenInfo {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{Opaque: true}
	}

	info := TokenInfo{
		Subject: claims.Subject,
		Email:   claims.Email,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info
}
