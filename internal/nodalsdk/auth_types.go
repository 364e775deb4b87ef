package nodalsdk

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthClaims struct {
	jwt.RegisteredClaims
}

// ParseClaims decodes a token's claims without verifying the signature.
// The server verifies tokens; the client only needs subject and expiry.
func ParseClaims(token string) (*AuthClaims, error) {
	var claims AuthClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("parse token claims: %w", err)
	}
	return &claims, nil
}

// IsExpired reports whether the claims expire within the given leeway.
func (c *AuthClaims) IsExpired(leeway time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().Add(leeway).After(c.ExpiresAt.Time)
}
