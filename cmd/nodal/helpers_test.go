package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodalhq/nodal-cli/internal/client/config"
	"github.com/nodalhq/nodal-cli/internal/version"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "usr_1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestNewSDKNotLoggedIn(t *testing.T) {
	cfg := &config.Config{ServerURL: config.DefaultServerURL}

	_, err := newSDK(context.Background(), cfg, cfg.ServerURL)
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestNewSDKExpiredSession(t *testing.T) {
	// An expired refresh token is rejected before any network call.
	cfg := &config.Config{
		ServerURL:    config.DefaultServerURL,
		RefreshToken: signedToken(t, time.Now().Add(-time.Hour)),
	}

	_, err := newSDK(context.Background(), cfg, cfg.ServerURL)
	assert.ErrorIs(t, err, errSessionExpired)
}

func TestVersionCmdOutput(t *testing.T) {
	var buf bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), version.AppName)
	assert.Contains(t, buf.String(), version.Version)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcdef12", shortID("abcdef1234567890"))
	assert.Equal(t, "c1", shortID("c1"))
}
