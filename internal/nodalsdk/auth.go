package nodalsdk

import (
	"context"
)

const (
	v1AuthLogin   = "/api/v1/auth/login"
	v1AuthRefresh = "/api/v1/auth/refresh"
)

// Login exchanges email+password for a token pair. It runs against a bare
// client because it happens before an authenticated SDK exists.
func Login(ctx context.Context, serverURL string, creds *LoginRequest) (*AuthTokenResponse, error) {
	var tokens AuthTokenResponse

	client := newClient().SetBaseURL(serverURL)

	resp, err := client.R().
		SetContext(ctx).
		SetBody(creds).
		SetSuccessResult(&tokens).
		Post(v1AuthLogin)

	if err := handleAPIError(resp, err, "auth login"); err != nil {
		return nil, err
	}

	return &tokens, nil
}

// Refresh trades a refresh token for a fresh token pair.
func Refresh(ctx context.Context, serverURL string, refreshToken string) (*AuthTokenResponse, error) {
	if refreshToken == "" {
		return nil, ErrNoAccessToken
	}

	var tokens AuthTokenResponse

	client := newClient().SetBaseURL(serverURL)

	resp, err := client.R().
		SetContext(ctx).
		SetBody(&RefreshTokenRequest{RefreshToken: refreshToken}).
		SetSuccessResult(&tokens).
		Post(v1AuthRefresh)

	if err := handleAPIError(resp, err, "auth refresh"); err != nil {
		return nil, err
	}

	return &tokens, nil
}
