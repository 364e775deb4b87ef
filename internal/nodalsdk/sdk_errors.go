package nodalsdk

import (
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
)

var (
	ErrNoAccessToken = errors.New("sdk: access token missing")
	ErrNoServerURL   = errors.New("sdk: server url missing")
)

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error
	CodeAccessDenied   = "E_ACCESS_DENIED"   // access denied
	CodeUnknownError   = "E_UNKNOWN_ERR"     // unknown error

	// Auth errors
	CodeAuthInvalidCredentials = "E_AUTH_INVALID_CREDENTIALS" // credentials or token invalid, expired or malformed
	CodeAuthTokenRefreshFailed = "E_AUTH_TOKEN_REFRESH_FAILED"

	// Project errors
	CodeProjectNotFound = "E_PROJECT_NOT_FOUND"
	CodeInvalidPath     = "E_INVALID_PATH" // a file path is invalid or escapes the project

	// File errors
	CodeFileNotFound     = "E_FILE_NOT_FOUND"
	CodeFileListFailed   = "E_FILE_LIST_FAILED"
	CodeFileUploadFailed = "E_FILE_UPLOAD_FAILED"

	// VCS errors
	CodeCommitFailed = "E_COMMIT_FAILED"
	CodeRefNotFound  = "E_REF_NOT_FOUND"
)

// APIError is the error body returned by the Nodal API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s", e.Code, e.Message)
}

// handleAPIError folds the transport error and the API error body into a
// single error, or nil when the response is a success.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s %w", operation, requestErr)
	}

	// got a response, but the api returned an error
	if resp.IsErrorState() {
		if err, ok := resp.ErrorResult().(*APIError); ok && err != nil {
			return fmt.Errorf("%s: %w", operation, err)
		}
		return fmt.Errorf("api error: %s %s", operation, resp.String())
	}

	return nil
}
