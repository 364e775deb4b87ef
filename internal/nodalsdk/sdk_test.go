package nodalsdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func newTestSDK(t *testing.T, handler http.Handler) *NodalSDK {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sdk, err := New(srv.URL)
	require.NoError(t, err)
	sdk.SetAccessToken("test-token")
	return sdk
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)

	_, err = New("ftp://example.com")
	assert.Error(t, err)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	sdk := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(t, w, http.StatusOK, ProjectListResponse{})
	}))

	_, err := sdk.Projects.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get(HeaderNodalVersion))
	assert.NotEmpty(t, got.Get(HeaderNodalDeviceID))
	assert.NotEmpty(t, got.Get(HeaderRequestID))
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var creds LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Email != "dev@example.com" || creds.Password != "hunter2" {
			writeJSON(t, w, http.StatusUnauthorized,
				NewAPIError(CodeAuthInvalidCredentials, "invalid credentials"))
			return
		}
		writeJSON(t, w, http.StatusOK, AuthTokenResponse{
			AccessToken:  "at_1",
			RefreshToken: "rt_1",
		})
	}))
	defer srv.Close()

	tokens, err := Login(context.Background(), srv.URL, &LoginRequest{
		Email:    "dev@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "at_1", tokens.AccessToken)
	assert.Equal(t, "rt_1", tokens.RefreshToken)

	_, err = Login(context.Background(), srv.URL, &LoginRequest{
		Email:    "dev@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeAuthInvalidCredentials, apiErr.Code)
}

func TestRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/refresh", r.URL.Path)

		var body RefreshTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "rt_old", body.RefreshToken)

		// token rotation: a new refresh token comes back
		writeJSON(t, w, http.StatusOK, AuthTokenResponse{
			AccessToken:  "at_new",
			RefreshToken: "rt_new",
		})
	}))
	defer srv.Close()

	tokens, err := Refresh(context.Background(), srv.URL, "rt_old")
	require.NoError(t, err)
	assert.Equal(t, "at_new", tokens.AccessToken)
	assert.Equal(t, "rt_new", tokens.RefreshToken)
}

func TestRefreshWithoutToken(t *testing.T) {
	_, err := Refresh(context.Background(), "https://api.example.com", "")
	assert.Error(t, err)
}

func TestProjects(t *testing.T) {
	sdk := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/projects":
			writeJSON(t, w, http.StatusOK, ProjectListResponse{Projects: []Project{
				{ID: "prj_1", Name: "invoice-bot"},
				{ID: "prj_2", Name: "crm-sync"},
			}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/projects/prj_1":
			writeJSON(t, w, http.StatusOK, Project{ID: "prj_1", Name: "invoice-bot"})
		case r.Method == http.MethodGet:
			writeJSON(t, w, http.StatusNotFound,
				NewAPIError(CodeProjectNotFound, "no such project"))
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/projects":
			var body CreateProjectRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(t, w, http.StatusCreated, Project{ID: "prj_3", Name: body.Name})
		}
	}))
	ctx := context.Background()

	projects, err := sdk.Projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "invoice-bot", projects[0].Name)

	proj, err := sdk.Projects.Get(ctx, "prj_1")
	require.NoError(t, err)
	assert.Equal(t, "prj_1", proj.ID)

	_, err = sdk.Projects.Get(ctx, "prj_missing")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeProjectNotFound, apiErr.Code)

	created, err := sdk.Projects.Create(ctx, "new-bot")
	require.NoError(t, err)
	assert.Equal(t, "new-bot", created.Name)
}

func TestFiles(t *testing.T) {
	sdk := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/projects/prj_1/files":
			writeJSON(t, w, http.StatusOK, FileListResponse{Files: []RemoteFile{
				{Path: "main.ts", Hash: "aaa", Size: 12},
			}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/projects/prj_1/files":
			var body UploadRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			out := make([]UploadedFile, len(body.Files))
			for i, f := range body.Files {
				out[i] = UploadedFile{Path: f.Path, Hash: "server-hash"}
			}
			writeJSON(t, w, http.StatusOK, UploadResponse{Files: out})
		case r.URL.Path == "/api/v1/projects/prj_1/files/content":
			require.Equal(t, "lib/util.ts", r.URL.Query().Get("path"))
			w.Write([]byte("export const x = 1;\n"))
		}
	}))
	ctx := context.Background()

	files, err := sdk.Files.List(ctx, "prj_1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.ts", files[0].Path)

	uploaded, err := sdk.Files.Upload(ctx, "prj_1", []FileUpload{
		{Path: "main.ts", Content: "WA=="},
	})
	require.NoError(t, err)
	require.Len(t, uploaded, 1)
	assert.Equal(t, "server-hash", uploaded[0].Hash)

	content, err := sdk.Files.Download(ctx, "prj_1", "lib/util.ts")
	require.NoError(t, err)
	assert.Equal(t, "export const x = 1;\n", string(content))
}

func TestUploadEmptyBatchSkipsRequest(t *testing.T) {
	sdk := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty batch")
	}))

	uploaded, err := sdk.Files.Upload(context.Background(), "prj_1", nil)
	require.NoError(t, err)
	assert.Empty(t, uploaded)
}

func TestVCS(t *testing.T) {
	sdk := newTestSDK(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/projects/prj_1/commits":
			var body CommitRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(t, w, http.StatusCreated, Commit{ID: "c1", Message: body.Message})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/projects/prj_1/commits":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			writeJSON(t, w, http.StatusOK, CommitLogResponse{Commits: []Commit{
				{ID: "c2", Message: "second"},
				{ID: "c1", Message: "first"},
			}})
		case r.URL.Path == "/api/v1/projects/prj_1/diff":
			assert.Equal(t, "c1", r.URL.Query().Get("ref"))
			writeJSON(t, w, http.StatusOK, DiffResponse{Entries: []DiffEntry{
				{Path: "main.ts", Status: "modified"},
			}})
		}
	}))
	ctx := context.Background()

	commit, err := sdk.VCS.Commit(ctx, "prj_1", "initial")
	require.NoError(t, err)
	assert.Equal(t, "initial", commit.Message)

	log, err := sdk.VCS.Log(ctx, "prj_1", 5)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "c2", log[0].ID)

	entries, err := sdk.VCS.Diff(ctx, "prj_1", "c1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DiffModified, entries[0].Status)
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "usr_1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", claims.Subject)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)

	assert.False(t, claims.IsExpired(0))
	assert.True(t, claims.IsExpired(2*time.Hour))

	_, err = ParseClaims("garbage")
	assert.Error(t, err)
}

func TestIsExpiredWithoutExpiry(t *testing.T) {
	claims := &AuthClaims{}
	assert.False(t, claims.IsExpired(time.Hour))
}
