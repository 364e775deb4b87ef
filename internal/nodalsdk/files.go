package nodalsdk

import (
	"context"
	"fmt"

	"github.com/imroc/req/v3"
)

const (
	v1Files       = "/api/v1/projects/{projectId}/files"
	v1FileContent = "/api/v1/projects/{projectId}/files/content"
)

type FilesAPI struct {
	client *req.Client
}

func newFilesAPI(client *req.Client) *FilesAPI {
	return &FilesAPI{client: client}
}

// List returns the server's authoritative manifest for a project.
func (f *FilesAPI) List(ctx context.Context, projectID string) ([]RemoteFile, error) {
	var result FileListResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetSuccessResult(&result).
		Get(v1Files)

	if err := handleAPIError(resp, err, "files list"); err != nil {
		return nil, err
	}

	return result.Files, nil
}

// Upload sends a batch of files in one request. Content is base64 in
// transit. The server responds with its computed fingerprint per accepted
// file plus optional non-fatal compilation warnings.
func (f *FilesAPI) Upload(ctx context.Context, projectID string, files []FileUpload) ([]UploadedFile, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var result UploadResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetBody(&UploadRequest{Files: files}).
		SetSuccessResult(&result).
		Post(v1Files)

	if err := handleAPIError(resp, err, "files upload"); err != nil {
		return nil, err
	}

	return result.Files, nil
}

// Download fetches the current server content of one file.
func (f *FilesAPI) Download(ctx context.Context, projectID string, path string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetQueryParam("path", path).
		Get(v1FileContent)

	if err := handleAPIError(resp, err, fmt.Sprintf("files download %q", path)); err != nil {
		return nil, err
	}

	return resp.Bytes(), nil
}
