package nodalsdk

import (
	"context"
	"strconv"

	"github.com/imroc/req/v3"
)

const (
	v1Commits = "/api/v1/projects/{projectId}/commits"
	v1Diff    = "/api/v1/projects/{projectId}/diff"
)

// VCSAPI exposes the server-side commit/diff/log endpoints. The CLI is a
// pure pass-through here; history lives on the server.
type VCSAPI struct {
	client *req.Client
}

func newVCSAPI(client *req.Client) *VCSAPI {
	return &VCSAPI{client: client}
}

// Commit records the project's current server state as a commit.
func (v *VCSAPI) Commit(ctx context.Context, projectID string, message string) (*Commit, error) {
	var result Commit

	resp, err := v.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetBody(&CommitRequest{Message: message}).
		SetSuccessResult(&result).
		Post(v1Commits)

	if err := handleAPIError(resp, err, "vcs commit"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Log returns the most recent commits, newest first. limit <= 0 means the
// server default.
func (v *VCSAPI) Log(ctx context.Context, projectID string, limit int) ([]Commit, error) {
	var result CommitLogResponse

	r := v.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetSuccessResult(&result)
	if limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := r.Get(v1Commits)

	if err := handleAPIError(resp, err, "vcs log"); err != nil {
		return nil, err
	}

	return result.Commits, nil
}

// Diff returns the server's changes since ref. Empty ref diffs against the
// latest commit.
func (v *VCSAPI) Diff(ctx context.Context, projectID string, ref string) ([]DiffEntry, error) {
	var result DiffResponse

	r := v.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetSuccessResult(&result)
	if ref != "" {
		r.SetQueryParam("ref", ref)
	}

	resp, err := r.Get(v1Diff)

	if err := handleAPIError(resp, err, "vcs diff"); err != nil {
		return nil, err
	}

	return result.Entries, nil
}
