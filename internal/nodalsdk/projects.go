package nodalsdk

import (
	"context"

	"github.com/imroc/req/v3"
)

const (
	v1Projects = "/api/v1/projects"
	v1Project  = "/api/v1/projects/{projectId}"
)

type ProjectsAPI struct {
	client *req.Client
}

func newProjectsAPI(client *req.Client) *ProjectsAPI {
	return &ProjectsAPI{client: client}
}

// List returns all projects visible to the authenticated user.
func (p *ProjectsAPI) List(ctx context.Context) ([]Project, error) {
	var result ProjectListResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetSuccessResult(&result).
		Get(v1Projects)

	if err := handleAPIError(resp, err, "projects list"); err != nil {
		return nil, err
	}

	return result.Projects, nil
}

// Get fetches one project by id.
func (p *ProjectsAPI) Get(ctx context.Context, projectID string) (*Project, error) {
	var result Project

	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetSuccessResult(&result).
		Get(v1Project)

	if err := handleAPIError(resp, err, "projects get"); err != nil {
		return nil, err
	}

	return &result, nil
}

// Create makes a new empty project.
func (p *ProjectsAPI) Create(ctx context.Context, name string) (*Project, error) {
	var result Project

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&CreateProjectRequest{Name: name}).
		SetSuccessResult(&result).
		Post(v1Projects)

	if err := handleAPIError(resp, err, "projects create"); err != nil {
		return nil, err
	}

	return &result, nil
}
