package nodalsdk

import (
	"context"

	"github.com/imroc/req/v3"

	"github.com/nodalhq/nodal-cli/internal/schema"
)

const (
	v1Schema = "/api/v1/projects/{projectId}/schema"
)

// SchemaAPI reads and writes a project's input field schema.
type SchemaAPI struct {
	client *req.Client
}

func newSchemaAPI(client *req.Client) *SchemaAPI {
	return &SchemaAPI{client: client}
}

func (s *SchemaAPI) Get(ctx context.Context, projectID string) (*schema.Object, error) {
	var result schema.Object

	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetSuccessResult(&result).
		Get(v1Schema)

	if err := handleAPIError(resp, err, "schema get"); err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *SchemaAPI) Put(ctx context.Context, projectID string, obj *schema.Object) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("projectId", projectID).
		SetBody(obj).
		Put(v1Schema)

	return handleAPIError(resp, err, "schema put")
}
