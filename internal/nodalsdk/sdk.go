package nodalsdk

import (
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"

	"github.com/nodalhq/nodal-cli/internal/utils"
	"github.com/nodalhq/nodal-cli/internal/version"
)

// NodalSDK is the client for the Nodal platform API.
type NodalSDK struct {
	client   *req.Client
	baseURL  string
	Projects *ProjectsAPI
	Files    *FilesAPI
	VCS      *VCSAPI
	Schema   *SchemaAPI
}

// New creates an SDK client for the given server.
func New(baseURL string) (*NodalSDK, error) {
	if err := utils.ValidateURL(baseURL); err != nil {
		return nil, err
	}

	client := newClient().SetBaseURL(baseURL)

	return &NodalSDK{
		client:   client,
		baseURL:  baseURL,
		Projects: newProjectsAPI(client),
		Files:    newFilesAPI(client),
		VCS:      newVCSAPI(client),
		Schema:   newSchemaAPI(client),
	}, nil
}

// SetAccessToken installs the bearer token used for all API calls.
func (s *NodalSDK) SetAccessToken(token string) {
	s.client.SetCommonBearerAuthToken(token)
}

// BaseURL returns the server this client talks to.
func (s *NodalSDK) BaseURL() string {
	return s.baseURL
}

// newClient builds a req client with the common retry policy, identification
// headers and JSON codec shared by the SDK and the standalone auth calls.
func newClient() *req.Client {
	return req.C().
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1*time.Second).
		SetUserAgent(NodalUserAgent).
		SetCommonHeader(HeaderNodalVersion, version.Version).
		SetCommonHeader(HeaderNodalDeviceID, DeviceID).
		SetCommonErrorResult(&APIError{}).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal).
		OnBeforeRequest(func(c *req.Client, r *req.Request) error {
			r.SetHeader(HeaderRequestID, uuid.NewString())
			return nil
		})
}
