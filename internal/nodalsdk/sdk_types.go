package nodalsdk

import (
	"fmt"
	"runtime"

	"github.com/denisbrodbeck/machineid"

	"github.com/nodalhq/nodal-cli/internal/version"
)

const (
	HeaderNodalVersion  = "X-Nodal-Version"
	HeaderNodalDeviceID = "X-Nodal-Device-Id"
	HeaderRequestID     = "X-Request-Id"
)

var NodalUserAgent = fmt.Sprintf("NodalCLI/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)

// DeviceID is a stable, app-scoped machine identifier sent with every
// request so the server can tell sessions on different machines apart.
var DeviceID = func() string {
	id, err := machineid.ProtectedID("nodal-cli")
	if err != nil {
		return "unknown"
	}
	return id
}()
