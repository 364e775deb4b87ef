//go:build !sonic

package nodalsdk

import (
	"github.com/goccy/go-json"
)

// JSON codec for imroc/req
var jsonMarshal = json.Marshal
var jsonUnmarshal = json.Unmarshal
