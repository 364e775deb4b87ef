//go:build sonic

package nodalsdk

import (
	"github.com/bytedance/sonic"
)

// JSON codec for imroc/req
var jsonMarshal = sonic.Marshal
var jsonUnmarshal = sonic.Unmarshal
