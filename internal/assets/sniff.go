package assets

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

var (
	// glbType is the binary glTF container, identified by its "glTF" magic.
	glbType = filetype.NewType("glb", "model/gltf-binary")

	errEmptyAsset = errors.New("empty asset")
)

func init() {
	filetype.AddMatcher(glbType, isGLB)
}

func isGLB(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 'g' && buf[1] == 'l' && buf[2] == 'T' && buf[3] == 'F'
}

func isJSONDocument(buf []byte) bool {
	trimmed := bytes.TrimLeft(buf, " \t\r\n\xef\xbb\xbf")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// sniff rejects payloads that cannot be a glTF asset, such as an HTML error
// page or an image served from the asset path.
func sniff(data []byte) error {
	if len(data) == 0 {
		return errEmptyAsset
	}
	kind, _ := filetype.Match(data)
	if kind == glbType || isJSONDocument(data) {
		return nil
	}
	return fmt.Errorf("unsupported asset content (%s)", describe(kind))
}

func describe(kind types.Type) string {
	if kind == filetype.Unknown {
		return "unknown type"
	}
	return kind.MIME.Value
}
