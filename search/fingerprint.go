package search

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/jonwraymond/toolcatalog/registry"
)

// computeFingerprint generates a stable hash of the tool slice. Any change
// to an indexed field or to the order of tools changes the fingerprint.
func computeFingerprint(tools []registry.Tool) string {
	h := sha256.New()

	for _, tool := range tools {
		for _, field := range []string{
			tool.ID,
			tool.Name,
			tool.Description,
			tool.Category,
			tool.Path,
			strconv.FormatBool(tool.Premium),
		} {
			h.Write([]byte(field))
			h.Write([]byte{0})
		}
		h.Write([]byte{1}) // record separator
	}

	return hex.EncodeToString(h.Sum(nil))
}
