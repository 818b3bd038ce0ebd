// Package archic is the YAML-to-blob compiler's library form (spec §A.1,
// SPEC_FULL.md §B.5): cmd/archic is a thin CLI wrapper around it, and
// anything else that needs to turn hand-authored configuration into a
// blob image - tests, the bundled demo fixture - imports it directly
// instead of shelling out.
package archic

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/archipelago-host/archi/internal/blob"
)

// Compile parses a YAML configuration source and encodes it to a binary
// blob image.
func Compile(yamlData []byte) ([]byte, error) {
	var src blob.Source
	if err := yaml.Unmarshal(yamlData, &src); err != nil {
		return nil, err
	}
	return blob.Encode(&src)
}

// CompileFile reads path and compiles it.
func CompileFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(data)
}
