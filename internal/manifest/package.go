package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/ejectkit/create-app/internal/jsonfile"
)

// Parse decodes a package.json document.
func Parse(data []byte) (*PackageManifest, error) {
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadFile reads and decodes the package.json at path.
func ReadFile(path string) (*PackageManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// ReadFS reads and decodes a package.json from a source tree.
func ReadFS(fsys fs.FS, name string) (*PackageManifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
	}
	return m, nil
}

// WriteFile writes m to path as two-space indented JSON with a trailing
// platform newline.
func WriteFile(path string, m *PackageManifest) error {
	return jsonfile.Write(path, m)
}
