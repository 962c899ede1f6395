package manifest

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// FileName is the manifest file name at a project root.
const FileName = "package.json"

// InitialVersion is the version written into a freshly generated manifest.
const InitialVersion = "0.1.0"

// Dependencies maps a package name to a semver range.
type Dependencies map[string]string

// Names returns the package names in ascending order. This is also the order
// in which encoding/json serializes the mapping.
func (d Dependencies) Names() []string {
	return slices.Sorted(maps.Keys(d))
}

// ESLintConfig is the eslintConfig block of package.json.
type ESLintConfig struct {
	Extends string `json:"extends"`
}

// BabelConfig is the babel block of package.json.
type BabelConfig struct {
	Presets []string `json:"presets"`
}

// PackageManifest is a package.json document. Keys the scaffolder does not
// manage are kept in Extra and written back after the known keys.
type PackageManifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Private              bool              `json:"private"`
	Dependencies         Dependencies      `json:"dependencies,omitempty"`
	OptionalDependencies Dependencies      `json:"optionalDependencies,omitempty"`
	Browserslist         []string          `json:"browserslist,omitempty"`
	ESLintConfig         *ESLintConfig     `json:"eslintConfig,omitempty"`
	Scripts              map[string]string `json:"scripts,omitempty"`
	Babel                *BabelConfig      `json:"babel,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownKeys = []string{
	"name", "version", "private", "dependencies", "optionalDependencies",
	"browserslist", "eslintConfig", "scripts", "babel",
}

// New returns the minimal manifest written before any package is installed.
func New(name string) *PackageManifest {
	return &PackageManifest{
		Name:    name,
		Version: InitialVersion,
		Private: true,
	}
}

// UnmarshalJSON decodes the known fields and keeps everything else in Extra.
func (m *PackageManifest) UnmarshalJSON(data []byte) error {
	type plain PackageManifest
	if err := json.Unmarshal(data, (*plain)(m)); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownKeys {
		delete(raw, k)
	}
	m.Extra = nil
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

// MarshalJSON encodes the known fields in a fixed order followed by Extra
// sorted by key.
func (m PackageManifest) MarshalJSON() ([]byte, error) {
	type plain PackageManifest
	known, err := encode(plain(m))
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return known, nil
	}

	var buf bytes.Buffer
	buf.Write(known[:len(known)-1])
	for _, k := range slices.Sorted(maps.Keys(m.Extra)) {
		key, err := encode(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(m.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode is json.Marshal without HTML escaping, so browserslist queries such
// as ">0.2%" survive verbatim.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
