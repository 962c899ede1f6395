package manifest

import "slices"

// DefaultBrowsers is the browserslist written into every generated project.
var DefaultBrowsers = []string{
	">0.2%",
	"not dead",
	"not ie <= 11",
	"not op_mini all",
}

const (
	eslintPreset = "react-app"
	babelPreset  = "react-app"
)

// DefaultScripts returns the npm scripts pointing at the ejected scripts/ folder.
func DefaultScripts() map[string]string {
	return map[string]string{
		"start": "node scripts/start",
		"build": "node scripts/build",
		"test":  "node scripts/test",
	}
}

// ApplyFixedPolicy overwrites the scripts, eslintConfig, babel and
// browserslist blocks with their fixed values.
func ApplyFixedPolicy(m *PackageManifest) {
	m.Scripts = DefaultScripts()
	m.ESLintConfig = &ESLintConfig{Extends: eslintPreset}
	m.Babel = &BabelConfig{Presets: []string{babelPreset}}
	m.Browserslist = slices.Clone(DefaultBrowsers)
}
