package scaffold

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ejectkit/create-app/internal/manifest"
	"github.com/ejectkit/create-app/internal/tsconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeManager records invocations and edits package.json the way
// `npm install --save` would.
type fakeManager struct {
	calls     []string
	onInstall func(dir string) error
}

func (f *fakeManager) Name() string { return "npm" }

func (f *fakeManager) Add(_ context.Context, dir string, pkgs ...string) error {
	f.calls = append(f.calls, "add "+strings.Join(pkgs, " "))
	path := filepath.Join(dir, manifest.FileName)
	m, err := manifest.ReadFile(path)
	if err != nil {
		return err
	}
	if m.Dependencies == nil {
		m.Dependencies = manifest.Dependencies{}
	}
	for _, p := range pkgs {
		m.Dependencies[p] = "^17.0.1"
	}
	return manifest.WriteFile(path, m)
}

func (f *fakeManager) Install(_ context.Context, dir string) error {
	f.calls = append(f.calls, "install")
	if f.onInstall != nil {
		return f.onInstall(dir)
	}
	return nil
}

func (f *fakeManager) RunCommand(script string) string { return "npm " + script }

func skipUnsupported(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("scaffolding is not supported on windows")
	}
}

func newOptions(t *testing.T, dir string, template fstest.MapFS, m *fakeManager) Options {
	t.Helper()
	var tmpl = DefaultTemplate()
	if template != nil {
		tmpl = template
	}
	opts, err := NewOptions(dir, tmpl, DefaultOwn(), m, &bytes.Buffer{})
	require.NoError(t, err)
	return opts
}

func readManifest(t *testing.T, dir string) *manifest.PackageManifest {
	t.Helper()
	m, err := manifest.ReadFile(filepath.Join(dir, manifest.FileName))
	require.NoError(t, err)
	return m
}

func TestNewOptions(t *testing.T) {
	opts, err := NewOptions(filepath.Join("some", "where", "my-app"), nil, nil, &fakeManager{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "my-app", opts.AppName)
	assert.True(t, filepath.IsAbs(opts.AppPath))
}

func TestCreateWithDefaultAssets(t *testing.T) {
	skipUnsupported(t)
	dir := filepath.Join(t.TempDir(), "my-app")
	m := &fakeManager{}

	res, err := Create(context.Background(), newOptions(t, dir, nil, m))
	require.NoError(t, err)

	assert.Equal(t, []string{"add react react-dom", "install"}, m.calls)
	assert.Empty(t, res.Warnings)
	assert.Nil(t, res.TypeScript, "JavaScript template needs no tsconfig")

	pkg := readManifest(t, dir)
	assert.Equal(t, "my-app", pkg.Name)
	assert.Equal(t, "0.1.0", pkg.Version)
	assert.Equal(t, "^17.0.1", pkg.Dependencies["react"])
	assert.Equal(t, "4.44.2", pkg.Dependencies["webpack"])
	assert.NotContains(t, pkg.Dependencies, "fsevents")
	assert.Nil(t, pkg.OptionalDependencies)
	assert.Equal(t, manifest.DefaultScripts(), pkg.Scripts)
	assert.Equal(t, manifest.DefaultBrowsers, pkg.Browserslist)
	assert.Equal(t, pkg.Dependencies.Names(), res.Dependencies)
	assert.Len(t, res.Dependencies, 17)

	assert.Equal(t, []string{
		"config/env.js", "config/paths.js", "config/webpack.config.js",
		"scripts/build.js", "scripts/start.js", "scripts/test.js",
	}, res.Ejected.Files)
	assert.Equal(t, []string{"config/react-app.d.ts"}, res.Ejected.Skipped)
	assert.NoFileExists(t, filepath.Join(dir, "config", "react-app.d.ts"))

	paths, err := os.ReadFile(filepath.Join(dir, "config", "paths.js"))
	require.NoError(t, err)
	assert.NotContains(t, string(paths), "@remove-on-eject")
	assert.NotContains(t, string(paths), "ownNodeModules")
	assert.Contains(t, string(paths), "moduleFileExtensions")

	assert.FileExists(t, filepath.Join(dir, ".gitignore"))
	assert.NoFileExists(t, filepath.Join(dir, "gitignore"))
	assert.FileExists(t, filepath.Join(dir, "public", "index.html"))
	assert.FileExists(t, filepath.Join(dir, "src", "App.js"))
	assert.NoFileExists(t, filepath.Join(dir, tsconfig.FileName))
	assert.NoFileExists(t, filepath.Join(dir, "src", tsconfig.DeclarationsFile))
}

func TestCreateConflictingDirectory(t *testing.T) {
	skipUnsupported(t)
	dir := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep me"), 0644))
	m := &fakeManager{}

	_, err := Create(context.Background(), newOptions(t, dir, nil, m))

	var ce *ConflictError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, []string{"notes.txt"}, ce.Files)
	assert.Empty(t, m.calls)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notes.txt", entries[0].Name())
	data, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestCreateAppendsExistingGitignore(t *testing.T) {
	skipUnsupported(t)
	dir := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log"), 0644))

	_, err := Create(context.Background(), newOptions(t, dir, nil, &fakeManager{}))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "*.log\n# dependencies\n"), "got %q", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "gitignore"))
}

func TestCreateInvalidName(t *testing.T) {
	skipUnsupported(t)
	tests := []string{"React-App", "react", "node_modules", "_private"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), name)
			m := &fakeManager{}

			_, err := Create(context.Background(), newOptions(t, dir, nil, m))

			var ne *manifest.NameError
			require.True(t, errors.As(err, &ne), "got %v", err)
			assert.NoDirExists(t, dir)
			assert.Empty(t, m.calls)
		})
	}
}

func typeScriptTemplate() fstest.MapFS {
	tmpl := fstest.MapFS{
		"package.json":  {Data: []byte(`{"dependencies": {"typescript": "^4.1.2", "react": "^16.0.0"}}`)},
		"src/index.tsx": {Data: []byte("export {};\n")},
		"src/App.tsx":   {Data: []byte("export default function App() { return null; }\n")},
		"gitignore":     {Data: []byte("/node_modules\n")},
		".DS_Store":     {Data: []byte{0}},
	}
	tmpl["node_modules/left-pad/index.js"] = &fstest.MapFile{Data: []byte("module.exports = 1;\n")}
	return tmpl
}

func installTypeScript(dir string) error {
	pkgDir := filepath.Join(dir, "node_modules", "typescript")
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(`{"version": "4.1.2"}`), 0644)
}

func TestCreateTypeScriptProject(t *testing.T) {
	skipUnsupported(t)
	dir := filepath.Join(t.TempDir(), "ts-app")
	m := &fakeManager{onInstall: installTypeScript}

	res, err := Create(context.Background(), newOptions(t, dir, typeScriptTemplate(), m))
	require.NoError(t, err)

	require.NotNil(t, res.TypeScript)
	assert.True(t, res.TypeScript.FirstTimeSetup)
	assert.NotEmpty(t, res.TypeScript.Changes)

	cfg, err := tsconfig.Load(filepath.Join(dir, tsconfig.FileName))
	require.NoError(t, err)
	assert.Equal(t, "preserve", cfg.Resolved.CompilerOptions["jsx"])

	decl, err := os.ReadFile(filepath.Join(dir, "src", tsconfig.DeclarationsFile))
	require.NoError(t, err)
	assert.NotContains(t, string(decl), "@remove-file-on-eject")
	assert.Contains(t, string(decl), "declare module '*.svg'")

	pkg := readManifest(t, dir)
	assert.Equal(t, "^17.0.1", pkg.Dependencies["react"], "installed version wins over the template")
	assert.Equal(t, "^4.1.2", pkg.Dependencies["typescript"])

	assert.ElementsMatch(t, []string{"src/App.tsx", "src/index.tsx", "gitignore"}, res.TemplateFiles)
	assert.NoDirExists(t, filepath.Join(dir, "node_modules", "left-pad"))
	assert.NoFileExists(t, filepath.Join(dir, ".DS_Store"))
}

func TestCreateTypeScriptWithoutCompiler(t *testing.T) {
	skipUnsupported(t)
	dir := filepath.Join(t.TempDir(), "ts-app")

	_, err := Create(context.Background(), newOptions(t, dir, typeScriptTemplate(), &fakeManager{}))

	var mce *tsconfig.MissingCompilerError
	require.True(t, errors.As(err, &mce), "got %v", err)
	assert.NoFileExists(t, filepath.Join(dir, tsconfig.FileName))
}

func TestCheckSafe(t *testing.T) {
	tests := []struct {
		name      string
		entries   []string
		conflicts []string
	}{
		{"empty", nil, nil},
		{"git only", []string{".git", ".gitignore"}, nil},
		{"conflicts", []string{".gitignore", "README.md", "src"}, []string{"README.md", "src"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, e := range tt.entries {
				require.NoError(t, os.WriteFile(filepath.Join(dir, e), nil, 0644))
			}

			err := CheckSafe(dir)
			if tt.conflicts == nil {
				assert.NoError(t, err)
				return
			}
			var ce *ConflictError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.conflicts, ce.Files)
			assert.Equal(t, dir, ce.Dir)
		})
	}
}

func TestMergeGitignore(t *testing.T) {
	t.Run("no template gitignore", func(t *testing.T) {
		merged, err := mergeGitignore(t.TempDir())
		require.NoError(t, err)
		assert.False(t, merged)
	})

	t.Run("rename", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "gitignore"), []byte("/build\n"), 0644))

		merged, err := mergeGitignore(dir)
		require.NoError(t, err)
		assert.True(t, merged)

		data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
		require.NoError(t, err)
		assert.Equal(t, "/build\n", string(data))
		assert.NoFileExists(t, filepath.Join(dir, "gitignore"))
	})

	t.Run("append", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".idea/\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "gitignore"), []byte("/build\n"), 0644))

		_, err := mergeGitignore(dir)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
		require.NoError(t, err)
		assert.Equal(t, ".idea/\n/build\n", string(data))
		assert.NoFileExists(t, filepath.Join(dir, "gitignore"))
	})
}
