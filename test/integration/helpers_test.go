//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ejectkit/create-app/internal/manifest"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // HOME, holds ~/.create-app
	WorkDir string // parent of generated projects
	BinDir  string // the only PATH entry, holds fake npm and yarn
	LogFile string // invocations of the fake package managers
}

// setupTestEnv creates isolated temp directories and points HOME and PATH at
// them so no real settings or package managers are used.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("scaffolding is not supported on windows")
	}

	env := &testEnv{
		HomeDir: t.TempDir(),
		WorkDir: t.TempDir(),
		BinDir:  t.TempDir(),
	}
	env.LogFile = filepath.Join(env.BinDir, "calls.log")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("PATH", env.BinDir)
	t.Setenv("FAKE_LOG", env.LogFile)
	for _, key := range []string{"PACKAGE_MANAGER", "TEMPLATE_DIR", "SCRIPTS_DIR"} {
		t.Setenv("CREATE_APP_"+key, "")
	}

	for _, bin := range []string{"npm", "yarn"} {
		script := "#!/bin/sh\necho \"" + bin + " $*\" >> \"$FAKE_LOG\"\n"
		if err := os.WriteFile(filepath.Join(env.BinDir, bin), []byte(script), 0755); err != nil {
			t.Fatalf("writing fake %s: %v", bin, err)
		}
	}

	return env
}

// calls returns the logged fake package manager invocations.
func (e *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading %s: %v", e.LogFile, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// fakeManager edits package.json the way `npm install --save` would and can
// drop packages into node_modules on install.
type fakeManager struct {
	calls   []string
	modules map[string]string // package name -> version placed in node_modules
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
	for name, version := range f.modules {
		pkgDir := filepath.Join(dir, "node_modules", name)
		if err := os.MkdirAll(pkgDir, 0755); err != nil {
			return err
		}
		data := []byte(`{"name": "` + name + `", "version": "` + version + `"}`)
		if err := os.WriteFile(filepath.Join(pkgDir, "package.json"), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeManager) RunCommand(script string) string { return "npm " + script }

// writeTree writes files (slash-separated path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s to not exist", path)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
