package tsconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ejectkit/create-app/internal/eject"
	"github.com/ejectkit/create-app/internal/jsonfile"
)

// DeclarationsFile is the ambient type declaration file written into src/.
const DeclarationsFile = "react-app.d.ts"

// entryExtensions is the lookup order for src/index.<ext>.
var entryExtensions = []string{
	"web.mjs", "mjs", "web.js", "js", "web.ts", "ts", "web.tsx", "tsx", "json", "web.jsx", "jsx",
}

// Project locates the files Verify reads and writes.
type Project struct {
	Root string
}

// ConfigPath is the project's tsconfig.json.
func (p Project) ConfigPath() string {
	return filepath.Join(p.Root, FileName)
}

// SrcDir is the project's source directory.
func (p Project) SrcDir() string {
	return filepath.Join(p.Root, "src")
}

// Entry returns the first existing src/index file in lookup order, or
// src/index.js when none exists.
func (p Project) Entry() string {
	base := filepath.Join(p.SrcDir(), "index")
	for _, ext := range entryExtensions {
		candidate := base + "." + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return base + ".js"
}

// IsTypeScript reports whether the entry point is a .ts or .tsx file.
func (p Project) IsTypeScript() bool {
	entry := p.Entry()
	return strings.HasSuffix(entry, ".ts") || strings.HasSuffix(entry, ".tsx")
}

// Verify reconciles the project's tsconfig.json with policy and writes the
// ambient type declarations. It returns nil, nil for a JavaScript project
// without a tsconfig.json.
func Verify(project Project, policy Policy, declarations []byte) (*Result, error) {
	configPath := project.ConfigPath()

	exists, err := fileExists(configPath)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", configPath, err)
	}
	if !exists && !project.IsTypeScript() {
		return nil, nil
	}

	if _, err := FindCompiler(project.Root); err != nil {
		return nil, err
	}

	var (
		doc      Document
		resolved Resolved
	)
	if exists {
		cfg, err := Load(configPath)
		if err != nil {
			return nil, err
		}
		doc, resolved = cfg.Document, cfg.Resolved
	}

	result := Reconcile(doc, policy, resolved)
	if result.Changed() {
		if err := jsonfile.Write(configPath, result.Document); err != nil {
			return nil, err
		}
	}

	if err := writeDeclarations(project, declarations); err != nil {
		return nil, err
	}
	return result, nil
}

func writeDeclarations(project Project, declarations []byte) error {
	if err := os.MkdirAll(project.SrcDir(), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", project.SrcDir(), err)
	}
	path := filepath.Join(project.SrcDir(), DeclarationsFile)
	content := eject.StripSkipLine(string(declarations))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
