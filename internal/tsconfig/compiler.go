package tsconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

const (
	compilerPackage = "typescript"
	yarnLockFile    = "yarn.lock"
)

// Compiler is an installed typescript package.
type Compiler struct {
	Dir     string
	Version *semver.Version
}

// FindCompiler resolves the typescript package from root's node_modules,
// walking up through parent directories the way Node's resolver does.
func FindCompiler(root string) (*Compiler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	for dir := abs; ; dir = filepath.Dir(dir) {
		pkgDir := filepath.Join(dir, "node_modules", compilerPackage)
		data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
		if err == nil {
			var pkg struct {
				Version string `json:"version"`
			}
			if err := json.Unmarshal(data, &pkg); err != nil {
				return nil, fmt.Errorf("reading %s version: %w", compilerPackage, err)
			}
			v, err := semver.NewVersion(pkg.Version)
			if err != nil {
				return nil, fmt.Errorf("parsing %s version %q: %w", compilerPackage, pkg.Version, err)
			}
			return &Compiler{Dir: pkgDir, Version: v}, nil
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}

	return nil, &MissingCompilerError{Root: root, UseYarn: usesYarn(abs)}
}

func usesYarn(root string) bool {
	_, err := os.Stat(filepath.Join(root, yarnLockFile))
	return err == nil
}
