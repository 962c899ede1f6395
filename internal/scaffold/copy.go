package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ejectkit/create-app/internal/manifest"
	"github.com/ejectkit/create-app/internal/platform"
)

const (
	templateGitignore = "gitignore"
	gitignore         = ".gitignore"
)

// excludedNames are never copied from a template tree.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// copyTemplate copies src into dst, overwriting existing files. The root
// package.json is not copied; its dependencies are merged by the caller.
// It returns the copied files, slash-separated and relative to dst.
func copyTemplate(src fs.FS, dst string) ([]string, error) {
	var files []string

	err := fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if name != "." && excludedNames[d.Name()] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if name == manifest.FileName {
			return nil
		}

		target := filepath.Join(dst, filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		// Skip symlinks and other special files during copy.
		if !d.Type().IsRegular() {
			return nil
		}

		if err := copyFile(src, name, target); err != nil {
			return err
		}
		files = append(files, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copying template: %w", err)
	}
	return files, nil
}

// copyFile copies a single file from src to dst, preserving the execute bits.
func copyFile(src fs.FS, name, dst string) error {
	data, err := fs.ReadFile(src, name)
	if err != nil {
		return err
	}
	info, err := fs.Stat(src, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return err
	}
	return platform.Chmod(dst, platform.CopyPerm(info.Mode()))
}

// templateManifest reads the template's own package.json, if it has one.
func templateManifest(src fs.FS) (*manifest.PackageManifest, error) {
	if _, err := fs.Stat(src, manifest.FileName); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return manifest.ReadFS(src, manifest.FileName)
}

// mergeGitignore renames the template's gitignore to .gitignore. When the
// project already has a .gitignore the template rules are appended to it
// instead. It reports whether a template gitignore was present.
func mergeGitignore(appPath string) (bool, error) {
	from := filepath.Join(appPath, templateGitignore)
	to := filepath.Join(appPath, gitignore)

	if _, err := os.Stat(from); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", from, err)
	}

	_, err := os.Stat(to)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.Rename(from, to); err != nil {
			return false, fmt.Errorf("renaming %s: %w", from, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("checking %s: %w", to, err)
	}

	if err := appendFile(to, from); err != nil {
		return false, err
	}
	if err := os.Remove(from); err != nil {
		return false, fmt.Errorf("removing %s: %w", from, err)
	}
	return true, nil
}

// appendFile appends the content of src to dst, separated by a newline when
// dst does not already end with one.
func appendFile(dst, src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	existing, err := os.ReadFile(dst)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dst, err)
	}

	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		data = append([]byte("\n"), data...)
	}

	f, err := os.OpenFile(dst, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", dst, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing to %s: %w", dst, err)
	}
	return nil
}
