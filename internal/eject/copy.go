package eject

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/ejectkit/create-app/internal/platform"
)

// DefaultFolders are the folders ejected into every new project.
var DefaultFolders = []string{"config", "scripts"}

// Result holds the outcome of an eject pass.
type Result struct {
	// Files are the written files, slash-separated and relative to the
	// destination root (e.g. "config/paths.js").
	Files []string
	// Skipped are source files left out because they carry SkipMarker.
	Skipped []string
}

// Folders copies the top-level regular files of each folder in src into the
// same folder under dst. Sub-directories are not descended. Skip-marked files
// are omitted and sentinel regions are stripped from the rest.
func Folders(src fs.FS, folders []string, dst string) (*Result, error) {
	result := &Result{}

	for _, folder := range folders {
		entries, err := fs.ReadDir(src, folder)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", folder, err)
		}

		outDir := filepath.Join(dst, filepath.FromSlash(folder))
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", outDir, err)
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}

			rel := path.Join(folder, entry.Name())
			written, err := ejectFile(src, rel, filepath.Join(outDir, entry.Name()))
			if err != nil {
				return nil, err
			}
			if written {
				result.Files = append(result.Files, rel)
			} else {
				result.Skipped = append(result.Skipped, rel)
			}
		}
	}

	return result, nil
}

// ejectFile writes one source file to dst. It returns false when the file is
// skip-marked and nothing was written.
func ejectFile(src fs.FS, name, dst string) (bool, error) {
	data, err := fs.ReadFile(src, name)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}

	content := string(data)
	if ShouldSkip(content) {
		return false, nil
	}
	content = Strip(content)

	info, err := fs.Stat(src, name)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}

	if err := os.WriteFile(dst, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := platform.Chmod(dst, platform.CopyPerm(info.Mode())); err != nil {
		return false, fmt.Errorf("setting permissions on %s: %w", dst, err)
	}
	return true, nil
}
