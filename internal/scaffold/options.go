package scaffold

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ejectkit/create-app/internal/pkgmanager"
	"github.com/ejectkit/create-app/internal/tsconfig"
)

// RuntimeDependencies are installed into every new project before the
// template is copied.
var RuntimeDependencies = []string{"react", "react-dom"}

// allowedEntries may already exist in the target directory.
var allowedEntries = []string{".git", ".gitignore"}

// Options describes one scaffold run. It is passed by value and never
// modified after construction.
type Options struct {
	// AppName is the package name, the base name of AppPath.
	AppName string
	// AppPath is the absolute project directory.
	AppPath string
	// Template is copied verbatim into AppPath.
	Template fs.FS
	// Own holds package.json and the folders ejected into AppPath.
	Own fs.FS
	// Manager installs dependencies.
	Manager pkgmanager.Manager
	// Policy is enforced on tsconfig.json. Nil means tsconfig.DefaultPolicy.
	Policy tsconfig.Policy
	// Out receives progress messages. Nil discards them.
	Out io.Writer
}

// NewOptions resolves dir to an absolute path and derives the package name
// from its base name.
func NewOptions(dir string, template, own fs.FS, manager pkgmanager.Manager, out io.Writer) (Options, error) {
	appPath, err := filepath.Abs(dir)
	if err != nil {
		return Options{}, fmt.Errorf("resolving %s: %w", dir, err)
	}
	return Options{
		AppName:  filepath.Base(appPath),
		AppPath:  appPath,
		Template: template,
		Own:      own,
		Manager:  manager,
		Out:      out,
	}, nil
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return io.Discard
	}
	return o.Out
}

func (o Options) policy() (tsconfig.Policy, error) {
	if o.Policy != nil {
		return o.Policy, nil
	}
	return tsconfig.DefaultPolicy()
}

// ConflictError reports files in the target directory that the scaffold
// could overwrite.
type ConflictError struct {
	Dir   string
	Files []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("the directory %s contains files that could conflict: %s", e.Dir, strings.Join(e.Files, ", "))
}

// CheckSafe returns a *ConflictError when dir holds anything besides .git and
// .gitignore.
func CheckSafe(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	var conflicts []string
	for _, entry := range entries {
		if !slices.Contains(allowedEntries, entry.Name()) {
			conflicts = append(conflicts, entry.Name())
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{Dir: dir, Files: conflicts}
	}
	return nil
}
