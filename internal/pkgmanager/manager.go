package pkgmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Supported package manager identifiers.
const (
	NameNpm  = "npm"
	NameYarn = "yarn"
)

// Manager installs packages into a project directory.
type Manager interface {
	// Name returns the executable name ("npm" or "yarn").
	Name() string
	// Add installs pkgs and records them as dependencies in dir/package.json.
	Add(ctx context.Context, dir string, pkgs ...string) error
	// Install installs everything listed in dir/package.json.
	Install(ctx context.Context, dir string) error
	// RunCommand returns the command line that runs a package.json script.
	RunCommand(script string) string
}

// Stdio is the terminal a child process inherits. Zero fields default to the
// process's own streams.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Dispatch returns the Manager for name. Unknown names yield a Manager whose
// operations fail.
func Dispatch(name string, stdio Stdio) Manager {
	switch name {
	case NameNpm:
		return &Npm{Stdio: stdio}
	case NameYarn:
		return &Yarn{Stdio: stdio}
	default:
		return &unknownManager{name: name}
	}
}

// Detect returns yarn when `yarn --version` succeeds and npm otherwise.
func Detect(ctx context.Context, stdio Stdio) Manager {
	cmd := exec.CommandContext(ctx, NameYarn, "--version")
	if err := cmd.Run(); err == nil {
		return &Yarn{Stdio: stdio}
	}
	return &Npm{Stdio: stdio}
}

// run executes bin in dir with stdio attached. A non-zero exit status is not
// reported: the package manager prints its own diagnostics and the scaffold
// carries on. A failure to start the process or a cancelled ctx is an error.
func run(ctx context.Context, stdio Stdio, dir, bin string, args ...string) error {
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("%s is required to install dependencies: %w", bin, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if stdio.Stdin != nil {
		cmd.Stdin = stdio.Stdin
	}
	if stdio.Stdout != nil {
		cmd.Stdout = stdio.Stdout
	}
	if stdio.Stderr != nil {
		cmd.Stderr = stdio.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("running %s: %w", bin, ctxErr)
			}
			return nil
		}
		return fmt.Errorf("running %s: %w", bin, err)
	}
	return nil
}

// unknownManager is returned when the package manager name is not recognized.
type unknownManager struct {
	name string
}

func (u *unknownManager) Name() string { return u.name }

func (u *unknownManager) Add(_ context.Context, _ string, _ ...string) error {
	return u.err()
}

func (u *unknownManager) Install(_ context.Context, _ string) error {
	return u.err()
}

func (u *unknownManager) RunCommand(script string) string {
	return u.name + " " + script
}

func (u *unknownManager) err() error {
	return fmt.Errorf("unknown package manager %q: supported package managers are %q and %q", u.name, NameNpm, NameYarn)
}
