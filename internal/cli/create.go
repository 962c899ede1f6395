package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ejectkit/create-app/internal/config"
	"github.com/ejectkit/create-app/internal/pkgmanager"
	"github.com/ejectkit/create-app/internal/scaffold"
	"github.com/spf13/cobra"
)

func runCreate(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := checkReserved(cmd.Root(), filepath.Base(filepath.Clean(dir))); err != nil {
		return err
	}

	settings := config.Current()
	if useNpm {
		settings.PackageManager = pkgmanager.NameNpm
	}
	if templateDir != "" {
		settings.TemplateDir = templateDir
	}
	if scriptsDir != "" {
		settings.ScriptsDir = scriptsDir
	}

	template, err := sourceTree(settings.TemplateDir, scaffold.DefaultTemplate)
	if err != nil {
		return err
	}
	own, err := sourceTree(settings.ScriptsDir, scaffold.DefaultOwn)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stdio := pkgmanager.Stdio{Stdin: cmd.InOrStdin(), Stdout: out, Stderr: cmd.ErrOrStderr()}
	manager := resolveManager(cmd, settings.PackageManager, stdio)

	opts, err := scaffold.NewOptions(dir, template, own, manager, out)
	if err != nil {
		return err
	}

	res, err := scaffold.Create(cmd.Context(), opts)
	if err != nil {
		return err
	}

	reportSuccess(out, res, manager, dir)
	return nil
}

// checkReserved rejects project names that collide with a subcommand.
func checkReserved(root *cobra.Command, name string) error {
	var reserved []string
	for _, c := range root.Commands() {
		reserved = append(reserved, c.Name())
		reserved = append(reserved, c.Aliases...)
	}
	if slices.Contains(reserved, name) {
		return fmt.Errorf("cannot create a project named %q: the name is reserved for the %s subcommand", name, name)
	}
	return nil
}

// resolveManager maps the package_manager setting to a Manager. "auto" (or
// an empty setting) picks yarn when it is installed.
func resolveManager(cmd *cobra.Command, name string, stdio pkgmanager.Stdio) pkgmanager.Manager {
	if name == "" || name == config.PackageManagerAuto {
		return pkgmanager.Detect(cmd.Context(), stdio)
	}
	return pkgmanager.Dispatch(name, stdio)
}

// sourceTree returns the on-disk tree at dir, or the embedded default when
// dir is empty.
func sourceTree(dir string, def func() fs.FS) (fs.FS, error) {
	if dir == "" {
		return def(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source tree: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source tree %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
