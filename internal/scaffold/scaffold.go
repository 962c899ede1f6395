package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ejectkit/create-app/internal/eject"
	"github.com/ejectkit/create-app/internal/manifest"
	"github.com/ejectkit/create-app/internal/platform"
	"github.com/ejectkit/create-app/internal/tsconfig"
	"github.com/fatih/color"
)

// ownManifest and ownDeclarations are read from the Own tree.
var (
	ownManifest     = manifest.FileName
	ownDeclarations = path.Join("config", tsconfig.DeclarationsFile)
)

var (
	cyan  = color.New(color.FgCyan).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// Result holds the outcome of a scaffold run.
type Result struct {
	AppName string
	AppPath string
	// TemplateFiles are the files copied from the template tree.
	TemplateFiles []string
	// Ejected lists the config/ and scripts/ files written and skipped.
	Ejected *eject.Result
	// Dependencies are the dependency names of the final package.json, sorted.
	Dependencies []string
	// Warnings are package.json validation issues; they do not fail the run.
	Warnings []string
	// TypeScript is nil for JavaScript projects.
	TypeScript *tsconfig.Result
}

// Create makes the project directory, writes the initial package.json,
// installs the runtime dependencies and then runs Init. Nothing is written
// when the platform is unsupported, the name is invalid or the directory
// holds conflicting files.
func Create(ctx context.Context, opts Options) (*Result, error) {
	if err := platform.CheckSupported(); err != nil {
		return nil, err
	}
	if err := manifest.ValidateName(opts.AppName, RuntimeDependencies); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.AppPath, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", opts.AppPath, err)
	}
	if err := CheckSafe(opts.AppPath); err != nil {
		return nil, err
	}

	out := opts.out()
	fmt.Fprintf(out, "Creating a new React app in %s.\n\n", green(opts.AppPath))

	pkgPath := filepath.Join(opts.AppPath, manifest.FileName)
	if err := manifest.WriteFile(pkgPath, manifest.New(opts.AppName)); err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Installing %s using %s...\n\n", cyan(strings.Join(RuntimeDependencies, ", ")), opts.Manager.Name())
	if err := opts.Manager.Add(ctx, opts.AppPath, RuntimeDependencies...); err != nil {
		return nil, fmt.Errorf("installing %s: %w", strings.Join(RuntimeDependencies, ", "), err)
	}

	return Init(ctx, opts)
}

// Init turns a directory holding an installed package.json into a runnable
// project. Steps run in order; a failure leaves earlier steps in place.
func Init(ctx context.Context, opts Options) (*Result, error) {
	out := opts.out()
	res := &Result{AppName: opts.AppName, AppPath: opts.AppPath}

	pkgPath := filepath.Join(opts.AppPath, manifest.FileName)
	app, err := manifest.ReadFile(pkgPath)
	if err != nil {
		return nil, err
	}

	// Dependencies installed so far win over template-declared ones.
	tmplPkg, err := templateManifest(opts.Template)
	if err != nil {
		return nil, err
	}
	if tmplPkg != nil {
		app.Dependencies = manifest.MergeDependencies(tmplPkg.Dependencies, app.Dependencies, nil)
	}

	fmt.Fprintf(out, "Copying template into %s\n", green(opts.AppPath))
	res.TemplateFiles, err = copyTemplate(opts.Template, opts.AppPath)
	if err != nil {
		return nil, err
	}
	if _, err := mergeGitignore(opts.AppPath); err != nil {
		return nil, err
	}

	res.Ejected, err = eject.Folders(opts.Own, eject.DefaultFolders, opts.AppPath)
	if err != nil {
		return nil, fmt.Errorf("ejecting build tooling: %w", err)
	}
	for _, f := range res.Ejected.Files {
		fmt.Fprintf(out, "  Adding %s\n", cyan("/"+f))
	}
	fmt.Fprintln(out)

	own, err := manifest.ReadFS(opts.Own, ownManifest)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, cyan("Updating the dependencies and scripts"))
	app.Dependencies = manifest.MergeDependencies(app.Dependencies, own.Dependencies, own.OptionalDependencies)
	manifest.ApplyFixedPolicy(app)
	if err := manifest.WriteFile(pkgPath, app); err != nil {
		return nil, err
	}
	res.Dependencies = app.Dependencies.Names()

	validation, err := manifest.ValidateFile(pkgPath)
	if err != nil {
		return nil, err
	}
	for _, issue := range validation.Issues {
		res.Warnings = append(res.Warnings, issue.String())
	}

	fmt.Fprintf(out, "Installing dependencies using %s...\n\n", opts.Manager.Name())
	if err := opts.Manager.Install(ctx, opts.AppPath); err != nil {
		return nil, fmt.Errorf("installing dependencies: %w", err)
	}

	policy, err := opts.policy()
	if err != nil {
		return nil, err
	}
	declarations, err := fs.ReadFile(opts.Own, ownDeclarations)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", ownDeclarations, err)
	}
	res.TypeScript, err = tsconfig.Verify(tsconfig.Project{Root: opts.AppPath}, policy, declarations)
	if err != nil {
		return nil, err
	}

	return res, nil
}
