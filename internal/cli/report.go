package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ejectkit/create-app/internal/manifest"
	"github.com/ejectkit/create-app/internal/pkgmanager"
	"github.com/ejectkit/create-app/internal/platform"
	"github.com/ejectkit/create-app/internal/scaffold"
	"github.com/ejectkit/create-app/internal/tsconfig"
	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()

	printer = message.NewPrinter(language.English)
)

// reportError prints err with a remediation hint for the error kinds a user
// can act on.
func reportError(w io.Writer, err error) {
	var (
		conflict    *scaffold.ConflictError
		missing     *tsconfig.MissingCompilerError
		parse       *tsconfig.ParseError
		name        *manifest.NameError
		unsupported *platform.UnsupportedError
	)

	switch {
	case errors.As(err, &conflict):
		fmt.Fprintf(w, "The directory %s contains files that could conflict:\n\n", green(filepath.Base(conflict.Dir)))
		for _, f := range conflict.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Either try using a new directory name, or remove the files listed above.")

	case errors.As(err, &missing):
		fmt.Fprintln(w, red("We detected a TypeScript project but couldn't find an installation of "+bold("typescript")+"."))
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Please install %s by running %s.", cyan("typescript"), cyan(missing.Commands()[0]))))
		fmt.Fprintf(w, "With the other package manager run %s instead.\n", cyan(missing.Commands()[1]))
		fmt.Fprintf(w, "If you are not trying to use TypeScript, please remove the %s file from your package root.\n", cyan(tsconfig.FileName))

	case errors.As(err, &parse):
		fmt.Fprintln(w, red(bold(fmt.Sprintf("Could not parse %s. Please make sure it contains syntactically correct JSON.", cyan(tsconfig.FileName)))))
		fmt.Fprintf(w, "Details: %v\n", parse.Err)

	case errors.As(err, &name):
		fmt.Fprintf(w, "Cannot create a project named %s because of npm naming restrictions:\n\n", red(fmt.Sprintf("%q", name.Name)))
		for _, p := range name.Problems {
			fmt.Fprintf(w, "  %s %s\n", red("*"), p)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Please choose a different project name.")

	case errors.As(err, &unsupported):
		fmt.Fprintln(w, red(fmt.Sprintf("  %s", unsupported.Error())))

	default:
		fmt.Fprintf(w, "%s %v\n", red("Error:"), err)
	}
}

// reportSuccess prints the tsconfig corrections, manifest warnings and next
// steps for a finished project. dir is the project directory as given on the
// command line; the base name is used when it is empty.
func reportSuccess(w io.Writer, res *scaffold.Result, manager pkgmanager.Manager, dir string) {
	if ts := res.TypeScript; ts != nil && ts.Changed() {
		if ts.FirstTimeSetup {
			fmt.Fprintln(w, bold("Your "+cyan(tsconfig.FileName)+" has been populated with default values."))
			fmt.Fprintln(w)
		} else {
			fmt.Fprintln(w, bold("The following changes are being made to your "+cyan(tsconfig.FileName)+" file:"))
			for _, change := range ts.Changes {
				fmt.Fprintf(w, "  - %s\n", change)
			}
			fmt.Fprintln(w)
		}
	}

	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "%s %s: %s\n", yellow("Warning:"), manifest.FileName, warning)
	}

	printer.Fprintf(w, "Success! Created %s at %s with %d dependencies and %d ejected files.\n",
		res.AppName, res.AppPath, len(res.Dependencies), len(res.Ejected.Files))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w)
	if dir == "" {
		dir = res.AppName
	}
	fmt.Fprintf(w, "  %s %s\n", cyan("cd"), dir)
	fmt.Fprintf(w, "  %s\n", cyan(manager.RunCommand("start")))
	fmt.Fprintln(w)
}
