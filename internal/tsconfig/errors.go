package tsconfig

import (
	"fmt"
	"strings"
)

// ParseError reports a tsconfig.json (or a file it extends) that could not be
// read, parsed or resolved.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingCompilerError reports a TypeScript project without the typescript
// package installed.
type MissingCompilerError struct {
	Root    string
	UseYarn bool
}

// Commands returns the install commands to suggest, the one matching the
// project's package manager first.
func (e *MissingCompilerError) Commands() []string {
	if e.UseYarn {
		return []string{"yarn add typescript", "npm install typescript"}
	}
	return []string{"npm install typescript", "yarn add typescript"}
}

func (e *MissingCompilerError) Error() string {
	return fmt.Sprintf("found a TypeScript project in %s but could not find an installation of typescript; install it with %s",
		e.Root, strings.Join(e.Commands(), " or "))
}
