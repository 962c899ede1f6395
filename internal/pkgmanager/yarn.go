package pkgmanager

import "context"

// Yarn drives the yarn classic client.
type Yarn struct {
	Stdio Stdio
}

func (y *Yarn) Name() string { return NameYarn }

// Add runs `yarn add <pkgs>`.
func (y *Yarn) Add(ctx context.Context, dir string, pkgs ...string) error {
	args := append([]string{"add"}, pkgs...)
	return run(ctx, y.Stdio, dir, NameYarn, args...)
}

// Install runs a bare `yarn`.
func (y *Yarn) Install(ctx context.Context, dir string) error {
	return run(ctx, y.Stdio, dir, NameYarn)
}

func (y *Yarn) RunCommand(script string) string {
	return "yarn " + script
}
