package pkgmanager

import "context"

// Npm drives the npm client.
type Npm struct {
	Stdio Stdio
}

func (n *Npm) Name() string { return NameNpm }

// Add runs `npm install --save <pkgs>`.
func (n *Npm) Add(ctx context.Context, dir string, pkgs ...string) error {
	args := append([]string{"install", "--save"}, pkgs...)
	return run(ctx, n.Stdio, dir, NameNpm, args...)
}

// Install runs `npm install --loglevel error`.
func (n *Npm) Install(ctx context.Context, dir string) error {
	return run(ctx, n.Stdio, dir, NameNpm, "install", "--loglevel", "error")
}

// RunCommand returns "npm start" for start and "npm run <script>" otherwise.
func (n *Npm) RunCommand(script string) string {
	switch script {
	case "start", "test":
		return "npm " + script
	}
	return "npm run " + script
}
