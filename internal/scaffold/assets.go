package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed assets
var assetsFS embed.FS

// DefaultTemplate returns the embedded template tree copied into every new
// project.
func DefaultTemplate() fs.FS {
	return mustSub("assets/template")
}

// DefaultOwn returns the embedded build tooling tree: its package.json and
// the config/ and scripts/ folders that are ejected into the project.
func DefaultOwn() fs.FS {
	return mustSub("assets/own")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(assetsFS, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
