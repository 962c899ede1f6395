// Package scaffold creates a new project directory: it writes a minimal
// package.json, installs react and react-dom, copies the template tree, ejects
// the build tooling's config/ and scripts/ folders, merges the tooling's
// dependencies into package.json and reconciles tsconfig.json for TypeScript
// projects.
//
// Every step receives an immutable Options value; nothing depends on the
// process working directory.
package scaffold
