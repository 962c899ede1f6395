// Package tsconfig keeps a project's tsconfig.json in line with the options
// the bundled build tooling depends on. Required options are forced to their
// value, suggested options are filled in only when the user has not set them,
// and include/exclude get defaults when neither the file nor anything it
// extends declares them.
//
// Reconcile is pure. Load reads a tsconfig.json (JSON with comments) and
// follows its extends chain to compute the effective option set. Verify glues
// the two together for a project directory and writes the results.
package tsconfig
