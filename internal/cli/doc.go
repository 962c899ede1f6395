// Package cli defines the Cobra command tree for the create-app CLI. The root
// command scaffolds a project; config and doctor are registered as
// subcommands from their own files. Commands delegate to internal packages
// and only handle flag parsing, settings resolution and output.
package cli
