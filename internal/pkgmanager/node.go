package pkgmanager

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinNodeVersion is the oldest Node.js release the ejected scripts run on.
const MinNodeVersion = ">=10.0.0"

// Tool describes an executable found on PATH.
type Tool struct {
	Name    string
	Path    string
	Version *semver.Version
}

// LookupTool finds bin on PATH and parses the output of `bin --version`.
func LookupTool(ctx context.Context, bin string) (*Tool, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", bin, err)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s --version: %w", bin, err)
	}

	v, err := parseSemver(strings.TrimSpace(out.String()))
	if err != nil {
		return nil, fmt.Errorf("parsing %s version: %w", bin, err)
	}
	return &Tool{Name: bin, Path: path, Version: v}, nil
}

// CheckNodeVersion reports an error when version does not satisfy
// MinNodeVersion.
func CheckNodeVersion(version string) error {
	return checkVersion(version, MinNodeVersion)
}

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

func checkVersion(version, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := parseSemver(version)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("version %s does not satisfy %s", v, constraint)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
