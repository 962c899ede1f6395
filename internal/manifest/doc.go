// Package manifest models the generated project's package.json. It merges the
// installed dependencies with the ejected tooling's own dependencies, applies
// the fixed scripts/babel/eslint policy, and validates the result against an
// embedded JSON Schema plus semver checks on versions and ranges.
package manifest
