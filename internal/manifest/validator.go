package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// distTag matches npm dist-tags such as "latest" or "next".
var distTag = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// ValidationResult contains the outcome of a validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation problem.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/name", "/dependencies/react")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed, or "semver"
}

// String formats the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw package.json bytes against the schema, then checks that
// the version is strict semver and that every registry range parses.
// The error return is for malformed JSON or schema compilation failures.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var issues []ValidationIssue
	if err := schema.Validate(inst); err != nil {
		var validationErr *jsonschema.ValidationError
		if !errors.As(err, &validationErr) {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = append(issues, extractIssues(validationErr)...)
	}

	// Semver checks only make sense on a structurally valid document.
	if len(issues) == 0 {
		var m PackageManifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding manifest: %w", err)
		}
		issues = append(issues, semverIssues(&m)...)
	}

	return &ValidationResult{
		Valid:  len(issues) == 0,
		Issues: issues,
	}, nil
}

// ValidateFile reads a file and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Validate(data)
}

// semverIssues reports a non-semver version and unparsable dependency ranges.
func semverIssues(m *PackageManifest) []ValidationIssue {
	var issues []ValidationIssue

	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		issues = append(issues, ValidationIssue{
			Path:    "/version",
			Message: printer.Sprintf("%q is not a valid semantic version", m.Version),
			Keyword: "semver",
		})
	}

	for _, block := range []struct {
		key  string
		deps Dependencies
	}{
		{"dependencies", m.Dependencies},
		{"optionalDependencies", m.OptionalDependencies},
	} {
		for _, name := range block.deps.Names() {
			spec := block.deps[name]
			if !isRegistryRange(spec) {
				continue
			}
			if _, err := semver.NewConstraint(spec); err != nil {
				issues = append(issues, ValidationIssue{
					Path:    "/" + block.key + "/" + name,
					Message: printer.Sprintf("invalid version range %q: %v", spec, err),
					Keyword: "semver",
				})
			}
		}
	}

	return issues
}

// isRegistryRange reports whether spec is a semver range rather than a
// dist-tag, a URL/protocol spec or a GitHub shorthand.
func isRegistryRange(spec string) bool {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "", spec == "*":
		return false
	case strings.Contains(spec, ":"), strings.Contains(spec, "/"):
		return false
	case distTag.MatchString(spec) && !strings.ContainsAny(spec, "0123456789"):
		return false
	}
	return true
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "anyOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
