package eject

import (
	"regexp"
	"strings"
)

// Markers recognised in ejected sources.
const (
	BeginMarker = "// @remove-on-eject-begin"
	EndMarker   = "// @remove-on-eject-end"
	SkipMarker  = "// @remove-file-on-eject"
)

var (
	// Lazy match so a region ends at the nearest end marker.
	regionPattern   = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(BeginMarker) + `.*?` + regexp.QuoteMeta(EndMarker))
	skipLinePattern = regexp.MustCompile(regexp.QuoteMeta(SkipMarker) + `\r?\n`)
)

// Strip removes every sentinel region, markers included. Content with no
// well-formed begin/end pair is returned unchanged.
func Strip(content string) string {
	if !strings.Contains(content, BeginMarker) {
		return content
	}
	return regionPattern.ReplaceAllString(content, "")
}

// ShouldSkip reports whether the file must be omitted from the ejected output.
func ShouldSkip(content string) bool {
	return strings.Contains(content, SkipMarker)
}

// StripSkipLine removes the first skip-marker line, including its line
// terminator. It is used for files that are copied despite carrying the marker.
func StripSkipLine(content string) string {
	loc := skipLinePattern.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + content[loc[1]:]
}
