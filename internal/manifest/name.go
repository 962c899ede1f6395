package manifest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

const maxNameLength = 214

var (
	namePattern   = regexp.MustCompile(`^(?:@[a-z0-9-*~][a-z0-9-*._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)
	reservedNames = []string{"node_modules", "favicon.ico"}
)

// NameError lists every npm naming rule a project name breaks.
type NameError struct {
	Name     string
	Problems []string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("cannot create a project named %q: %s", e.Name, strings.Join(e.Problems, "; "))
}

// ValidateName checks name against npm package naming rules. A name equal to
// one of the dependencies about to be installed is rejected too, since npm
// refuses to install a package into a project of the same name.
func ValidateName(name string, dependencies []string) error {
	var problems []string

	switch {
	case name == "":
		problems = append(problems, "name must not be empty")
	case strings.TrimSpace(name) != name:
		problems = append(problems, "name cannot contain leading or trailing spaces")
	}
	if strings.HasPrefix(name, ".") {
		problems = append(problems, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		problems = append(problems, "name cannot start with an underscore")
	}
	if len(name) > maxNameLength {
		problems = append(problems, fmt.Sprintf("name can no longer contain more than %d characters", maxNameLength))
	}
	if strings.ToLower(name) != name {
		problems = append(problems, "name can no longer contain capital letters")
	}
	if slices.Contains(reservedNames, strings.ToLower(name)) {
		problems = append(problems, fmt.Sprintf("%s is a blacklisted name", name))
	}
	if name != "" && !namePattern.MatchString(strings.ToLower(name)) {
		problems = append(problems, "name can only contain URL-friendly characters")
	}
	if slices.Contains(dependencies, name) {
		problems = append(problems, "a dependency with the same name exists")
	}

	if len(problems) > 0 {
		return &NameError{Name: name, Problems: problems}
	}
	return nil
}
