package manifest

import "maps"

// MergeDependencies combines the project's dependencies with the ejected
// tooling's own dependencies. Own entries override template entries, except
// names listed in ownOptional, which are never copied from ownDeps. Nil
// mappings are treated as empty and the inputs are not modified.
func MergeDependencies(templateDeps, ownDeps, ownOptional Dependencies) Dependencies {
	merged := make(Dependencies, len(templateDeps)+len(ownDeps))
	maps.Copy(merged, templateDeps)

	for name, version := range ownDeps {
		if _, optional := ownOptional[name]; optional {
			continue
		}
		merged[name] = version
	}
	return merged
}
