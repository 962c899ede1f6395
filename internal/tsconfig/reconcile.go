package tsconfig

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	keyCompilerOptions = "compilerOptions"
	keyInclude         = "include"
	keyExclude         = "exclude"
	keyExtends         = "extends"
)

// DefaultInclude and DefaultExclude are written when the effective
// configuration declares no include or exclude list.
var (
	DefaultInclude = []string{"src"}
	DefaultExclude = []string{"**/__tests__/**", "**/?*test.*", "**/?*spec.*"}
)

// valueAliases maps spellings the compiler treats as equivalent.
var valueAliases = map[string]string{
	"node10": "node",
}

// Document is a decoded tsconfig.json object.
type Document map[string]any

// CompilerOptions returns the document's compilerOptions object, or nil when
// it is absent or not an object.
func (d Document) CompilerOptions() map[string]any {
	opts, _ := d[keyCompilerOptions].(map[string]any)
	return opts
}

// Resolved is the effective configuration after following extends.
// Include and Exclude are nil when no file in the chain declares them.
type Resolved struct {
	CompilerOptions map[string]any
	Include         any
	Exclude         any
}

// Result is the outcome of a reconciliation.
type Result struct {
	Document       Document
	Changes        []string
	FirstTimeSetup bool
}

// Changed reports whether the document needs to be written back.
func (r *Result) Changed() bool {
	return len(r.Changes) > 0
}

// Reconcile applies policy to doc given the effective configuration resolved
// from it. A nil doc means no tsconfig.json exists yet. The input document is
// not modified.
func Reconcile(doc Document, policy Policy, resolved Resolved) *Result {
	out := cloneDocument(doc)
	res := &Result{Document: out, FirstTimeSetup: doc == nil}

	opts := out.CompilerOptions()
	if opts == nil {
		opts = make(map[string]any)
		out[keyCompilerOptions] = opts
		res.FirstTimeSetup = true
	}

	for _, o := range policy {
		current, set := resolved.CompilerOptions[o.Name]
		if set && current == nil {
			set = false
		}

		switch o.Mode {
		case Suggested:
			if set {
				continue
			}
			opts[o.Name] = o.Value
			res.Changes = append(res.Changes,
				fmt.Sprintf("compilerOptions.%s to be suggested value: %v (this can be changed)", o.Name, o.Value))
		case Required:
			if set && sameValue(current, o.Value) {
				continue
			}
			opts[o.Name] = o.Value
			msg := fmt.Sprintf("compilerOptions.%s must be %v", o.Name, o.Value)
			if o.Reason != "" {
				msg += " (" + o.Reason + ")"
			}
			res.Changes = append(res.Changes, msg)
		}
	}

	if resolved.Include == nil {
		out[keyInclude] = stringsToAny(DefaultInclude)
		res.Changes = append(res.Changes, "include should be src")
	}
	if resolved.Exclude == nil {
		out[keyExclude] = stringsToAny(DefaultExclude)
		res.Changes = append(res.Changes, "exclude should exclude test files")
	}

	return res
}

// sameValue compares an effective option value against a policy value.
// Strings compare case-insensitively since the compiler accepts any casing
// for enum-valued options.
func sameValue(got, want any) bool {
	gs, gok := got.(string)
	ws, wok := want.(string)
	if gok && wok {
		return strings.EqualFold(canonical(gs), canonical(ws))
	}
	if gf, ok := toFloat(got); ok {
		if wf, ok := toFloat(want); ok {
			return gf == wf
		}
	}
	return reflect.DeepEqual(got, want)
}

func canonical(s string) string {
	s = strings.ToLower(s)
	if alias, ok := valueAliases[s]; ok {
		return alias
	}
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// cloneDocument copies doc and its compilerOptions object so the result can
// be mutated freely.
func cloneDocument(doc Document) Document {
	out := make(Document, len(doc)+3)
	maps.Copy(out, doc)
	if opts := doc.CompilerOptions(); opts != nil {
		out[keyCompilerOptions] = maps.Clone(opts)
	}
	return out
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
