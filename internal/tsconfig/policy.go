package tsconfig

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed policy.yaml
var policyData []byte

// Mode says how strictly an option is enforced.
type Mode string

const (
	// Required options are overwritten whenever the effective value differs.
	Required Mode = "required"
	// Suggested options are only set when no value is configured at all.
	Suggested Mode = "suggested"
)

// OptionPolicy is one row of the compiler option table.
type OptionPolicy struct {
	Name   string `yaml:"name"`
	Mode   Mode   `yaml:"mode"`
	Value  any    `yaml:"value"`
	Reason string `yaml:"reason,omitempty"`
}

// Policy is the ordered compiler option table.
type Policy []OptionPolicy

type policyFile struct {
	Options Policy `yaml:"options"`
}

var (
	defaultPolicy Policy
	policyOnce    sync.Once
	policyErr     error
)

// DefaultPolicy returns the embedded option table. The table is parsed once;
// callers receive a copy.
func DefaultPolicy() (Policy, error) {
	policyOnce.Do(func() {
		defaultPolicy, policyErr = ParsePolicy(policyData)
	})
	if policyErr != nil {
		return nil, policyErr
	}
	return slices.Clone(defaultPolicy), nil
}

// ParsePolicy decodes a YAML option table.
func ParsePolicy(data []byte) (Policy, error) {
	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing compiler option policy: %w", err)
	}
	if err := f.Options.validate(); err != nil {
		return nil, err
	}
	return f.Options, nil
}

func (p Policy) validate() error {
	seen := make(map[string]bool, len(p))
	for i, o := range p {
		if o.Name == "" {
			return fmt.Errorf("policy entry %d: missing name", i)
		}
		if seen[o.Name] {
			return fmt.Errorf("policy entry %q: duplicate option", o.Name)
		}
		seen[o.Name] = true

		if o.Mode != Required && o.Mode != Suggested {
			return fmt.Errorf("policy entry %q: mode must be %q or %q, got %q", o.Name, Required, Suggested, o.Mode)
		}
		switch o.Value.(type) {
		case string, bool, int, float64:
		default:
			return fmt.Errorf("policy entry %q: value must be a string, boolean or number, got %T", o.Name, o.Value)
		}
	}
	return nil
}
