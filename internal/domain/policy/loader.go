package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML policy file on top of Default, so a file may override any subset of fields.
// An empty path returns the defaults.
func Load(path string) (Policy, error) {
	if path == "" {
		return Default(), nil
	}

	// #nosec G304 -- path comes from operator-configured POLICY_FILE.
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML policy bytes on top of Default and validates the result.
func Parse(data []byte) (Policy, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
