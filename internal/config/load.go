package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a manifest file, merging it over Default values.
func Load(path string) (*Manifest, error) {
	m := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("loading manifest from %s: %w", path, err)
	}

	if m.Workers < 1 {
		m.Workers = 1
	}
	return m, nil
}
