// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution string    `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Datasets    []Dataset `yaml:"datasets" json:"datasets"`
}

// Dataset describes one OSM extract known to the tools: where its JSON
// source lives and how it should be served or rendered.
type Dataset struct {
	Name        string   `yaml:"name" json:"name"`
	Source      string   `yaml:"source" json:"-"`
	Attribution string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Aliases     []string `yaml:"aliases,omitempty" json:"-"`
	RenderSize  int      `yaml:"render_size,omitempty" json:"-"`

	// Recompute the exact bounds after parsing instead of trusting the
	// values declared by the source envelope.
	ExactBounds bool `yaml:"exact_bounds,omitempty" json:"exact_bounds,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
