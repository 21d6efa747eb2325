package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from bigo.yml.
type ProjectConfig struct {
	Languages   []string `yaml:"languages,omitempty"`
	ExcludeDirs []string `yaml:"excludeDirs,omitempty"`
	StorePath   string   `yaml:"storePath,omitempty"`
	Verbose     bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read bigo.yml or bigo.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"bigo.yml", "bigo.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
