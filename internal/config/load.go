package config

import (
	"fmt"
	"os"
)

// Load reads, parses, normalizes, and validates a config file. Relative
// paths in the returned config are resolved against the repo root.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	root := RepoRootFromConfigPath(path)
	if err := Validate(&cfg, root); err != nil {
		return Config{}, err
	}
	ResolvePaths(&cfg, root)
	return cfg, nil
}
