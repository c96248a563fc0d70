package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the dedicated configuration file name searched for by
// TomlConfigLoader.
const ConfigFileName = ".bharc.toml"

// TomlConfigLoader loads Config from a .bharc.toml file, falling back to
// Default() when none is found.
type TomlConfigLoader struct{}

// NewTomlConfigLoader returns a ready-to-use loader.
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration starting from path, which may be either a
// direct file path or a directory to search (walking up to the filesystem
// root looking for .bharc.toml). Returns Default() if no config file is
// found anywhere in the search path.
func (l *TomlConfigLoader) LoadConfig(path string) (*Config, error) {
	if path != "" {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return l.loadFromFile(path)
		}
	}

	searchDir := path
	if searchDir == "" {
		searchDir = "."
	}

	configPath, err := l.findConfigFile(searchDir)
	if err != nil {
		return Default(), nil
	}

	return l.loadFromFile(configPath)
}

func (l *TomlConfigLoader) loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", filePath, err)
	}

	return cfg, nil
}

// findConfigFile walks up the directory tree from startDir looking for
// ConfigFileName.
func (l *TomlConfigLoader) findConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// Save renders cfg to TOML and writes it to path.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}
