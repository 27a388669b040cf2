package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Default is the config written when no bundled config.yml ships with the
// binary: one filter module showing both option lists with counts.
func Default() Config {
	var cfg Config
	cfg.App.Locales = []string{"en", "de"}
	cfg.Modules = []Module{{
		ID:                   1,
		ShowTypes:            true,
		ShowLocations:        true,
		ShowButton:           true,
		ShowQuantity:         true,
		ShowLocationQuantity: true,
		SubmitLabel:          "Filter",
	}}
	applyDefaults(&cfg)
	return cfg
}

// EnsureUserConfig makes sure dataDir holds a config.yml and returns its path.
// An existing file is left alone. Otherwise the bundled defaultPath is loaded,
// validated and saved there, falling back to Default when it is missing.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	cfg, err := Load(defaultPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return "", fmt.Errorf("bundled config %s: %w", defaultPath, err)
	}

	if err := SaveAtomic(userPath, cfg); err != nil {
		return "", fmt.Errorf("install config: %w", err)
	}
	return userPath, nil
}
