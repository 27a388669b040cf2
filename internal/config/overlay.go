// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ModulesFile struct {
	Modules []Module `yaml:"modules"`
}

// OverlayModules replaces cfg.Modules with the modules listed in modulesPath.
func OverlayModules(cfg *Config, modulesPath string) error {
	b, err := os.ReadFile(modulesPath)
	if err != nil {
		// Missing modules file should not kill startup
		return nil
	}

	var mf ModulesFile
	if err := yaml.Unmarshal(b, &mf); err != nil {
		return err
	}

	if len(mf.Modules) > 0 {
		cfg.Modules = mf.Modules
		applyDefaults(cfg)
	}
	return nil
}
