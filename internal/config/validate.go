package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	switch cfg.Storage.Driver {
	case "sqlite", "":
	case "postgres":
		if cfg.Storage.PostgresDSN == "" {
			errs = append(errs, "storage.postgres_dsn is required when storage.driver=postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("storage.driver %q is not supported", cfg.Storage.Driver))
	}
	if cfg.RateLimit.PerSecond < 0 || cfg.RateLimit.Burst < 0 {
		errs = append(errs, "rate_limit values must be >= 0")
	}

	seen := map[int64]bool{}
	for i, m := range cfg.Modules {
		if m.ID <= 0 {
			errs = append(errs, fmt.Sprintf("modules[%d].id must be > 0", i))
		}
		if seen[m.ID] {
			errs = append(errs, fmt.Sprintf("modules[%d].id %d is duplicated", i, m.ID))
		}
		seen[m.ID] = true
		if m.Method != "" && m.Method != "GET" && m.Method != "POST" {
			errs = append(errs, fmt.Sprintf("modules[%d].method must be GET or POST", i))
		}
		if m.JumpTo != 0 {
			if _, ok := cfg.Pages[m.JumpTo]; !ok {
				errs = append(errs, fmt.Sprintf("modules[%d].jump_to references unknown page %d", i, m.JumpTo))
			}
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// SaveAtomic validates cfg and replaces path via tmp+rename, keeping a .bak.
// A sibling .lock file serializes concurrent writers.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lk := flock.New(path + ".lock")
	if err := lk.Lock(); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer func() { _ = lk.Unlock() }()

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
