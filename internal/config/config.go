// internal/config/config.go
package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrModuleNotFound = errors.New("filter module not found")

// Module is the configuration record of one filter module instance.
type Module struct {
	ID                   int64  `yaml:"id" json:"id"`
	ShowAllTypes         bool   `yaml:"show_all_types" json:"show_all_types"`
	ShowQuantity         bool   `yaml:"show_quantity" json:"show_quantity"`
	ShowLocationQuantity bool   `yaml:"show_location_quantity" json:"show_location_quantity"`
	ShowTypes            bool   `yaml:"show_types" json:"show_types"`
	ShowLocations        bool   `yaml:"show_locations" json:"show_locations"`
	ShowButton           bool   `yaml:"show_button" json:"show_button"`
	TypesHeadline        string `yaml:"types_headline" json:"types_headline"`
	LocationsHeadline    string `yaml:"locations_headline" json:"locations_headline"`
	SubmitLabel          string `yaml:"submit_label" json:"submit_label"`
	JumpTo               int64  `yaml:"jump_to" json:"jump_to"`
	Method               string `yaml:"method" json:"method"` // GET | POST
}

type Config struct {
	App struct {
		Port          int      `yaml:"port" json:"port"`
		DataDir       string   `yaml:"data_dir" json:"data_dir"`
		Locales       []string `yaml:"locales" json:"locales"`
		DefaultLocale string   `yaml:"default_locale" json:"default_locale"`
		Dev           bool     `yaml:"dev" json:"dev"`
	} `yaml:"app" json:"app"`

	Storage struct {
		Driver      string `yaml:"driver" json:"driver"` // sqlite | postgres
		SQLitePath  string `yaml:"sqlite_path" json:"sqlite_path"`
		PostgresDSN string `yaml:"postgres_dsn" json:"postgres_dsn"`
	} `yaml:"storage" json:"storage"`

	RateLimit struct {
		PerSecond float64 `yaml:"per_second" json:"per_second"`
		Burst     int     `yaml:"burst" json:"burst"`
	} `yaml:"rate_limit" json:"rate_limit"`

	// Pages maps page ids to public paths, used for form actions.
	Pages map[int64]string `yaml:"pages" json:"pages"`

	InsertTags map[string]string `yaml:"insert_tags" json:"insert_tags"`

	Modules []Module `yaml:"modules" json:"modules"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 38472
	}
	if len(cfg.App.Locales) == 0 {
		cfg.App.Locales = []string{"en"}
	}
	if cfg.App.DefaultLocale == "" {
		cfg.App.DefaultLocale = cfg.App.Locales[0]
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.RateLimit.PerSecond == 0 {
		cfg.RateLimit.PerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	for i := range cfg.Modules {
		m := strings.ToUpper(strings.TrimSpace(cfg.Modules[i].Method))
		if m == "" {
			m = "GET"
		}
		cfg.Modules[i].Method = m
	}
}

// Module returns the module with the given id.
func (c Config) Module(id int64) (Module, error) {
	for _, m := range c.Modules {
		if m.ID == id {
			return m, nil
		}
	}
	return Module{}, ErrModuleNotFound
}

// DataDirOr returns app.data_dir, or fallback when it is unset.
func (c Config) DataDirOr(fallback string) string {
	if d := strings.TrimSpace(c.App.DataDir); d != "" {
		return d
	}
	return fallback
}

// DevMode reports whether console logging is wanted, either through
// app.dev or a non-empty env override.
func (c Config) DevMode(env string) bool {
	return c.App.Dev || env != ""
}
