package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar points at an optional YAML file layered under the environment.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Port          string `koanf:"port"`
	DBDSN         string `koanf:"db_dsn"`
	LogFile       string `koanf:"log_file"`
	LogLevel      string `koanf:"log_level"`
	LogFormat     string `koanf:"log_format"`
	Seed          bool   `koanf:"seed"`
	EnrichWorkers int    `koanf:"enrich_workers"`
}

func defaults() Config {
	return Config{
		Port:          "8080",
		DBDSN:         "bazaar.db", // sqlite file in project root
		LogFile:       "",
		LogLevel:      "info",
		LogFormat:     "json",
		Seed:          true,
		EnrichWorkers: 8,
	}
}

// envKeys maps the environment variables we honour onto koanf paths.
var envKeys = map[string]string{
	"PORT":           "port",
	"DB_DSN":         "db_dsn",
	"LOG_FILE":       "log_file",
	"LOG_LEVEL":      "log_level",
	"LOG_FORMAT":     "log_format",
	"SEED":           "seed",
	"ENRICH_WORKERS": "enrich_workers",
}

// Load layers defaults, the optional YAML file and the environment, in that
// order of increasing priority.
func Load() (Config, error) {
	k := koanf.New(".")

	d := defaults()
	if err := k.Load(structs.Provider(&d, "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	// Unknown variables map to "" and are skipped by the provider.
	if err := k.Load(env.Provider("", ".", func(key string) string {
		return envKeys[strings.ToUpper(key)]
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: port must be set")
	}
	if c.DBDSN == "" {
		return fmt.Errorf("config: db_dsn must be set")
	}
	if c.EnrichWorkers < 1 {
		return fmt.Errorf("config: enrich_workers must be at least 1, got %d", c.EnrichWorkers)
	}
	return nil
}
