package config

import (
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vitos/vault_scanner/internal/infrastructure/logger"
)

const (
	DefaultBaseURL = "https://api.expand.network"
	DefaultPath    = "config/config.yaml"
	DefaultEnvFile = ".env"
)

var ErrMissingAPIKey = errors.New("EXPAND_KEY is not set (export it or add it to .env)")

type Config struct {
	Expand struct {
		APIKey  string `yaml:"api_key" envconfig:"EXPAND_KEY"`
		BaseURL string `yaml:"base_url" envconfig:"EXPAND_BASE_URL"`
	} `yaml:"expand"`
	Logging struct {
		Level string `yaml:"level" envconfig:"EXPAND_LOG_LEVEL"`
	} `yaml:"logging"`
}

// Load builds the configuration from, in increasing priority: the yaml file at
// path, the dotenv file at envFile and the process environment. Both files are
// optional. The API key must be present once everything is merged.
func Load(path, envFile string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}

	if err := cfg.validateAndAddDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	return &cfg, nil
}

// loadEnvFile never overrides variables already set in the environment.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Wrapf(godotenv.Load(path), "load %s", path)
}

func (c *Config) validateAndAddDefaults() error {
	c.Expand.APIKey = strings.TrimSpace(c.Expand.APIKey)
	if c.Expand.APIKey == "" {
		return ErrMissingAPIKey
	}

	c.Expand.BaseURL = strings.TrimRight(strings.TrimSpace(c.Expand.BaseURL), "/")
	if c.Expand.BaseURL == "" {
		c.Expand.BaseURL = DefaultBaseURL
	}

	if c.Logging.Level == "" {
		c.Logging.Level = logger.DefaultLevel
	}
	return nil
}
