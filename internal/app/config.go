package app

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL         string  `yaml:"base_url"`
	Model           string  `yaml:"model"`
	Temperature     float64 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
	RequestTimeout  int     `yaml:"request_timeout_seconds"`
	MaxContextFiles int     `yaml:"max_context_files"`
	History         bool    `yaml:"history"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:         "http://127.0.0.1:1234",
		Temperature:     0.7,
		RequestTimeout:  60,
		MaxContextFiles: 3,
		History:         true,
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return applyEnv(cfg), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://127.0.0.1:1234"
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		cfg.Temperature = 0.7
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60
	}
	if cfg.MaxContextFiles <= 0 {
		cfg.MaxContextFiles = 3
	}
	if cfg.MaxContextFiles > 10 {
		cfg.MaxContextFiles = 10
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv("SARA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SARA_MODEL"); v != "" {
		cfg.Model = v
	}
	return cfg
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "sara", "config.yml")
}
