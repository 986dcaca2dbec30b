package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds the deck-generation settings merged from defaults, an
// optional yaml file, ANKIGEN_* environment variables, and flags, in
// ascending precedence.
type Config struct {
	DeckName string `koanf:"deck_name" validate:"required"`
	Source   string `koanf:"source" validate:"required"`
	Output   string `koanf:"output" validate:"required"`
	CacheDir string `koanf:"cache_dir"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

const envPrefix = "ANKIGEN_"

// Load merges all configuration sources and validates the result. path may
// be empty when no config file is used.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Flag names use dashes; koanf keys use underscores.
	if err := k.Load(posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, interface{}) {
		return strings.ReplaceAll(key, "-", "_"), value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := &Config{
		Output:   "deck.apkg",
		CacheDir: "repos",
		LogLevel: "info",
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
