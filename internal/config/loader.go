package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML), path argument or SIGNTUTOR_CONFIG
//  3. env (prefix SIGNTUTOR_)
func Load(path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("SIGNTUTOR_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: SIGNTUTOR_ADDR, SIGNTUTOR_HISTORY_SIZE, ...
	// Keys map to the koanf tags with underscores preserved.
	envProvider := env.Provider("SIGNTUTOR_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "signtutor_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.ActiveFPS <= 0 || c.IdleFPS <= 0 {
		return errors.New("frame rates must be positive")
	}
	if c.Calibration <= 0 {
		return errors.New("calibration must be positive")
	}
	if c.HistorySize <= 0 {
		return errors.New("history_size must be positive")
	}
	if c.TrendWindow <= 0 || 2*c.TrendWindow > c.HistorySize {
		return errors.New("trend_window must be positive and at most half of history_size")
	}
	return nil
}
