package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"supplyscore/internal/flags"
)

// File holds the subset of configuration that may come from a TOML file.
// Fields are pointers so callers can tell "absent" from "zero" when merging
// under explicitly-set CLI flags.
type File struct {
	Targeting struct {
		Repos []string `toml:"repos"`
	} `toml:"targeting"`
	Forge struct {
		BaseURL *string `toml:"base_url"`
	} `toml:"forge"`
	Output struct {
		Format *string `toml:"format"`
	} `toml:"output"`
	Runtime struct {
		Timeout *duration `toml:"timeout"`
		Verbose *bool     `toml:"verbose"`
	} `toml:"runtime"`
}

// duration lets TOML carry timeouts as strings like "5m" or "90s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// LoadFile parses a TOML config file.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies file values into cfg. Values for flags the user set
// explicitly are skipped; isSet reports whether a flag name was set.
func (f *File) Apply(cfg *Config, isSet func(flag string) bool) {
	if len(f.Targeting.Repos) > 0 && !isSet(flags.FlagRepo) {
		cfg.Targeting.Repos = append([]string(nil), f.Targeting.Repos...)
	}
	if f.Forge.BaseURL != nil && !isSet(flags.FlagBaseURL) {
		cfg.Forge.BaseURL = *f.Forge.BaseURL
	}
	if f.Output.Format != nil && !isSet(flags.FlagFormat) {
		cfg.Output.Format = *f.Output.Format
	}
	if f.Runtime.Timeout != nil && !isSet(flags.FlagTimeout) {
		cfg.Runtime.Timeout = time.Duration(*f.Runtime.Timeout)
	}
	if f.Runtime.Verbose != nil && !isSet(flags.FlagVerbose) {
		cfg.Runtime.Verbose = *f.Runtime.Verbose
	}
}
