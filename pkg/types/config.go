// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Default configuration values.
const (
	DefaultConverter = "pandoc"
	DefaultColor     = "auto"
)

// Config holds the settings for a mirror run. It is decoded by viper from
// the config file, DOCMIRROR_* environment variables, and command flags.
type Config struct {
	// Converter is the path (or PATH-resolvable name) of the pandoc binary.
	Converter string `json:"converter" yaml:"converter" mapstructure:"converter"`

	// Source is the root directory scanned for Markdown files.
	Source string `json:"source" yaml:"source" mapstructure:"source"`

	// Dest is the root directory that receives the mirrored HTML tree.
	Dest string `json:"dest" yaml:"dest" mapstructure:"dest"`

	// HistoryDB is an optional SQLite database that records every run.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty" mapstructure:"history_db"`

	// Report is an optional path for a YAML (or .json) run report.
	Report string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`

	// Color selects console styling: never, always, or auto.
	Color string `json:"color" yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config populated with defaults and empty roots.
func DefaultConfig() Config {
	return Config{
		Converter: DefaultConverter,
		Color:     DefaultColor,
	}
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	var errs []error
	if c.Source == "" {
		errs = append(errs, errors.New("source root is not set (use --source or the source config key)"))
	}
	if c.Dest == "" {
		errs = append(errs, errors.New("destination root is not set (use --dest or the dest config key)"))
	}
	if c.Converter == "" {
		errs = append(errs, errors.New("converter path is empty"))
	}
	return errors.Join(errs...)
}
