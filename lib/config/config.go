// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/keydoc/lib/keydoc"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "KEYDOC_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use. Limits are loose and output is
	// colored on terminals.
	Development Environment = "development"
	// Staging is for pre-production pipelines.
	Staging Environment = "staging"
	// Production is for services decoding untrusted streams.
	Production Environment = "production"
)

// Config is the keydoc tool configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Decode bounds what the decoder accepts.
	Decode DecodeConfig `yaml:"decode"`

	// Encode bounds what the encoder writes.
	Encode EncodeConfig `yaml:"encode"`

	// Output configures how decoded documents are rendered.
	Output OutputConfig `yaml:"output"`

	// Stats configures the size report.
	Stats StatsConfig `yaml:"stats"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Decode *DecodeConfig `yaml:"decode,omitempty"`
	Output *OutputConfig `yaml:"output,omitempty"`
}

// DecodeConfig mirrors keydoc.DecodeOptions. Zero limits select the
// keydoc defaults.
type DecodeConfig struct {
	MaxStringLength    int  `yaml:"max_string_length"`
	MaxDepth           int  `yaml:"max_depth"`
	MaxContainerLength int  `yaml:"max_container_length"`
	ValidateUTF8       bool `yaml:"validate_utf8"`
}

// EncodeConfig mirrors keydoc.EncodeOptions.
type EncodeConfig struct {
	MaxStringLength int `yaml:"max_string_length"`
	MaxDepth        int `yaml:"max_depth"`
}

// OutputConfig configures rendering of decoded documents.
type OutputConfig struct {
	// Format is the default for `keydoc decode --to`: json, yaml,
	// cbor, or diag.
	// Default: json
	Format string `yaml:"format"`

	// Indent is the JSON indentation unit. Ignored for compact output.
	// Default: two spaces
	Indent string `yaml:"indent"`

	// Color is auto, always, or never. Auto colors output only when
	// stdout is a terminal.
	// Default: auto (development), never (production)
	Color string `yaml:"color"`

	// Directory, when set, is where relative --output paths are
	// written. Supports ${VAR} and ${VAR:-default}.
	Directory string `yaml:"directory"`
}

// StatsConfig configures the size report.
type StatsConfig struct {
	// ZstdLevel is fastest, default, better, or best.
	// Default: default
	ZstdLevel string `yaml:"zstd_level"`
}

var (
	outputFormats = []string{"json", "yaml", "cbor", "diag"}
	colorModes    = []string{"auto", "always", "never"}
	zstdLevels    = []string{"fastest", "default", "better", "best"}
)

// Default returns the configuration used when no file is given, and
// the base that a loaded file is merged into.
func Default() *Config {
	return &Config{
		Environment: Development,
		Output: OutputConfig{
			Format: "json",
			Indent: "  ",
			Color:  "auto",
		},
		Stats: StatsConfig{
			ZstdLevel: "default",
		},
	}
}

// Load loads configuration from the file named by KEYDOC_CONFIG. It
// fails when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your keydoc.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: bounded, validated decoding.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Decode: &DecodeConfig{
					MaxStringLength:    16 << 20,
					MaxContainerLength: 1 << 20,
					ValidateUTF8:       true,
				},
				Output: &OutputConfig{
					Color: "never",
				},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Decode != nil {
		if overrides.Decode.MaxStringLength != 0 {
			c.Decode.MaxStringLength = overrides.Decode.MaxStringLength
		}
		if overrides.Decode.MaxDepth != 0 {
			c.Decode.MaxDepth = overrides.Decode.MaxDepth
		}
		if overrides.Decode.MaxContainerLength != 0 {
			c.Decode.MaxContainerLength = overrides.Decode.MaxContainerLength
		}
		// ValidateUTF8 is a bool, so it is always applied from overrides.
		c.Decode.ValidateUTF8 = overrides.Decode.ValidateUTF8
	}

	if overrides.Output != nil {
		if overrides.Output.Format != "" {
			c.Output.Format = overrides.Output.Format
		}
		if overrides.Output.Indent != "" {
			c.Output.Indent = overrides.Output.Indent
		}
		if overrides.Output.Color != "" {
			c.Output.Color = overrides.Output.Color
		}
		if overrides.Output.Directory != "" {
			c.Output.Directory = overrides.Output.Directory
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Output.Directory = expandVars(c.Output.Directory, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	limits := []struct {
		name  string
		value int
	}{
		{"decode.max_string_length", c.Decode.MaxStringLength},
		{"decode.max_depth", c.Decode.MaxDepth},
		{"decode.max_container_length", c.Decode.MaxContainerLength},
		{"encode.max_string_length", c.Encode.MaxStringLength},
		{"encode.max_depth", c.Encode.MaxDepth},
	}
	for _, limit := range limits {
		if limit.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", limit.name, limit.value))
		}
	}

	if !slices.Contains(outputFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", outputFormats))
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorModes))
	}
	if !slices.Contains(zstdLevels, c.Stats.ZstdLevel) {
		errs = append(errs, fmt.Errorf("stats.zstd_level must be one of: %v", zstdLevels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// DecodeOptions returns the decoder options this config selects.
func (c *Config) DecodeOptions() keydoc.DecodeOptions {
	return keydoc.DecodeOptions{
		MaxStringLength:    c.Decode.MaxStringLength,
		MaxDepth:           c.Decode.MaxDepth,
		MaxContainerLength: c.Decode.MaxContainerLength,
		ValidateUTF8:       c.Decode.ValidateUTF8,
	}
}

// EncodeOptions returns the encoder options this config selects.
func (c *Config) EncodeOptions() keydoc.EncodeOptions {
	return keydoc.EncodeOptions{
		MaxStringLength: c.Encode.MaxStringLength,
		MaxDepth:        c.Encode.MaxDepth,
	}
}

// OutputPath resolves an output file name. Absolute names and names
// given without a configured directory are returned unchanged;
// relative names are placed under Output.Directory, which is created
// if missing.
func (c *Config) OutputPath(name string) (string, error) {
	if c.Output.Directory == "" || filepath.IsAbs(name) {
		return name, nil
	}
	if err := os.MkdirAll(c.Output.Directory, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", c.Output.Directory, err)
	}
	return filepath.Join(c.Output.Directory, name), nil
}
