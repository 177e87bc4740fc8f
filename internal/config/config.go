// Package config loads the CLI's configuration: target execution-context
// parameters, fixture discovery patterns, and diagnostic output options.
// Configuration is read from a .sppcore.toml file (explicitly given or
// discovered upward from the target directory), with viper handling format
// decoding and live-reload for watch mode.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/alusus/sppcore/domain"
	"github.com/alusus/sppcore/internal/fixture"
)

// DefaultConfigFileName is the file LoadConfig searches for when no path is
// given.
const DefaultConfigFileName = ".sppcore.toml"

// Config is the root configuration structure.
type Config struct {
	// Target holds execution-context parameters fed to the type registry
	// and the target generator.
	Target TargetConfig `mapstructure:"target" toml:"target"`

	// Fixtures controls fixture-module discovery.
	Fixtures FixturesConfig `mapstructure:"fixtures" toml:"fixtures"`

	// Output holds diagnostic output options.
	Output OutputConfig `mapstructure:"output" toml:"output"`
}

// TargetConfig describes the execution context generation runs against.
type TargetConfig struct {
	// PointerBits is the target's pointer width in bits.
	PointerBits int `mapstructure:"pointer_bits" toml:"pointer_bits"`

	// BigEndian selects big-endian byte order.
	BigEndian bool `mapstructure:"big_endian" toml:"big_endian"`
}

// FixturesConfig controls which fixture files a load picks up.
type FixturesConfig struct {
	// IncludePatterns are doublestar patterns relative to the load root.
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns"`

	// ExcludePatterns remove matches from the include set.
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
}

// OutputConfig holds diagnostic output options.
type OutputConfig struct {
	// Format is one of text, json, yaml.
	Format string `mapstructure:"format" toml:"format"`

	// Color enables severity coloring for text output.
	Color bool `mapstructure:"color" toml:"color"`

	// ShowProgress enables the generation progress bar.
	ShowProgress bool `mapstructure:"show_progress" toml:"show_progress"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Target:   TargetConfig{PointerBits: 64},
		Fixtures: FixturesConfig{IncludePatterns: fixture.DefaultIncludePatterns},
		Output:   OutputConfig{Format: "text", Color: true},
	}
}

// LoadConfig reads configuration from path. An empty path searches for
// DefaultConfigFileName in the current directory and its ancestors; if none
// exists, defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		found, err := FindConfigFile(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return DefaultConfig(), nil
		}
		path = found
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError("cannot read config file "+path, err)
	}
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, domain.NewConfigError("cannot decode config file "+path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile walks from dir upward looking for DefaultConfigFileName.
// Returns "" when no file exists anywhere on the chain.
func FindConfigFile(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", domain.NewConfigError("cannot resolve directory "+dir, err)
	}
	for {
		candidate := filepath.Join(abs, DefaultConfigFileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// SaveConfig writes cfg to path as TOML.
func SaveConfig(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return domain.NewConfigError("cannot encode config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.NewConfigError("cannot write config file "+path, err)
	}
	return nil
}

// Validate checks the loaded values for shapes the core cannot work with.
func (c *Config) Validate() error {
	switch c.Target.PointerBits {
	case 16, 32, 64:
	default:
		return domain.NewConfigError(
			fmt.Sprintf("target.pointer_bits must be 16, 32, or 64 (got %d)", c.Target.PointerBits), nil)
	}
	switch c.Output.Format {
	case "", "text", "json", "yaml":
	default:
		return domain.NewConfigError(
			fmt.Sprintf("output.format must be text, json, or yaml (got %q)", c.Output.Format), nil)
	}
	return nil
}

// Watch reloads the file at path whenever it changes, invoking onChange
// with the freshly decoded configuration. Decode or validation failures on
// a reload are reported through onError and the previous configuration
// stays in effect. Watch returns immediately; the watch lives for the
// process lifetime, matching the CLI's --watch mode.
func Watch(path string, onChange func(*Config), onError func(error)) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return domain.NewConfigError("cannot read config file "+path, err)
	}
	v.OnConfigChange(func(fsnotify.Event) {
		cfg := DefaultConfig()
		if err := v.Unmarshal(cfg); err != nil {
			onError(domain.NewConfigError("cannot decode config file "+path, err))
			return
		}
		if err := cfg.Validate(); err != nil {
			onError(err)
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// ExecutionContextOf translates the target section into the flag pair the
// type registry and target generator consume.
func (c *Config) ExecutionContextOf() (pointerBits int, bigEndian bool) {
	return c.Target.PointerBits, c.Target.BigEndian
}
