// Package config loads the tool configuration for the stt command
// line. The pure type engine takes no configuration; everything here
// concerns the outer surfaces: output locations, formats and logging.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the complete stt tool configuration.
type Config struct {
	// DataDir is where the registry database and exported files live.
	DataDir string `json:"dataDir" mapstructure:"dataDir"`

	// Output controls rendering of dumps and exports.
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Logging controls the CLI logger.
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// OutputConfig controls rendering of dumps and exports.
type OutputConfig struct {
	// Format is the default export format: "bin", "armor" or "zstd".
	Format string `json:"format" mapstructure:"format"`

	// Mnemonics toggles mnemonic suffixes on rendered ids.
	Mnemonics bool `json:"mnemonics" mapstructure:"mnemonics"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir: ".stt",
		Output: OutputConfig{
			Format:    "armor",
			Mnemonics: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads .stt.toml from dir, falling back to defaults when the
// file does not exist.
func Load(dir string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("dataDir", def.DataDir)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.mnemonics", def.Output.Mnemonics)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetConfigName(".stt")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			def.DataDir = filepath.Join(dir, def.DataDir)
			return def, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(dir, cfg.DataDir)
	}
	return &cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "bin", "armor", "zstd":
	default:
		return fmt.Errorf("invalid output.format %q: must be bin, armor or zstd", c.Output.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	return nil
}
