// =============================================================================
// Metadata Generator - Configuration Module
// =============================================================================
//
// This module loads the run configuration shared by every command. Values
// come from, in increasing priority:
//   1. Built-in defaults
//   2. A YAML config file (--config, or .metagen.yaml in the working
//      directory or $HOME)
//   3. Environment variables prefixed METAGEN_ (a .env file is read first)
//   4. Command-line flags bound by the cmd package
//
// EXAMPLE (.metagen.yaml):
//
//   output_dir: ./force-app/main/default/objects
//   delimiter: semicolon
//   indentation: 2
//   incomplete_row_policy: report
//   log_level: debug
//   log_format: json
//
// =============================================================================

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/ginjaninja78/metadata-generator/internal/csvparser"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "METAGEN"

// Config keys.
const (
	KeyOutputDir           = "output_dir"
	KeyDelimiter           = "delimiter"
	KeyIndentation         = "indentation"
	KeyIncompleteRowPolicy = "incomplete_row_policy"
	KeyLogLevel            = "log_level"
	KeyLogFormat           = "log_format"
)

const (
	minIndentation = 1
	maxIndentation = 8
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings of one command run.
type Config struct {
	// OutputDir is used when a command is run without --outputdir.
	// Default: "."
	OutputDir string `mapstructure:"output_dir"`

	// Delimiter separates input columns. Aliases such as "tab" or
	// "semicolon" are accepted.
	// Default: ","
	Delimiter string `mapstructure:"delimiter"`

	// Indentation is the number of spaces per XML nesting level.
	// Valid values: 1 to 8
	// Default: 4
	Indentation int `mapstructure:"indentation"`

	// IncompleteRowPolicy decides what happens to rows with fewer cells
	// than the header.
	// Valid values: "skip-silent", "report"
	// Default: "skip-silent"
	IncompleteRowPolicy string `mapstructure:"incomplete_row_policy"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `mapstructure:"log_level"`

	// LogFormat selects the log handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

// =============================================================================
// LOADING
// =============================================================================

// SetDefaults registers every key with its default on v, so environment
// variables are picked up for all of them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyDelimiter, d.Delimiter)
	v.SetDefault(KeyIndentation, d.Indentation)
	v.SetDefault(KeyIncompleteRowPolicy, d.IncompleteRowPolicy)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration held by v.
//
// PARAMETERS:
//   - v: A viper instance with its config file, environment and flags
//     already set up.
//
// RETURNS:
//   - The validated configuration.
//   - An error if a value cannot be decoded or is out of range.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

// LoadFile reads a YAML config file on top of the defaults and environment.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(v)
}

func applyDefaults(c *Config) {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Delimiter == "" {
		c.Delimiter = csvparser.DefaultDelimiter
	}
	if c.Indentation == 0 {
		c.Indentation = 4
	}
	if c.IncompleteRowPolicy == "" {
		c.IncompleteRowPolicy = string(csvparser.SkipSilent)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks every enumerated and ranged setting.
func (c *Config) Validate() error {
	if c.Indentation < minIndentation || c.Indentation > maxIndentation {
		return fmt.Errorf("indentation must be between %d and %d, got %d", minIndentation, maxIndentation, c.Indentation)
	}
	if _, err := csvparser.ParsePolicy(c.IncompleteRowPolicy); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	return nil
}

// Policy returns the incomplete row policy.
func (c *Config) Policy() csvparser.IncompleteRowPolicy {
	p, err := csvparser.ParsePolicy(c.IncompleteRowPolicy)
	if err != nil {
		return csvparser.SkipSilent
	}
	return p
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}
