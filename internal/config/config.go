package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mcncl/eqdata/internal/errors"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatData = "data"
)

// Key cases applied to object names in json and yaml output
const (
	KeyCasePreserve   = "preserve"
	KeyCaseSnake      = "snake"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower_camel"
	KeyCaseKebab      = "kebab"
)

var (
	formats  = []string{FormatText, FormatJSON, FormatYAML, FormatData}
	keyCases = []string{KeyCasePreserve, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab}
	levels   = []string{"debug", "info", "warn", "error"}
)

// Config represents the complete configuration for eqdata
type Config struct {
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig controls how the parsed value is rendered
type OutputConfig struct {
	Format      string `yaml:"format"`
	Indent      int    `yaml:"indent"`
	JSONNumbers bool   `yaml:"json_numbers"`
	KeyCase     string `yaml:"key_case"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:      FormatText,
			Indent:      2,
			JSONNumbers: false,
			KeyCase:     KeyCasePreserve,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".eqdata.yml", ".eqdata.yaml", "eqdata.yml", "eqdata.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(c.Output.Format)
	c.Output.KeyCase = strings.ToLower(c.Output.KeyCase)
	c.Log.Level = strings.ToLower(c.Log.Level)

	if !slices.Contains(formats, c.Output.Format) {
		return errors.NewConfigError(
			fmt.Sprintf("unknown output format %q (want one of %s)", c.Output.Format, strings.Join(formats, ", ")),
			errors.ErrInvalidOption,
		)
	}
	if !slices.Contains(keyCases, c.Output.KeyCase) {
		return errors.NewConfigError(
			fmt.Sprintf("unknown key case %q (want one of %s)", c.Output.KeyCase, strings.Join(keyCases, ", ")),
			errors.ErrInvalidOption,
		)
	}
	if !slices.Contains(levels, c.Log.Level) {
		return errors.NewConfigError(
			fmt.Sprintf("unknown log level %q (want one of %s)", c.Log.Level, strings.Join(levels, ", ")),
			errors.ErrInvalidOption,
		)
	}
	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return errors.NewConfigError(
			fmt.Sprintf("indent %d out of range 0..16", c.Output.Indent),
			errors.ErrInvalidOption,
		)
	}
	return nil
}

// SlogLevel maps Log.Level to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Overrides holds command-line values. Nil fields were not given.
type Overrides struct {
	Format      *string
	Indent      *int
	JSONNumbers *bool
	KeyCase     *string
	Debug       bool
	LogFile     string
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Format != nil {
		cfg.Output.Format = *cli.Format
	}
	if cli.Indent != nil {
		cfg.Output.Indent = *cli.Indent
	}
	if cli.JSONNumbers != nil {
		cfg.Output.JSONNumbers = *cli.JSONNumbers
	}
	if cli.KeyCase != nil {
		cfg.Output.KeyCase = *cli.KeyCase
	}
	if cli.Debug {
		cfg.Log.Level = "debug"
	}
	if cli.LogFile != "" {
		cfg.Log.File = cli.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
