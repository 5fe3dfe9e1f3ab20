package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-matchtype/internal/fileutil"
	"github.com/alnah/go-matchtype/internal/keyword"
	"github.com/alnah/go-matchtype/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength    = 200 // Report title
	MaxStyleLength    = 50  // Chroma style name
	MaxDirLength      = 4096
	MaxPageSizeLength = 10 // "letter", "a4", "legal"
)

// Upper bounds accepted for limits; higher values are almost certainly typos.
const (
	MaxInputLengthCeiling = 1_000_000
	MaxKeywordsCeiling    = 100_000
)

// Config directory name under the user config dir.
const userConfigDirName = "go-matchtype"

// Formats accepted in output.format.
var Formats = []string{"text", "json", "yaml", "markdown", "md", "html", "pdf"}

// Log levels accepted in log.level.
var LogLevels = []string{"development", "production", "silent"}

// Config holds all configuration for keyword conversion.
type Config struct {
	Limits  LimitsConfig  `yaml:"limits"`
	Convert ConvertConfig `yaml:"convert"`
	Output  OutputConfig  `yaml:"output"`
	Report  ReportConfig  `yaml:"report"`
	Log     LogConfig     `yaml:"log"`
}

// LimitsConfig defines input limits and rate limiting.
type LimitsConfig struct {
	MaxInputLength int    `yaml:"maxInputLength"` // characters (default: 10000)
	MaxKeywords    int    `yaml:"maxKeywords"`    // unique keywords before truncation warning (default: 1000)
	Cooldown       string `yaml:"cooldown"`       // Go duration, "0" disables (default: "100ms")
}

// ConvertConfig defines conversion defaults.
type ConvertConfig struct {
	Target string `yaml:"target"` // "broad", "phrase", "exact" (default: "broad")
	Strict bool   `yaml:"strict"` // fail when any keyword is invalid
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Format     string `yaml:"format"`     // see Formats (default: "text")
	DefaultDir string `yaml:"defaultDir"` // directory for relative --output paths (empty = cwd)
	Copy       bool   `yaml:"copy"`       // copy output to clipboard
}

// ReportConfig defines HTML and PDF report options.
type ReportConfig struct {
	Title    string `yaml:"title"`    // Report heading (default: "Keyword conversion report")
	Style    string `yaml:"style"`    // Chroma style for highlighted blocks (default: "github")
	PageSize string `yaml:"pageSize"` // "letter", "a4", "legal" (default: "letter")
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // see LogLevels (default: "silent")
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxInputLength: keyword.DefaultMaxInputLength,
			MaxKeywords:    keyword.DefaultMaxKeywords,
			Cooldown:       "100ms",
		},
		Convert: ConvertConfig{Target: keyword.Broad.String()},
		Output:  OutputConfig{Format: "text"},
		Report: ReportConfig{
			Title:    "Keyword conversion report",
			Style:    "github",
			PageSize: "letter",
		},
		Log: LogConfig{Level: "silent"},
	}
}

// CooldownDuration parses Limits.Cooldown. An empty value means the default.
func (c *Config) CooldownDuration() (time.Duration, error) {
	if c.Limits.Cooldown == "" {
		return 100 * time.Millisecond, nil
	}
	d, err := time.ParseDuration(c.Limits.Cooldown)
	if err != nil {
		return 0, fmt.Errorf("%w: limits.cooldown: %v", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: limits.cooldown: must not be negative, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks limits, enum fields and field lengths.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateRange("limits.maxInputLength", c.Limits.MaxInputLength, MaxInputLengthCeiling); err != nil {
		return err
	}
	if err := validateRange("limits.maxKeywords", c.Limits.MaxKeywords, MaxKeywordsCeiling); err != nil {
		return err
	}
	if _, err := c.CooldownDuration(); err != nil {
		return err
	}

	if c.Convert.Target != "" {
		if _, err := keyword.ParseType(c.Convert.Target); err != nil {
			return fmt.Errorf("%w: convert.target: %v", ErrInvalidValue, err)
		}
	}

	if err := validateEnum("output.format", c.Output.Format, Formats); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}

	if err := validateFieldLength("report.title", c.Report.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.style", c.Report.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.pageSize", c.Report.PageSize, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateEnum("report.pageSize", c.Report.PageSize, []string{"letter", "a4", "legal"}); err != nil {
		return err
	}

	return validateEnum("log.level", c.Log.Level, LogLevels)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRange accepts zero (use default) or a value in [1, ceiling].
func validateRange(fieldName string, value, ceiling int) error {
	if value < 0 || value > ceiling {
		return fmt.Errorf("%w: %s: must be between 1 and %d, got %d", ErrInvalidValue, fieldName, ceiling, value)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed (case-insensitive).
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in standard locations.
// Values missing from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// current directory first, then ~/.config/go-matchtype/.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
