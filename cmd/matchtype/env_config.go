package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/alnah/go-matchtype/internal/config"
)

// ErrEnvConfig indicates a MATCHTYPE_* variable could not be parsed.
var ErrEnvConfig = errors.New("invalid environment variable")

// envPrefix is the prefix of every recognized environment variable.
const envPrefix = "MATCHTYPE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string `env:"MATCHTYPE_CONFIG" env-description:"config file name or path"`
	Target         string `env:"MATCHTYPE_TARGET" env-description:"target match type"`
	Format         string `env:"MATCHTYPE_FORMAT" env-description:"output format"`
	OutputDir      string `env:"MATCHTYPE_OUTPUT_DIR" env-description:"directory for relative output paths"`
	MaxInputLength int    `env:"MATCHTYPE_MAX_LENGTH" env-description:"maximum input length in characters"`
	MaxKeywords    int    `env:"MATCHTYPE_MAX_KEYWORDS" env-description:"maximum keywords per run"`
	Cooldown       string `env:"MATCHTYPE_COOLDOWN" env-description:"minimum time between conversions"`
	Copy           string `env:"MATCHTYPE_COPY" env-description:"copy output to the clipboard (true/false)"`
	Strict         string `env:"MATCHTYPE_STRICT" env-description:"fail on invalid keywords (true/false)"`
	LogLevel       string `env:"MATCHTYPE_LOG_LEVEL" env-description:"development, production or silent"`
	PageSize       string `env:"MATCHTYPE_PAGE_SIZE" env-description:"pdf page size"`
}

// knownEnvVars lists valid MATCHTYPE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MATCHTYPE_CONFIG":       true,
	"MATCHTYPE_TARGET":       true,
	"MATCHTYPE_FORMAT":       true,
	"MATCHTYPE_OUTPUT_DIR":   true,
	"MATCHTYPE_MAX_LENGTH":   true,
	"MATCHTYPE_MAX_KEYWORDS": true,
	"MATCHTYPE_COOLDOWN":     true,
	"MATCHTYPE_COPY":         true,
	"MATCHTYPE_STRICT":       true,
	"MATCHTYPE_LOG_LEVEL":    true,
	"MATCHTYPE_PAGE_SIZE":    true,
	"MATCHTYPE_CONTAINER":    true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() (*envConfig, error) {
	var cfg envConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvConfig, err)
	}
	return &cfg, nil
}

// warnUnknownEnvVars writes warnings for unrecognized MATCHTYPE_* variables.
// Helps catch typos like MATCHTYPE_TRAGET.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values over the file config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) error {
	if env.Target != "" {
		cfg.Convert.Target = env.Target
	}
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.MaxInputLength != 0 {
		cfg.Limits.MaxInputLength = env.MaxInputLength
	}
	if env.MaxKeywords != 0 {
		cfg.Limits.MaxKeywords = env.MaxKeywords
	}
	if env.Cooldown != "" {
		cfg.Limits.Cooldown = env.Cooldown
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.PageSize != "" {
		cfg.Report.PageSize = env.PageSize
	}

	if env.Copy != "" {
		v, err := strconv.ParseBool(env.Copy)
		if err != nil {
			return fmt.Errorf("%w: MATCHTYPE_COPY=%q", ErrEnvConfig, env.Copy)
		}
		cfg.Output.Copy = v
	}
	if env.Strict != "" {
		v, err := strconv.ParseBool(env.Strict)
		if err != nil {
			return fmt.Errorf("%w: MATCHTYPE_STRICT=%q", ErrEnvConfig, env.Strict)
		}
		cfg.Convert.Strict = v
	}
	return nil
}

// loadConfig resolves the effective configuration from defaults, the config
// file named by the flag or MATCHTYPE_CONFIG, and the environment.
func loadConfig(flagPath string, stderr io.Writer, quiet bool) (*config.Config, error) {
	env, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}
	if !quiet {
		warnUnknownEnvVars(stderr)
	}

	name := flagPath
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			err = fmt.Errorf("loading config: %w", err)
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, withHint(err, configNotFoundHint(name))
			}
			return nil, err
		}
	}

	if err := applyEnvConfig(env, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
