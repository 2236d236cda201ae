// =============================================================================
// FASTA to Vienna Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and validating configuration. The
// reformatter itself has no options; configuration only drives logging, the
// batch command and the wrap command.
//
// PRECEDENCE (lowest to highest):
//   1. Defaults from GetConfigOptions
//   2. Config file (fasta2vienna.yaml in ., or $XDG_CONFIG_HOME/fasta2vienna)
//   3. Environment variables (FASTA2VIENNA_BATCH_OUTPUT_DIR, ...)
//   4. Command-line flags that were explicitly set
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// AppName names the config file, its directory and the environment prefix.
const AppName = "fasta2vienna"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the resolved application configuration.
type Config struct {
	// LogLevel controls the verbosity of logging on stderr.
	// Valid values: "trace", "debug", "info", "warn", "error"
	LogLevel string `mapstructure:"log_level"`

	// Batch holds settings for the batch command.
	Batch BatchConfig `mapstructure:"batch"`

	// Wrap holds settings for the wrap command.
	Wrap WrapConfig `mapstructure:"wrap"`
}

// BatchConfig controls directory-based conversion.
type BatchConfig struct {
	// InputDir is scanned (non-recursively) for FASTA files.
	InputDir string `mapstructure:"input_dir"`

	// OutputDir receives converted files and summary reports.
	OutputDir string `mapstructure:"output_dir"`

	// ArchiveDir receives input files after successful conversion when
	// ArchiveInputs is set.
	ArchiveDir string `mapstructure:"archive_dir"`

	// ArchiveInputs moves each input to ArchiveDir once converted.
	ArchiveInputs bool `mapstructure:"archive_inputs"`

	// Patterns are glob patterns matched against file names in InputDir.
	Patterns []string `mapstructure:"patterns"`

	// OutputNameFormat builds output file names.
	// Placeholders:
	//   {original}  - Input file name without its extension
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	OutputNameFormat string `mapstructure:"output_name_format"`

	// MaxConcurrency is the maximum number of files converted at once.
	MaxConcurrency int `mapstructure:"max_concurrency"`

	// Summary writes a plain-text processing summary to OutputDir.
	Summary bool `mapstructure:"summary"`

	// SummaryXLSX additionally writes the summary as an Excel workbook.
	SummaryXLSX bool `mapstructure:"summary_xlsx"`
}

// WrapConfig controls the wrap command.
type WrapConfig struct {
	// Width is the maximum number of residues per sequence line.
	Width int `mapstructure:"width"`
}

// =============================================================================
// LOADING
// =============================================================================

// applyDefaults seeds v with the defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration into v with precedence defaults < file < env.
// When a config file was set on v explicitly it must exist and parse;
// otherwise the search paths are tried and a missing file is not an error.
func Load(v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, AppName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// Decode converts the merged settings in v into a Config.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Batch.Patterns = cleanPatterns(cfg.Batch.Patterns)
	return &cfg, nil
}

func cleanPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate reports every problem found in cfg as a single joined error.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is not a valid level", cfg.LogLevel))
	}
	if cfg.Wrap.Width < 1 {
		errs = append(errs, errors.New("wrap.width must be greater than 0"))
	}
	if err := ValidateBatch(&cfg.Batch); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateBatch checks the batch section on its own.
func ValidateBatch(b *BatchConfig) error {
	var errs []error

	if b.MaxConcurrency < 1 {
		errs = append(errs, errors.New("batch.max_concurrency must be greater than 0"))
	}
	if len(b.Patterns) == 0 {
		errs = append(errs, errors.New("batch.patterns must not be empty"))
	}
	for _, p := range b.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			errs = append(errs, fmt.Errorf("batch.patterns entry %q is malformed", p))
		}
	}
	if strings.TrimSpace(b.OutputNameFormat) == "" {
		errs = append(errs, errors.New("batch.output_name_format is required"))
	}
	if b.ArchiveInputs && strings.TrimSpace(b.ArchiveDir) == "" {
		errs = append(errs, errors.New("batch.archive_dir is required when archive_inputs is set"))
	}

	return errors.Join(errs...)
}
