// =============================================================================
// Sales Reporter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and validating the reporter's
// configuration. Configuration comes from three layers, lowest priority first:
//
//   1. Built-in defaults (Default)
//   2. The YAML configuration file (Load)
//   3. Environment variables and command-line flags (applied by the cmd package)
//
// The configuration file is optional. When the default path does not exist the
// built-in defaults are used; an explicitly requested file must exist.
//
// EXAMPLE (salesreport.yaml):
//
//   output_dir: ./reports
//   output_format: xml
//   file_name_format: "{command}"
//   log_level: info
//   week_start: monday
//   timezone: Local
//   csv:
//     delimiter: ","
//     header_rows: 1
//     encoding: utf-8
//   xlsx:
//     sheet: ""
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up when --config is not given.
const DefaultConfigFile = "salesreport.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the reporter configuration.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory report files are written to.
	// Default: "."
	OutputDir string `yaml:"output_dir" validate:"required"`

	// OutputFormat selects the report file format.
	// Valid values: "xml", "json", "yaml"
	// Default: "xml"
	OutputFormat string `yaml:"output_format" validate:"oneof=xml json yaml"`

	// FileNameFormat defines the name of single-file reports.
	// Placeholders:
	//   {command}   - The command as a slug, e.g. "city-money-max"
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {input}     - Input file name without extension
	// The extension of the output format is appended when missing.
	// Default: "{command}"
	FileNameFormat string `yaml:"file_name_format" validate:"required"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// WeekStart is the first weekday of the daily revenue report.
	// Valid values: "monday", "sunday"
	// Default: "monday"
	WeekStart string `yaml:"week_start" validate:"oneof=monday sunday"`

	// Timezone is the location applied to input timestamps that carry no
	// offset of their own. Timestamps with an offset keep it.
	// Default: "Local"
	Timezone string `yaml:"timezone" validate:"required"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// CSV contains settings for delimited-text input.
	CSV CSVSettings `yaml:"csv"`

	// XLSX contains settings for spreadsheet input.
	XLSX XLSXSettings `yaml:"xlsx"`
}

// CSVSettings contains settings for parsing CSV input files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), ";" (semicolon), "|" (pipe), "\t" or "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter" validate:"required"`

	// HeaderRows is the number of header lines discarded before data.
	// Default: 1
	HeaderRows int `yaml:"header_rows" validate:"min=0"`

	// Encoding is the character encoding of the input file.
	// Any WHATWG encoding label is accepted, e.g. "utf-8", "windows-1252".
	// Default: "utf-8"
	Encoding string `yaml:"encoding" validate:"required"`

	// TrimLeadingSpace ignores leading white space in a field.
	// Default: false
	TrimLeadingSpace bool `yaml:"trim_leading_space"`
}

// XLSXSettings contains settings for reading spreadsheet input files.
type XLSXSettings struct {
	// Sheet is the worksheet holding the transactions.
	// Default: "" (the first sheet)
	Sheet string `yaml:"sheet"`

	// HeaderRows is the number of header rows discarded before data.
	// Default: 1
	HeaderRows int `yaml:"header_rows" validate:"min=0"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every option set to its default.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	// header_rows: 0 is a valid setting, so the default lives here and Load
	// unmarshals on top of it instead of patching zero values afterwards.
	config.CSV.HeaderRows = 1
	config.XLSX.HeaderRows = 1
	return config
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: Whether a missing file is an error. When false and the file
//     does not exist, the defaults are returned.
//
// RETURNS:
//   - A pointer to the validated Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string, required bool) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.OutputFormat == "" {
		config.OutputFormat = "xml"
	}
	if config.FileNameFormat == "" {
		config.FileNameFormat = "{command}"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.WeekStart == "" {
		config.WeekStart = "monday"
	}
	if config.Timezone == "" {
		config.Timezone = "Local"
	}

	// CSV settings defaults.
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.CSV.Encoding == "" {
		config.CSV.Encoding = "utf-8"
	}

	config.OutputFormat = strings.ToLower(config.OutputFormat)
	config.LogLevel = strings.ToLower(config.LogLevel)
	config.WeekStart = strings.ToLower(config.WeekStart)
}

// =============================================================================
// VALIDATION
// =============================================================================

var validate = validator.New()

// Validate checks every option against its allowed values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			messages := make([]string, 0, len(fieldErrors))
			for _, fe := range fieldErrors {
				messages = append(messages, fmt.Sprintf("%s: failed '%s' (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.New(strings.Join(messages, "; "))
		}
		return err
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location returns the time zone applied to timestamps without an offset.
func (c *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return location, nil
}

// FirstWeekday returns the weekday the daily revenue report starts on.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}
