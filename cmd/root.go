// =============================================================================
// Sales Reporter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with an input
// file and a report command, the root command runs the report; the remaining
// commands are informational.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salesreport <inputFile> <command...>)
//   ├── formatsCmd (salesreport formats)
//   └── versionCmd (salesreport version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, output flags)
//   2. Layering configuration: file < environment < flags
//   3. Setting up logging
//
// Flag parsing stops at the first positional argument, so report parameters
// such as "-money -max" reach the command parser untouched.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/sales-reporter/internal/config"
	"github.com/ginjaninja78/sales-reporter/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix prefixes every environment override, e.g. SALESREPORT_OUTPUT_DIR.
const envPrefix = "SALESREPORT"

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// When empty, config.DefaultConfigFile is used if it exists.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// outputFile is the exact output path of a single-file report.
var outputFile string

// outputDir overrides the configured output directory.
var outputDir string

// outputFormat overrides the configured output format.
var outputFormat string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "salesreport [flags] <inputFile> <command...>",

	Short: "Sales Reporter - compute revenue reports from point-of-sale exports",

	Long: `Sales Reporter reads a file of point-of-sale transactions and writes one
report computed from it.

Commands:
  time [HH:MM-HH:MM]            revenue per hour of day, optionally restricted
  Daily <shop name>             revenue per weekday for one shop
  city -money|-items -max|-min  the city or cities with the extreme value
  full                          every transaction, one file per shop

Supported inputs are listed by 'salesreport formats'.

Example Usage:
  salesreport sales.csv time 20:00-00:00
  salesreport --format json sales.csv Daily Kwiki Mart
  salesreport -o cities.xml sales.xlsx city -money -max`,

	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("%w: expected <inputFile> <command...>, got %d argument(s)", types.ErrInvalidCommand, len(args))
		}
		return nil
	},

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, args)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits with the code matching the error.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitCode(err))
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is "+config.DefaultConfigFile+" if present)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.Flags().StringVarP(
		&outputFile,
		"output",
		"o",
		"",
		"Write a single-file report to this path",
	)

	rootCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Directory for report files (env "+envPrefix+"_OUTPUT_DIR)",
	)

	rootCmd.Flags().StringVar(
		&outputFormat,
		"format",
		"",
		"Output format: xml, json or yaml (env "+envPrefix+"_FORMAT)",
	)

	rootCmd.Flags().SetInterspersed(false)
}

// =============================================================================
// CONFIGURATION AND LOGGING
// =============================================================================

// loadConfig reads the configuration file and applies environment and flag
// overrides on top of it.
//
// PARAMETERS:
//   - flags: The parsed flags of the running command.
//
// RETURNS:
//   - The validated configuration.
//   - An error if the file cannot be loaded or an override is invalid.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	path, required := config.DefaultConfigFile, false
	if cfgFile != "" {
		path, required = cfgFile, true
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	v := viper.New()

	overrides := []struct {
		key    string
		env    string
		flag   string
		target *string
	}{
		{key: "output_dir", env: envPrefix + "_OUTPUT_DIR", flag: "output-dir", target: &cfg.OutputDir},
		{key: "output_format", env: envPrefix + "_FORMAT", flag: "format", target: &cfg.OutputFormat},
		{key: "log_level", env: envPrefix + "_LOG_LEVEL", target: &cfg.LogLevel},
	}

	for _, o := range overrides {
		v.SetDefault(o.key, *o.target)
		if err := v.BindEnv(o.key, o.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", o.env, err)
		}
		if o.flag != "" {
			if flag := flags.Lookup(o.flag); flag != nil {
				if err := v.BindPFlag(o.key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind --%s: %w", o.flag, err)
				}
			}
		}
		*o.target = v.GetString(o.key)
	}

	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.OutputFormat == "yml" {
		cfg.OutputFormat = "yaml"
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the console logger for one run. Every entry carries the
// run id.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Str("run_id", uuid.New().String()).
		Logger()
}
