// =============================================================================
// Sales Reporter - Report Run
// =============================================================================
//
// This file runs one report for the root command.
//
// PROCESSING PIPELINE:
//   1. Load configuration and set up logging
//   2. Check the input file (missing or empty means no transactions)
//   3. Detect the input format from the file name
//   4. Parse the report command
//   5. Open the transaction stream
//   6. Compute the report
//   7. Render and write every output file, or none
//
// The checks run in this order so a bad file is reported before a bad command.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ginjaninja78/sales-reporter/internal/command"
	"github.com/ginjaninja78/sales-reporter/internal/render"
	"github.com/ginjaninja78/sales-reporter/internal/report"
	"github.com/ginjaninja78/sales-reporter/internal/stream"
	"github.com/ginjaninja78/sales-reporter/internal/types"
	"github.com/ginjaninja78/sales-reporter/pkg/utils"
	"github.com/spf13/cobra"
)

// runReport is the main function that orchestrates one report run.
func runReport(cmd *cobra.Command, args []string) error {
	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	inputPath := args[0]
	logger.Debug().Str("input", inputPath).Strs("command", args[1:]).Msg("starting report run")

	// =========================================================================
	// STEP 2: CHECK INPUT FILE
	// =========================================================================

	if err := utils.CheckInputFile(inputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, utils.ErrEmptyFile) {
			return fmt.Errorf("%w: %v", types.ErrNoTransactionsFound, err)
		}
		return fmt.Errorf("failed to check input file: %w", err)
	}

	// =========================================================================
	// STEP 3: DETECT INPUT FORMAT
	// =========================================================================

	format := stream.DetectFormat(inputPath)
	if format == stream.FormatNone {
		return fmt.Errorf("%w: unsupported input format for %s", types.ErrNoTransactionsFound, filepath.Base(inputPath))
	}

	// =========================================================================
	// STEP 4: PARSE COMMAND
	// =========================================================================

	reportCmd, err := command.Parse(args[1:])
	if err != nil {
		return err
	}

	if outputFile != "" && reportCmd.Kind() == command.KindFull {
		return fmt.Errorf("--output names a single file but %q writes one file per shop; use --output-dir", reportCmd)
	}

	outFormat, err := render.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	logger.Info().
		Str("input", filepath.Base(inputPath)).
		Stringer("format", format).
		Stringer("command", reportCmd).
		Msg("running report")

	// =========================================================================
	// STEP 5: OPEN STREAM
	// =========================================================================

	opts, err := stream.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	transactions, err := stream.Open(inputPath, format, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := transactions.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close input")
		}
	}()

	// =========================================================================
	// STEP 6: COMPUTE REPORT
	// =========================================================================

	engine := report.NewEngine(logger, report.Options{FirstWeekday: cfg.FirstWeekday()})

	result, err := engine.Run(transactions, reportCmd)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 7: RENDER AND WRITE
	// =========================================================================

	renderer := &render.Renderer{
		Format:         outFormat,
		FileNameFormat: cfg.FileNameFormat,
	}
	dir := cfg.OutputDir
	if outputFile != "" {
		dir = filepath.Dir(outputFile)
		renderer.Output = filepath.Base(outputFile)
	}

	files, err := renderer.Render(result, reportCmd, inputPath)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	paths, err := utils.NewFileManager(dir).WriteAll(files)
	if err != nil {
		return err
	}

	for _, path := range paths {
		logger.Debug().Str("path", path).Msg("wrote report file")
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	logger.Info().Int("files", len(paths)).Str("dir", dir).Msg("report written")

	return nil
}
