// =============================================================================
// Sales Reporter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sales Reporter CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   salesreport <inputFile> <command...>  - Compute one report
//   salesreport formats                   - List supported formats
//   salesreport version                   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Parsing, streaming, reporting and rendering
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sales-reporter/cmd"
)

func main() {
	cmd.Execute()
}
