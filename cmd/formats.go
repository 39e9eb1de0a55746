package cmd

import (
	"fmt"

	"github.com/ginjaninja78/sales-reporter/internal/render"
	"github.com/ginjaninja78/sales-reporter/internal/stream"
	"github.com/spf13/cobra"
)

// formatsCmd lists the input formats the reporter recognizes and the output
// formats it can write.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input and output formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Input formats:")
		for _, info := range stream.Formats() {
			status := "supported"
			if !info.Implemented {
				status = "not implemented"
			}
			fmt.Fprintf(out, "  %-6s %-5s %s\n", info.Extension, info.Format, status)
		}

		fmt.Fprintln(out, "Output formats:")
		for _, format := range []render.Format{render.FormatXML, render.FormatJSON, render.FormatYAML} {
			fmt.Fprintf(out, "  %-6s %s\n", format.Extension(), format)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
