package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/presentation"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats [PATH...]",
	Short: "Count words, characters and reading time",
	Long: `Count words, characters, lines and reading time for each PATH. Directories
are walked for markdown and text files, skipping hidden entries. With no
PATH the current directory is counted.

Examples:
  inkwell stats chapter-01.md
  inkwell stats manuscript/ --json | jq '.total.words'`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	rep, err := document.Stat(args...)
	if err != nil {
		return err
	}
	formatter := presentation.NewFormatter(cmd.OutOrStdout())
	dto := presentation.FromReport(rep)
	if statsJSON {
		return formatter.FormatReportJSON(dto)
	}
	return formatter.FormatReport(dto)
}
