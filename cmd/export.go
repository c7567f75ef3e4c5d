package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pricemachine/output"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the merged price table to HTML, CSV, Excel or SQLite",
	Long: `Export the merged price table, sorted by price per kilogram.

The output path defaults to export.path from the configuration.
Output format can be selected explicitly via --format or inferred from --output extension;
unknown extensions fall back to HTML.`,
	Example: `
  # Export to the configured HTML report
  pricemachine export

  # Export to CSV
  pricemachine export --output ./prices.csv

  # Export to Excel
  pricemachine export --output ./prices.xlsx

  # Force SQLite independent of extension
  pricemachine export --format sqlite --output ./prices.out
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		path, format := resolveExportTarget(exportOutput, exportFormat, s)
		if err := output.Export(s.snapshot, path, format, s.exportOptions(), s.logger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Rows: %d, Format: %s, File: %s\n", s.snapshot.Len(), format, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: html, csv, excel, sqlite (default: inferred from --output)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: export.path from config)")
}

// resolveExportTarget applies the flag values over the configured export
// settings. A format is only taken from config when the path is, too.
func resolveExportTarget(pathFlag, formatFlag string, s *session) (string, string) {
	path := strings.TrimSpace(pathFlag)
	format := strings.TrimSpace(formatFlag)
	if path == "" {
		path = s.cfg.Export.Path
		if format == "" {
			format = s.cfg.Export.Format
		}
	}
	if format == "" {
		format = output.DetectFormat(path)
	}
	return path, format
}
