package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pricemachine configuration file values.",
	Long: `Create, edit, display, and delete the pricemachine configuration file.

The configuration stores:
- prices.directory / prices.extensions / prices.marker
- headers: raw column header -> name, price or weight
- columns: display labels of the table columns
- export.path / export.format / export.title
- log.level / log.format`,
	Example: `
  # Create default config in $HOME/.pricemachine.yaml
  pricemachine config create

  # Show active config and source file
  pricemachine config show

  # Open active config in editor (creates example if missing)
  pricemachine config edit

  # Delete active config file
  pricemachine config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
