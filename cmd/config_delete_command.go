package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pricemachine/config"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by pricemachine.

The command asks for confirmation unless --yes is given. Price lists and exports
are never touched. If no configuration file is active, the command returns an error.`,
	Example: `
  # Delete active config after confirming
  pricemachine config delete

  # Delete config at a custom path without asking
  pricemachine --configFile ./prices.yaml config delete --yes
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if strings.TrimSpace(path) == "" {
			path = config.Viper().ConfigFileUsed()
		}
		_, err := deleteConfigFile(cmd.InOrStdin(), cmd.OutOrStdout(), path, configDeleteYes)
		return err
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)

	configDeleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Delete without asking for confirmation")
}

// deleteConfigFile removes path after a "y" answer on in, or right away when
// assumeYes is set. It reports whether the file was removed.
func deleteConfigFile(in io.Reader, out io.Writer, path string, assumeYes bool) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, fmt.Errorf("no configuration file found")
	}
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("configuration file %s: %w", path, err)
	}

	if !assumeYes {
		fmt.Fprintf(out, "Delete configuration file %s? [y/N]: ", path)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			fmt.Fprintln(out, "Aborted, configuration file kept.")
			return false, nil
		}
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("error deleting configuration file: %w", err)
	}
	fmt.Fprintf(out, "Configuration file successfully deleted: %s\n", path)
	return true, nil
}
