package cmd

import (
	"github.com/spf13/cobra"

	"pricemachine/output"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged price table.",
	Long: `Load every price list, compute the price per kilogram and print the table
sorted from the cheapest to the most expensive price per kilogram.`,
	Example: `
  # Print the merged table
  pricemachine show
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return output.WriteTable(cmd.OutOrStdout(), s.snapshot.Records(), s.labels)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
