package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"pricemachine/query"
)

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search product names in the merged price table.",
	Long: `Print the rows whose product name contains the given text, ignoring case.

The text is matched literally; several arguments are joined with a space.`,
	Example: `
  # Find all kinds of milk
  pricemachine search молоко

  # Search a phrase
  pricemachine search "rye bread"
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		result := query.Search(s.snapshot, strings.Join(args, " "), s.logger)
		return printSearchResult(cmd.OutOrStdout(), result, s)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
