/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pricemachine/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pricemachine",
	Short: "Merge product price lists and rank them by price per kilogram.",
	Long: `
**********************************************
*              PRICE MACHINE                 *
**********************************************

This CLI reads every price list in the configured directory, maps the varying
column headers onto one schema (name, price, weight), computes the price per
kilogram and lets you browse, search and export the merged table.

Without a subcommand an interactive menu is started.

Supported input formats:
- CSV: .csv
- Excel: .xlsx (add ".xlsx" to prices.extensions)
`,
	Example: `
  # Create configuration file
  pricemachine config create

  # Interactive menu
  pricemachine

  # Print the merged table
  pricemachine show

  # Search product names
  pricemachine search "молоко"

  # Export to the configured HTML file or another format
  pricemachine export
  pricemachine export --output ./prices.xlsx

  # Browse the table in a local web page
  pricemachine serve --port 9090
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return runMenu(cmd.InOrStdin(), cmd.OutOrStdout(), s)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.pricemachine.yaml, then ./.pricemachine.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	v := config.Viper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".pricemachine")
	}

	v.SetEnvPrefix("PRICEMACHINE")
	v.SetEnvKeyReplacer(config.EnvKeyReplacer())
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: pricemachine config create")
	}
}
