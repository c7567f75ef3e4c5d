package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pricemachine/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the effective configuration (file, environment and defaults merged)
and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  pricemachine config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Invalid config:", err)
			return nil
		}
		return printConfig(cmd.OutOrStdout(), config.Viper().ConfigFileUsed(), cfg)
	},
}

type shownConfig struct {
	Prices struct {
		Directory  string   `yaml:"directory"`
		Extensions []string `yaml:"extensions"`
		Marker     string   `yaml:"marker"`
	} `yaml:"prices"`
	Headers map[string]string `yaml:"headers"`
	Columns map[string]string `yaml:"columns"`
	Export  struct {
		Path   string `yaml:"path"`
		Format string `yaml:"format"`
		Title  string `yaml:"title"`
	} `yaml:"export"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func printConfig(out io.Writer, configPath string, cfg *config.Config) error {
	if configPath != "" {
		fmt.Fprintln(out, "Config file loaded from:", configPath)
	} else {
		fmt.Fprintln(out, "No config file loaded, showing defaults.")
	}
	fmt.Fprintln(out, "Configuration:")

	var shown shownConfig
	shown.Prices.Directory = cfg.Prices.Directory
	shown.Prices.Extensions = cfg.Prices.Extensions
	shown.Prices.Marker = cfg.Prices.Marker
	shown.Headers = cfg.Headers
	shown.Columns = make(map[string]string)
	for field, label := range cfg.Labels() {
		shown.Columns[string(field)] = label
	}
	shown.Export.Path = cfg.Export.Path
	shown.Export.Format = cfg.Export.Format
	shown.Export.Title = cfg.Export.Title
	shown.Log.Level = cfg.Log.Level
	shown.Log.Format = cfg.Log.Format

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(shown); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return encoder.Close()
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
