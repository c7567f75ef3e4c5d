package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pricemachine/config"
	"pricemachine/importer"
)

var (
	configCreateDir   string
	configCreateForce bool
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

An existing file is left untouched unless --force is given. After writing, the
command reports how many price lists the configured directory currently holds.`,
	Example: `
  # Create default config at $HOME/.pricemachine.yaml
  pricemachine config create

  # Point the new config at another price directory
  pricemachine config create --dir ./supplier-lists

  # Replace an existing config with the template
  pricemachine config create --force
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cfgFile, config.Viper().ConfigFileUsed())
		if err != nil {
			return err
		}
		return createConfig(cmd.OutOrStdout(), path, configCreateDir, configCreateForce)
	},
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().StringVar(&configCreateDir, "dir", "", "Price directory written into the template (default: prices)")
	configCreateCmd.Flags().BoolVar(&configCreateForce, "force", false, "Overwrite an existing config file")
}

func createConfig(out io.Writer, path, pricesDir string, force bool) error {
	content := config.ExampleYAMLFor(pricesDir)
	written, err := writeConfigTemplate(path, content, force)
	if err != nil {
		return err
	}
	if !written {
		fmt.Fprintf(out, "Config file already exists at: %s (use --force to replace it)\n", path)
		return nil
	}

	fmt.Fprintf(out, "New config file created at: %s\n", path)
	cfg, err := config.ValidateYAMLContent([]byte(content))
	if err != nil {
		return fmt.Errorf("validate new config %s: %w", path, err)
	}
	reportPriceDirectory(out, cfg)
	return nil
}

// configFilePath picks the file the config commands work on: the --configFile
// flag, then the file viper loaded, then $HOME/.pricemachine.yaml.
func configFilePath(flagValue, loaded string) (string, error) {
	for _, candidate := range []string{flagValue, loaded} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".pricemachine.yaml"), nil
}

// writeConfigTemplate writes content to path unless a file is already there
// and force is false. It reports whether the file was written.
func writeConfigTemplate(path, content string, force bool) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		return false, nil
	case err != nil && !os.IsNotExist(err):
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("writing config file failed: %w", err)
	}
	return true, nil
}

// reportPriceDirectory prints what the next run would load with cfg.
func reportPriceDirectory(out io.Writer, cfg *config.Config) {
	dir := cfg.Prices.Directory
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fmt.Fprintf(out, "Price directory %s does not exist yet.\n", dir)
		return
	}

	loader := importer.NewLoader(cfg.Prices.Extensions, cfg.Prices.Marker, slog.New(slog.NewTextHandler(io.Discard, nil)))
	fmt.Fprintf(out, "Price directory %s: %d price file(s) match %s with %q in the name.\n",
		dir,
		len(loader.Discover(dir)),
		strings.Join(cfg.Prices.Extensions, ", "),
		cfg.Prices.Marker,
	)
}
