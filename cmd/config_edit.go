package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"pricemachine/config"
	"pricemachine/importer"
	"pricemachine/pricelist"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active pricemachine config file in your editor.

Editor selection order:
1) $VISUAL
2) $EDITOR
3) vi

If no config file exists yet, this command creates one with an example template first.
After the editor exits the file is validated, including the header mapping: two
spellings that compare equal (case, spaces, "_" and "-" are ignored) must map to
the same field.`,
	Example: `
  # Edit active config
  pricemachine config edit

  # Edit with a specific editor
  EDITOR="code --wait" pricemachine config edit
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cfgFile, config.Viper().ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := writeConfigTemplate(path, config.ExampleYAML(), false)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "No config file found. Created example config at: %s\n", path)
		}

		editor, err := editorCommand(os.Getenv, path)
		if err != nil {
			return err
		}
		editor.Stdin = cmd.InOrStdin()
		editor.Stdout = cmd.OutOrStdout()
		editor.Stderr = cmd.ErrOrStderr()
		if err := editor.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading edited config failed: %w", err)
		}
		cfg, err := checkEditedConfig(cmd.OutOrStdout(), content)
		if err != nil {
			return fmt.Errorf("config validation failed in %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved and validated: %s\n", path)
		reportPriceDirectory(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}

// checkEditedConfig validates content and builds the header mapping the next
// run would use, then prints how many spellings feed each field.
func checkEditedConfig(out io.Writer, content []byte) (*config.Config, error) {
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, err
	}
	mapper, err := importer.NewHeaderMapper(cfg.Headers)
	if err != nil {
		return nil, err
	}

	perField := make(map[pricelist.Field]int, len(pricelist.InputFields))
	for _, target := range cfg.Headers {
		field, _ := pricelist.ParseField(target)
		perField[field]++
	}
	parts := make([]string, 0, len(pricelist.InputFields))
	for _, field := range pricelist.InputFields {
		parts = append(parts, fmt.Sprintf("%s %d", field, perField[field]))
	}
	fmt.Fprintf(out, "Header mapping: %d distinct headers (%s)\n", mapper.Len(), strings.Join(parts, ", "))
	return cfg, nil
}

// editorCommand builds the editor invocation for path from $VISUAL, then
// $EDITOR, then vi. The variable may carry arguments, e.g. "code --wait".
func editorCommand(getenv func(string) string, path string) (*exec.Cmd, error) {
	value := "vi"
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if candidate := strings.TrimSpace(getenv(name)); candidate != "" {
			value = candidate
			break
		}
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return exec.Command(fields[0], append(fields[1:], path)...), nil
}
