package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/primerlint/internal/cli/output"
	intconfig "github.com/leapstack-labs/primerlint/internal/config"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules" // register rules
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var stdout bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a primerlint.yaml configuration file",
		Long: `Create a primerlint.yaml in the given directory (default: current).

The file lists the default include and exclude patterns, the severity of
every rule and the options each rule accepts, ready to be edited.`,
		Example: `  # Initialize in current directory
  primerlint init

  # Initialize another project
  primerlint init packages/app

  # Force overwrite existing config
  primerlint init --force

  # Print the configuration instead of writing it
  primerlint init --stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode, err := output.ParseMode(cfg.OutputFormat)
			if err != nil {
				return err
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			if stdout {
				return renderConfigTemplate(r.Writer(), defaultTemplateData())
			}
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the configuration instead of writing a file")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Any of the recognized names counts as an existing config
	for _, name := range intconfig.ConfigFileNames {
		existing := filepath.Join(dir, name)
		if _, err := os.Stat(existing); err == nil && !force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", existing)
		}
	}

	var buf bytes.Buffer
	if err := renderConfigTemplate(&buf, defaultTemplateData()); err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileNames[0])
	if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.Success("Created " + configPath)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust include, exclude and rule severities in " + intconfig.ConfigFileNames[0])
	r.Println("  2. Run 'primerlint lint' to check the project")
	r.Println("  3. Run 'primerlint doctor' for a health report")

	return nil
}
