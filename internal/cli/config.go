package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dvgen/internal/config"
	"github.com/vvka-141/dvgen/internal/tui"
	"github.com/vvka-141/dvgen/internal/tui/wizards"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Interactively create or edit dvgen.yaml configuration",
	Long: `Launches an interactive wizard to create or edit dvgen.yaml configuration.

The wizard guides you through:
  1. Source database connection setup (host, port, authentication)
  2. Model file location and introspected schemas
  3. Export defaults (output directory, format, strict mode)

This command requires an interactive terminal. For non-interactive use,
create dvgen.yaml manually or use environment variables.

Examples:
  # Create config in current directory
  dvgen config

  # Create config in a specific project directory
  dvgen config ./my-project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	// Require interactive terminal
	if !tui.IsInteractive() {
		return fmt.Errorf("config command requires an interactive terminal\n" +
			"For non-interactive use, create dvgen.yaml manually or use environment variables")
	}

	// Check if config already exists
	existingCfg, err := config.Load(targetDir)
	if err == nil && existingCfg != nil {
		fmt.Println("Found existing dvgen.yaml")
		if !tui.PromptContinue("Overwrite existing configuration?") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Run connection wizard
	connResult, err := wizards.RunConnectionWizard()
	if err != nil {
		return fmt.Errorf("connection wizard failed: %w", err)
	}
	if connResult.Cancelled {
		fmt.Println("Cancelled.")
		return nil
	}

	// Run config wizard with the connection
	cfgResult, err := wizards.RunConfigWizard(connResult.Config)
	if err != nil {
		return fmt.Errorf("config wizard failed: %w", err)
	}
	if cfgResult.Cancelled {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := writeProjectConfig(targetDir, cfgResult.Config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("\n✓ Configuration saved to %s/%s\n", targetDir, config.ConfigFileName)
	offerSavePgpass(&connResult.Config)
	return nil
}
