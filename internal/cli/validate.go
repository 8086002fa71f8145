package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

var validateCmd = &cobra.Command{
	Use:   "validate [project_path]",
	Short: "Validate the annotated model",
	Long: `Validate loads model.yaml and checks its annotations without touching
the database or writing any files.

Checks include:
  - every effective hashkey name is unique across the model
  - every link reference resolves to a declared hashkey
  - every group member names an existing column
  - business-key and hashdiff groups are non-empty and carry a concept

A valid model is guaranteed to export without error diagnostics for
these rules. Run validate before export in CI to fail fast.

Examples:
  dvgen validate
  dvgen validate ./my-vault-project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}

	projectCfg, err := loadProjectConfig(projectPath)
	if err != nil {
		return err
	}
	modelPath := resolveModelPath(projectPath, projectCfg)

	m, err := model.Load(modelPath)
	if err != nil {
		if errors.Is(err, dvgen.ErrModelNotFound) {
			return fmt.Errorf("%w (run 'dvgen introspect' first)", err)
		}
		return fmt.Errorf("failed to load model: %w", err)
	}

	result := model.Validate(m)
	if result.HasErrors() {
		for _, msg := range result.Errors {
			fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
		}
		return fmt.Errorf("%w: %d error(s)", dvgen.ErrModelInvalid, len(result.Errors))
	}

	fmt.Fprintf(os.Stderr, "✓ %s is valid (%d table(s))\n", modelPath, len(m.Tables))
	return nil
}
