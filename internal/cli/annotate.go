package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/internal/tui"
	"github.com/vvka-141/dvgen/internal/tui/wizards"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [project_path]",
	Short: "Interactively annotate the model",
	Long: `Annotate launches an interactive editor over model.yaml.

The editor walks the introspected tables and lets you:
  - assign a business concept per table
  - compose ordered business-key groups (column order determines
    hashing order downstream)
  - compose link groups referencing other tables' hashkeys
  - compose hashdiff groups with explicit or select-all column sets
  - flag record-source and load-date technical columns

Changes are written back to model.yaml only when you save. This
command requires an interactive terminal; edit model.yaml directly
for scripted workflows.

Examples:
  dvgen annotate
  dvgen annotate ./my-vault-project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}

	if !tui.IsInteractive() {
		return fmt.Errorf("annotate command requires an interactive terminal\n" +
			"For non-interactive use, edit model.yaml directly")
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

	result, err := wizards.RunAnnotateWizard(m)
	if err != nil {
		return fmt.Errorf("annotation editor failed: %w", err)
	}

	if result.Cancelled || !result.Saved {
		fmt.Fprintln(os.Stderr, "Cancelled. Model unchanged.")
		return nil
	}

	if validation := model.Validate(result.Model); validation.HasErrors() {
		fmt.Fprintln(os.Stderr, "Warning: model has validation errors:")
		for _, msg := range validation.Errors {
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", msg)
		}
	}

	if err := model.Save(modelPath, result.Model); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Saved %s\n", modelPath)
	return nil
}
