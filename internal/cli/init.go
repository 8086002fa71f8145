package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dvgen/internal/scaffold"
	"github.com/vvka-141/dvgen/internal/tui"
	"github.com/vvka-141/dvgen/internal/tui/wizards"
)

var initCmd = &cobra.Command{
	Use:   "init <target_path>",
	Short: "Initialize a new dvgen project",
	Long: `Initialize a dvgen project into the specified directory.

The init command creates:
- dvgen.yaml project configuration
- model.yaml (empty, or an annotated example with the advanced template)
- README with the introspect/annotate/validate/export workflow

In an interactive terminal without flags, init launches a wizard that
walks template selection and optional connection setup. Target directory
must be empty or non-existent.

Examples:
  dvgen init .                    # Initialize in current directory
  dvgen init ./myproject          # Initialize in ./myproject
  dvgen init ./myproject -t advanced

Available templates:
  basic    - Empty model seeded on the first introspect run
  advanced - Annotated example model with hubs, links, and satellites

Use 'dvgen templates list' to see all available templates with descriptions.`,
	Args: cobra.MinimumNArgs(0),
	RunE: runInit,
}

var (
	initTemplate string
	initList     bool
	initNoWizard bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "basic", "Template to use (basic, advanced)")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates")
	initCmd.Flags().BoolVar(&initNoWizard, "no-wizard", false, "Skip the interactive setup wizard")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Handle --list flag
	if initList {
		return runTemplatesList(cmd, args)
	}

	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}
	verbose := getVerboseFlag(cmd)

	template := initTemplate
	if tui.IsInteractive() && !initNoWizard && !cmd.Flags().Changed("template") {
		result, err := wizards.RunInitWizard(targetPath)
		if err != nil {
			return fmt.Errorf("init wizard failed: %w", err)
		}
		if result.Cancelled {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return nil
		}
		targetPath = result.TargetDir
		template = result.Template

		if err := scaffoldProject(template, targetPath, verbose); err != nil {
			return err
		}

		if result.SetupConfig && !result.ConfigResult.Cancelled {
			if err := writeProjectConfig(targetPath, result.ConfigResult.Config); err != nil {
				return fmt.Errorf("failed to save dvgen.yaml: %w", err)
			}
			offerSavePgpass(&result.ConnResult.Config)
		}

		wizards.ShowInitComplete(targetPath, template, nil)
		return nil
	}

	if err := scaffoldProject(template, targetPath, verbose); err != nil {
		return err
	}

	// Display file tree
	tree, err := scaffold.BuildFileTree(targetPath)
	if err != nil {
		// Non-fatal - just skip tree display
		fmt.Fprintf(os.Stderr, "\n✓ Project initialized successfully in '%s' using template '%s'\n\n", targetPath, template)
	} else {
		fmt.Fprintf(os.Stderr, "\n✓ Project initialized successfully using template '%s'\n\n", template)
		fmt.Fprintln(os.Stderr, "Created structure:")
		fmt.Fprint(os.Stderr, tree)
	}

	// Next steps
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(os.Stderr, "  dvgen introspect --conn \"postgresql://user@host/sourcedb\"")
	fmt.Fprintln(os.Stderr, "  dvgen annotate")
	fmt.Fprintln(os.Stderr, "  dvgen export")

	return nil
}

// scaffoldProject validates the template name and materializes it.
func scaffoldProject(template, targetPath string, verbose bool) error {
	projectName := filepath.Base(targetPath)
	if projectName == "." || projectName == ".." {
		cwd, err := os.Getwd()
		if err == nil {
			projectName = filepath.Base(cwd)
		} else {
			projectName = "project"
		}
	}

	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	validTemplate := false
	for _, t := range templates {
		if t == template {
			validTemplate = true
			break
		}
	}

	if !validTemplate {
		return fmt.Errorf("invalid template '%s'. Available templates: %v\n\nUse 'dvgen templates list' for detailed descriptions", template, templates)
	}

	scaffolder := scaffold.NewScaffolder(verbose)
	if err := scaffolder.CreateProject(projectName, template, targetPath); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}
