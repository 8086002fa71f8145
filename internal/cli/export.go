package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dvgen/internal/files/filesystem"
	"github.com/vvka-141/dvgen/internal/logging"
	"github.com/vvka-141/dvgen/internal/services"
	"github.com/vvka-141/dvgen/internal/ui"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

var exportCmd = &cobra.Command{
	Use:   "export [project_path]",
	Short: "Compile the model into relation CSV files",
	Long: `Export loads the annotated model, validates it, compiles the Data Vault
relations, and writes them as CSV files plus a manifest.

Relational format (default) writes four files:
  source_data.csv        one row per source table
  standard_hub.csv       one row per business-key group
  standard_satellite.csv one row per hashdiff group member column
  standard_link.csv      one row per link group reference

Denormalized format writes a single columns.csv with one row per
column and its complete annotation context.

Exports are deterministic: the same model always produces the same
files in the same row order.

Examples:
  # Export to ./export using dvgen.yaml defaults
  dvgen export

  # Denormalized single-file export
  dvgen export --format denormalized

  # Fail the build on error diagnostics
  dvgen export --strict

  # Replace a previous export without prompting
  dvgen export --overwrite --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

type exportFlagValues struct {
	format             string
	outputDir          string
	modelPath          string
	implicitSatellites bool
	strict             bool
	overwrite          bool
	force              bool
}

var exportFlags exportFlagValues

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.format, "format", "relational",
		"Export format: relational|denormalized")
	exportCmd.Flags().StringVarP(&exportFlags.outputDir, "output", "o", "",
		"Output directory (default: export.output_dir from dvgen.yaml, or ./export)")
	exportCmd.Flags().StringVarP(&exportFlags.modelPath, "model", "m", "",
		"Model file (default: model.path from dvgen.yaml, or ./model.yaml)")
	exportCmd.Flags().BoolVar(&exportFlags.implicitSatellites, "implicit-satellites", false,
		"Synthesize one satellite per table when no hashdiff groups are declared")
	exportCmd.Flags().BoolVar(&exportFlags.strict, "strict", false,
		"Treat error diagnostics (duplicate hashkeys, unresolved links) as failures")
	exportCmd.Flags().BoolVar(&exportFlags.overwrite, "overwrite", false,
		"Replace an existing export in the output directory\n"+
			"Requires interactive confirmation unless --force is used")
	exportCmd.Flags().BoolVar(&exportFlags.force, "force", false,
		"Skip interactive approval prompt for destructive operations\n"+
			"Use with --overwrite for CI/CD pipelines")

	_ = exportCmd.RegisterFlagCompletionFunc("format", completeExportFormats)
}

// buildExportConfig builds an ExportConfig from CLI flags and dvgen.yaml.
// Extracted for testability.
func buildExportConfig(cmd *cobra.Command, projectPath string, verbose bool) (dvgen.ExportConfig, error) {
	projectCfg, err := loadProjectConfig(projectPath)
	if err != nil {
		return dvgen.ExportConfig{}, err
	}

	denormalized := false
	switch exportFlags.format {
	case "", "relational":
	case "denormalized":
		denormalized = true
	default:
		return dvgen.ExportConfig{}, fmt.Errorf("invalid --format '%s': must be relational or denormalized: %w",
			exportFlags.format, dvgen.ErrInvalidConfig)
	}
	if projectCfg != nil && !cmd.Flags().Changed("format") && projectCfg.Export.Denormalized {
		denormalized = true
	}

	modelPath := exportFlags.modelPath
	if modelPath == "" {
		modelPath = resolveModelPath(projectPath, projectCfg)
	}

	outputDir := exportFlags.outputDir
	if outputDir == "" {
		outputDir = resolveOutputDir(projectPath, projectCfg)
	}

	implicitSatellites := exportFlags.implicitSatellites
	if projectCfg != nil && !cmd.Flags().Changed("implicit-satellites") {
		implicitSatellites = projectCfg.Export.ImplicitSatellites
	}
	strict := exportFlags.strict
	if projectCfg != nil && !cmd.Flags().Changed("strict") {
		strict = projectCfg.Export.Strict
	}

	return dvgen.ExportConfig{
		ModelPath:          modelPath,
		OutputDir:          outputDir,
		Denormalized:       denormalized,
		ImplicitSatellites: implicitSatellites,
		Strict:             strict,
		Overwrite:          exportFlags.overwrite,
		Force:              exportFlags.force,
		Verbose:            verbose,
	}, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}
	verbose := getVerboseFlag(cmd)

	config, err := buildExportConfig(cmd, projectPath, verbose)
	if err != nil {
		return err
	}

	var approver dvgen.Approver
	if exportFlags.force {
		approver = ui.NewForcedApprover(verbose)
	} else {
		approver = ui.NewInteractiveApprover(verbose)
	}
	logger := logging.NewConsoleLogger(verbose)
	fs := filesystem.NewOSFileSystem()

	exporter := services.NewExportService(fs, fs, approver, logger)

	if _, err := exporter.Export(context.Background(), config); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	return nil
}
