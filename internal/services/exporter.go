package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/dvgen/internal/export"
	"github.com/vvka-141/dvgen/internal/files/filesystem"
	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

// ExportService compiles an annotated model into the ordered relation CSV
// set and writes it to the output directory.
// Thread-Safety: NOT safe for concurrent Export() calls on the same instance.
// Create separate instances for concurrent runs.
type ExportService struct {
	fs        filesystem.FileSystemProvider
	out       filesystem.Writer
	approver  dvgen.Approver
	logger    dvgen.Logger
	loadModel func(string) (*model.Model, error)
}

// NewExportService creates a new ExportService with all dependencies injected.
// Panics on nil dependencies (see NewIntrospectionService for the boundary
// rationale).
func NewExportService(
	fs filesystem.FileSystemProvider,
	out filesystem.Writer,
	approver dvgen.Approver,
	logger dvgen.Logger,
) *ExportService {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if out == nil {
		panic("out cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ExportService{
		fs:        fs,
		out:       out,
		approver:  approver,
		logger:    logger,
		loadModel: model.Load,
	}
}

// Export runs the full pipeline: load, validate, compile, write.
// It returns the compiler diagnostics alongside any terminal error so
// callers can report omissions even for failed runs.
func (s *ExportService) Export(ctx context.Context, config dvgen.ExportConfig) ([]export.Diagnostic, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Loading model from %s", config.ModelPath)
	m, err := s.loadModel(config.ModelPath)
	if err != nil {
		return nil, err
	}

	if result := model.Validate(m); result.HasErrors() {
		return nil, fmt.Errorf("%w: %s", dvgen.ErrModelInvalid, result.ErrorString())
	}

	if err := s.checkOverwrite(ctx, config); err != nil {
		return nil, err
	}

	relations, diags := compileRelations(m, config)
	s.reportDiagnostics(diags)

	if config.Strict && export.HasErrors(diags) {
		return diags, fmt.Errorf("%w: %d error diagnostic(s) in strict mode", dvgen.ErrExportFailed, countErrors(diags))
	}

	if err := export.NewWriter(s.out, s.logger).WriteAll(config.OutputDir, relations); err != nil {
		return diags, err
	}

	s.logger.Info("✓ Exported %d relation(s) to %s", len(relations), config.OutputDir)
	return diags, nil
}

// checkOverwrite guards against clobbering a previous export. The manifest
// marks a directory as an export target; its absence means a clean write.
func (s *ExportService) checkOverwrite(ctx context.Context, config dvgen.ExportConfig) error {
	if _, err := s.fs.Stat(filepath.Join(config.OutputDir, dvgen.FileManifest)); err != nil {
		return nil
	}

	if !config.Overwrite {
		return fmt.Errorf("output directory %s already contains an export; use --overwrite to replace it: %w",
			config.OutputDir, dvgen.ErrInvalidConfig)
	}

	s.logger.Verbose("Output directory %s contains a previous export. Requesting approval for overwrite.", config.OutputDir)
	approved, err := s.approver.RequestApproval(ctx, config.OutputDir)
	if err != nil {
		return fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return dvgen.ErrApprovalDenied
	}

	return nil
}

// compileRelations runs the compilers in canonical emission order.
func compileRelations(m *model.Model, config dvgen.ExportConfig) ([]export.Relation, []export.Diagnostic) {
	if config.Denormalized {
		rel, diags := export.Denormalized(m)
		return []export.Relation{rel}, diags
	}

	var diags []export.Diagnostic

	registry, d := export.BuildHashkeyRegistry(m)
	diags = append(diags, d...)

	sources, d := export.Sources(m)
	diags = append(diags, d...)

	hubs, d := export.Hubs(m)
	diags = append(diags, d...)

	satellites, d := export.Satellites(m, export.Options{ImplicitSatellites: config.ImplicitSatellites})
	diags = append(diags, d...)

	links, d := export.Links(m, registry)
	diags = append(diags, d...)

	return []export.Relation{sources, hubs, satellites, links}, diags
}

func (s *ExportService) reportDiagnostics(diags []export.Diagnostic) {
	for _, d := range diags {
		switch d.Severity {
		case export.SeverityError:
			s.logger.Error("%s", d)
		case export.SeverityWarning:
			s.logger.Info("%s", d)
		default:
			s.logger.Verbose("%s", d)
		}
	}
}

func countErrors(diags []export.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == export.SeverityError {
			n++
		}
	}
	return n
}
