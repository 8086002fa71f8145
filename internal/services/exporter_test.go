package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vvka-141/dvgen/internal/export"
	"github.com/vvka-141/dvgen/internal/files/filesystem"
	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

func exportModel() *model.Model {
	return &model.Model{Tables: []model.Table{{
		Schema:          "stg",
		Name:            "customer",
		BusinessConcept: "Customer",
		Groups: []model.BusinessKeyGroup{
			{HashkeyName: "hk_customer_h", Columns: []string{"customer_id"}},
		},
		Hashdiffs: []model.HashdiffGroup{
			{Name: "hd_customer_sat", BusinessConcept: "Customer", Selection: model.SelectAllExcept()},
		},
		Columns: []model.Column{
			{Name: "customer_id", OrdinalPosition: 1},
			{Name: "customer_name", OrdinalPosition: 2},
			{Name: "rec_src", OrdinalPosition: 3, RecordSource: true},
			{Name: "load_dts", OrdinalPosition: 4, LoadDate: true},
		},
	}}}
}

func duplicateHashkeyModel() *model.Model {
	table := func(name string) model.Table {
		return model.Table{
			Schema: "stg",
			Name:   name,
			Groups: []model.BusinessKeyGroup{
				{HashkeyName: "hk_customer_h", Columns: []string{"customer_id"}},
			},
			Columns: []model.Column{{Name: "customer_id", OrdinalPosition: 1}},
		}
	}
	return &model.Model{Tables: []model.Table{table("customer"), table("customer_copy")}}
}

func validExportConfig() dvgen.ExportConfig {
	return dvgen.ExportConfig{
		ModelPath: "/proj/model.yaml",
		OutputDir: "/proj/export",
	}
}

func newTestExporter(mfs *filesystem.MemoryFileSystem, approver *mockApprover, m *model.Model) *ExportService {
	svc := NewExportService(mfs, mfs, approver, &mockLogger{})
	svc.loadModel = func(_ string) (*model.Model, error) { return m, nil }
	return svc
}

func TestNewExportService_NilDependencyPanics(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")

	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("expected panic for nil %s", name)
			}
		}()
		fn()
	}

	assertPanics("fs", func() { NewExportService(nil, mfs, &mockApprover{}, &mockLogger{}) })
	assertPanics("out", func() { NewExportService(mfs, nil, &mockApprover{}, &mockLogger{}) })
	assertPanics("approver", func() { NewExportService(mfs, mfs, nil, &mockLogger{}) })
	assertPanics("logger", func() { NewExportService(mfs, mfs, &mockApprover{}, nil) })
}

func TestExport_WritesRelationFiles(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	svc := newTestExporter(mfs, &mockApprover{}, exportModel())

	diags, err := svc.Export(context.Background(), validExportConfig())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if export.HasErrors(diags) {
		t.Errorf("unexpected error diagnostics: %v", diags)
	}

	for _, name := range []string{
		dvgen.FileSourceData,
		dvgen.FileStandardHub,
		dvgen.FileStandardSatellite,
		dvgen.FileStandardLink,
		dvgen.FileManifest,
	} {
		if _, err := mfs.ReadFile("/proj/export/" + name); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	hub, _ := mfs.ReadFile("/proj/export/" + dvgen.FileStandardHub)
	if !strings.Contains(string(hub), "customer_h") {
		t.Errorf("hub relation missing expected row:\n%s", hub)
	}
}

func TestExport_Denormalized(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	svc := newTestExporter(mfs, &mockApprover{}, exportModel())

	config := validExportConfig()
	config.Denormalized = true

	if _, err := svc.Export(context.Background(), config); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if _, err := mfs.ReadFile("/proj/export/" + dvgen.FileDenormalized); err != nil {
		t.Fatalf("missing %s: %v", dvgen.FileDenormalized, err)
	}
	if _, err := mfs.ReadFile("/proj/export/" + dvgen.FileStandardHub); err == nil {
		t.Error("denormalized export should not emit the relational files")
	}
}

func TestExport_InvalidConfig(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	svc := newTestExporter(mfs, &mockApprover{}, exportModel())

	config := validExportConfig()
	config.OutputDir = ""

	_, err := svc.Export(context.Background(), config)
	if !errors.Is(err, dvgen.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestExport_ModelNotFound(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	svc := NewExportService(mfs, mfs, &mockApprover{}, &mockLogger{})
	svc.loadModel = func(path string) (*model.Model, error) {
		return nil, fmt.Errorf("%s: %w", path, dvgen.ErrModelNotFound)
	}

	_, err := svc.Export(context.Background(), validExportConfig())
	if !errors.Is(err, dvgen.ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestExport_InvalidModel(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	svc := newTestExporter(mfs, &mockApprover{}, duplicateHashkeyModel())

	_, err := svc.Export(context.Background(), validExportConfig())
	if !errors.Is(err, dvgen.ErrModelInvalid) {
		t.Fatalf("expected ErrModelInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "hk_customer_h") {
		t.Errorf("error should name the duplicate hashkey: %v", err)
	}
}

func TestExport_ExistingExportRequiresOverwrite(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("/proj/export/"+dvgen.FileManifest, "generated_at: 2026-01-01T00:00:00Z\n")
	svc := newTestExporter(mfs, &mockApprover{}, exportModel())

	_, err := svc.Export(context.Background(), validExportConfig())
	if !errors.Is(err, dvgen.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestExport_OverwriteDenied(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("/proj/export/"+dvgen.FileManifest, "generated_at: 2026-01-01T00:00:00Z\n")
	approver := &mockApprover{approved: false}
	svc := newTestExporter(mfs, approver, exportModel())

	config := validExportConfig()
	config.Overwrite = true

	_, err := svc.Export(context.Background(), config)
	if !errors.Is(err, dvgen.ErrApprovalDenied) {
		t.Fatalf("expected ErrApprovalDenied, got %v", err)
	}
	if len(approver.requested) != 1 || approver.requested[0] != "/proj/export" {
		t.Errorf("approval requested for %v, want the output directory", approver.requested)
	}
}

func TestExport_OverwriteApproved(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	mfs.AddFile("/proj/export/"+dvgen.FileManifest, "generated_at: 2026-01-01T00:00:00Z\n")
	svc := newTestExporter(mfs, &mockApprover{approved: true}, exportModel())

	config := validExportConfig()
	config.Overwrite = true

	if _, err := svc.Export(context.Background(), config); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if _, err := mfs.ReadFile("/proj/export/" + dvgen.FileStandardHub); err != nil {
		t.Errorf("overwrite did not write new relations: %v", err)
	}
}

func TestExport_NoApprovalForFreshDirectory(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/proj")
	approver := &mockApprover{approved: false}
	svc := newTestExporter(mfs, approver, exportModel())

	config := validExportConfig()
	config.Overwrite = true

	if _, err := svc.Export(context.Background(), config); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(approver.requested) != 0 {
		t.Errorf("no approval should be requested for a fresh directory, got %v", approver.requested)
	}
}

func TestCompileRelations_CanonicalOrder(t *testing.T) {
	relations, diags := compileRelations(exportModel(), dvgen.ExportConfig{})
	if export.HasErrors(diags) {
		t.Fatalf("unexpected error diagnostics: %v", diags)
	}

	want := []string{"source_data", "standard_hub", "standard_satellite", "standard_link"}
	if len(relations) != len(want) {
		t.Fatalf("expected %d relations, got %d", len(want), len(relations))
	}
	for i, name := range want {
		if relations[i].Name != name {
			t.Errorf("relation %d = %q, want %q", i, relations[i].Name, name)
		}
	}
}

func TestCompileRelations_DuplicateHashkeyDiagnostic(t *testing.T) {
	_, diags := compileRelations(duplicateHashkeyModel(), dvgen.ExportConfig{})
	if !export.HasErrors(diags) {
		t.Fatal("expected an error diagnostic for the duplicate hashkey")
	}
	if countErrors(diags) != 1 {
		t.Errorf("expected exactly one error diagnostic, got %d", countErrors(diags))
	}
}
