package export

import (
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dvgen/internal/checksum"
	"github.com/vvka-141/dvgen/internal/files/filesystem"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

// Manifest records what an export run emitted. It is written next to the
// relation files so a consumer (or a later dvgen run) can detect changes
// without re-parsing the CSVs.
type Manifest struct {
	GeneratedAt time.Time       `yaml:"generated_at"`
	Relations   []ManifestEntry `yaml:"relations"`
}

// ManifestEntry describes one emitted relation file.
type ManifestEntry struct {
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	Rows     int    `yaml:"rows"`
	Checksum string `yaml:"checksum"`
}

// Writer serializes relations and writes them to an output directory
// through the filesystem abstraction, so tests can run against the
// in-memory provider.
type Writer struct {
	fs     filesystem.Writer
	calc   checksum.SHA256
	logger dvgen.Logger

	// now is injectable for deterministic manifests in tests.
	now func() time.Time
}

// NewWriter creates a Writer. logger must not be nil.
func NewWriter(fs filesystem.Writer, logger dvgen.Logger) *Writer {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Writer{
		fs:     fs,
		calc:   checksum.New(),
		logger: logger,
		now:    time.Now,
	}
}

// WriteAll serializes each relation into outputDir under its canonical file
// name ("{relation.Name}.csv") and writes the manifest alongside.
func (w *Writer) WriteAll(outputDir string, relations []Relation) error {
	if err := w.fs.MkdirAll(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	manifest := Manifest{GeneratedAt: w.now().UTC()}

	for _, rel := range relations {
		fileName := rel.Name + ".csv"
		content := []byte(MarshalCSV(rel))

		if err := w.fs.WriteFile(filepath.Join(outputDir, fileName), content); err != nil {
			return fmt.Errorf("failed to write relation %s: %w", rel.Name, err)
		}

		manifest.Relations = append(manifest.Relations, ManifestEntry{
			Name:     rel.Name,
			File:     fileName,
			Rows:     rel.Len(),
			Checksum: w.calc.CalculateNormalized(content),
		})

		w.logger.Verbose("wrote %s (%d rows)", fileName, rel.Len())
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := w.fs.WriteFile(filepath.Join(outputDir, dvgen.FileManifest), data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
