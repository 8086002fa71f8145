package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dvgen/pkg/dvgen"
)

// fileVersion is the model.yaml format version written by this build.
// Readers accept only versions they know; the field exists so a future
// format change can be detected instead of silently misread.
const fileVersion = 1

// modelFile is the on-disk shape of model.yaml. The version envelope and
// per-table identity are persistence concerns and stay out of the in-memory
// Model the compilers consume.
type modelFile struct {
	Version int         `yaml:"version"`
	Tables  []tableFile `yaml:"tables"`
}

type tableFile struct {
	// ID is the deterministic table identity (see TableID). Written on
	// save; ignored and recomputed on load so hand-edited files cannot
	// carry a stale identity.
	ID string `yaml:"id,omitempty"`

	Table `yaml:",inline"`
}

// Load reads and parses a model file.
// Returns dvgen.ErrModelNotFound (wrapped) if the file does not exist.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, dvgen.ErrModelNotFound)
		}
		return nil, err
	}

	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}

	if f.Version != fileVersion {
		return nil, fmt.Errorf("unsupported model file version %d in %s (this build reads version %d)",
			f.Version, path, fileVersion)
	}

	m := &Model{Tables: make([]Table, len(f.Tables))}
	for i, t := range f.Tables {
		m.Tables[i] = t.Table
	}
	return m, nil
}

// Save serializes the model to the given path, overwriting any existing
// file. Table order and all group/column orders are written exactly as held
// in memory.
func Save(path string, m *Model) error {
	f := modelFile{
		Version: fileVersion,
		Tables:  make([]tableFile, len(m.Tables)),
	}
	for i, t := range m.Tables {
		f.Tables[i] = tableFile{
			ID:    TableID(t.Schema, t.Name).String(),
			Table: t,
		}
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to serialize model: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file %s: %w", path, err)
	}
	return nil
}
