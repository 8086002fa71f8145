// Package files groups file-related functionality into sub-packages.
//
// The filesystem sub-package provides the filesystem abstraction used by
// the export writer and the CLI (OS-backed and in-memory implementations):
//
//	import "github.com/vvka-141/dvgen/internal/files/filesystem"
//
//	fs := filesystem.NewOSFileSystem()
//	data, err := fs.ReadFile("model.yaml")
package files
