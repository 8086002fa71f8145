// Package checksum provides content hashing for emitted export artifacts.
//
// The package implements dvgen's dual checksum strategy:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after normalizing line endings to LF
//     (stable identity across platforms and checkout settings)
//
// The manifest written next to the relation CSVs records the normalized
// checksum, so a repository checkout that rewrites line endings does not
// register as a content change.
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
