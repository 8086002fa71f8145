package model

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceTableIdentity is the fixed UUID namespace for generating
// deterministic table identities from schema/table pairs. The namespace is
// derived from the canonical string "dvgen/table-identity/v1" using UUID v5
// with the URL namespace, so:
//   - A schema/table pair always generates the same UUID across runs
//   - The namespace is unique to dvgen (no collisions with other systems)
//   - Users can independently verify deterministic ID generation
var NamespaceTableIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dvgen/table-identity/v1"))

// TableID creates a deterministic UUID v5 for a schema/table pair. The model
// file records it per table so annotations can be matched back to their
// tables across re-introspection runs and model merges, independent of list
// position.
//
// Identity is case-insensitive: PostgreSQL folds unquoted identifiers to
// lowercase, and a user editing model.yaml by hand should not create a new
// identity by changing case.
func TableID(schema, table string) uuid.UUID {
	normalized := strings.ToLower(schema) + "." + strings.ToLower(table)
	return uuid.NewSHA1(NamespaceTableIdentity, []byte(normalized))
}
