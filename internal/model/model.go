package model

// Column is one physical column of one table, seeded by introspection and
// annotated by the user.
//
// The role flags are advisory: flags and groups can drift out of sync while
// the user edits, so the compilers re-derive membership from the group
// structures and consult flags only where the legacy fallback paths require
// them (see export.Hubs and export.Satellites).
type Column struct {
	// Name is the physical column name.
	Name string `yaml:"name"`

	// OrdinalPosition is the 1-based position within the table as reported
	// by the source database.
	OrdinalPosition int `yaml:"ordinal_position"`

	// DataType is the declared source type (informational only).
	DataType string `yaml:"data_type,omitempty"`

	// Nullable reports the declared nullability (informational only).
	Nullable bool `yaml:"nullable,omitempty"`

	// BusinessKey is the legacy flat business-key marker, honored only when
	// a table declares no business-key groups.
	BusinessKey bool `yaml:"business_key,omitempty"`

	// RecordSource marks the technical record-source column.
	RecordSource bool `yaml:"record_source,omitempty"`

	// LoadDate marks the technical load-date column.
	LoadDate bool `yaml:"load_date,omitempty"`

	// CreateSatellite marks the column for satellite payload in the legacy
	// implicit-satellite mode.
	CreateSatellite bool `yaml:"create_satellite,omitempty"`

	// SortOrder is the user-assigned hashing order. Zero means unset; the
	// compilers then fall back to the column's position in the relevant
	// filtered sequence.
	SortOrder int `yaml:"sort_order,omitempty"`
}

// BusinessKeyGroup is an ordered set of columns forming one business key,
// or - when Link is set - a reference list tying hashkeys of other groups
// together into a link.
type BusinessKeyGroup struct {
	// HashkeyName names the hashkey this group feeds. Non-link groups share
	// a single global namespace: Link and hashdiff resolution look hashkey
	// names up across all tables. Empty means derive "hk_{hubName}".
	HashkeyName string `yaml:"hashkey_name,omitempty"`

	// BusinessConcept optionally overrides hub naming for this group.
	BusinessConcept string `yaml:"business_concept,omitempty"`

	// Link marks this group as a link definition. Link groups carry no
	// columns of their own; they reference hashkeys of non-link groups.
	Link bool `yaml:"link,omitempty"`

	// Columns is the ordered business-key column list (non-link groups).
	// Order determines hashing order and must never be re-sorted.
	Columns []string `yaml:"columns,omitempty"`

	// ReferencedHashkeys lists the hashkey names a link group ties together
	// (link groups only).
	ReferencedHashkeys []string `yaml:"referenced_hashkeys,omitempty"`
}

// HashdiffGroup names one change-tracking rule for a table: which columns
// feed the satellite's change-detection digest and which hub parent the
// satellite attaches to.
type HashdiffGroup struct {
	// Name is the hashdiff group name, conventionally "hd_{base}_sat".
	Name string `yaml:"name"`

	// BusinessConcept identifies the owning hub concept. Groups without a
	// concept cannot be attached to a parent and are skipped at export.
	BusinessConcept string `yaml:"business_concept,omitempty"`

	// HashkeyName is the parent hashkey. Empty means resolve lazily from
	// the table's business-key group with a matching concept.
	HashkeyName string `yaml:"hashkey_name,omitempty"`

	// Selection determines the member columns.
	Selection ColumnSelection `yaml:"selection"`
}

// Table is one annotated source table: identity, columns, and groupings.
type Table struct {
	// Schema is the physical schema name.
	Schema string `yaml:"schema"`

	// Name is the physical table name.
	Name string `yaml:"table"`

	// BusinessConcept optionally labels the table's dominant concept,
	// used for hub naming when a group does not override it.
	BusinessConcept string `yaml:"business_concept,omitempty"`

	// Groups are the business-key and link groups, in declaration order.
	Groups []BusinessKeyGroup `yaml:"groups,omitempty"`

	// Hashdiffs are the change-tracking groups, in declaration order.
	Hashdiffs []HashdiffGroup `yaml:"hashdiffs,omitempty"`

	// Columns is the full physical column list in ordinal order.
	Columns []Column `yaml:"columns"`
}

// Model is the full annotated table set handed to the export compilers.
// It is read-only for the duration of one export call.
type Model struct {
	// Tables in declaration order. Export output order follows this order.
	Tables []Table `yaml:"tables"`
}

// Column returns the column with the given name, or nil if absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// RecordSourceColumn returns the name of the column flagged as record
// source, or "" if the table has none.
func (t *Table) RecordSourceColumn() string {
	for i := range t.Columns {
		if t.Columns[i].RecordSource {
			return t.Columns[i].Name
		}
	}
	return ""
}

// LoadDateColumn returns the name of the column flagged as load date,
// or "" if the table has none.
func (t *Table) LoadDateColumn() string {
	for i := range t.Columns {
		if t.Columns[i].LoadDate {
			return t.Columns[i].Name
		}
	}
	return ""
}

// HubGroups returns the non-link business-key groups in declaration order.
func (t *Table) HubGroups() []BusinessKeyGroup {
	var groups []BusinessKeyGroup
	for _, g := range t.Groups {
		if !g.Link {
			groups = append(groups, g)
		}
	}
	return groups
}

// LinkGroups returns the link groups in declaration order.
func (t *Table) LinkGroups() []BusinessKeyGroup {
	var groups []BusinessKeyGroup
	for _, g := range t.Groups {
		if g.Link {
			groups = append(groups, g)
		}
	}
	return groups
}

// HubConcept returns the business concept governing hub naming for a group:
// the group's own concept when set, the table's otherwise.
func (t *Table) HubConcept(g BusinessKeyGroup) string {
	if g.BusinessConcept != "" {
		return g.BusinessConcept
	}
	return t.BusinessConcept
}

// InBusinessKeyGroup reports whether the named column belongs to any
// non-link business-key group of the table.
func (t *Table) InBusinessKeyGroup(columnName string) bool {
	for _, g := range t.Groups {
		if g.Link {
			continue
		}
		for _, c := range g.Columns {
			if c == columnName {
				return true
			}
		}
	}
	return false
}
