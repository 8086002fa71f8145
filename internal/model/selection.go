package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SelectionMode is the closed set of hashdiff column-selection strategies.
// Using a typed enum instead of free-form strings keeps mode handling
// exhaustive: every switch over SelectionMode covers all members.
type SelectionMode int

const (
	// SelectAll includes every table column except the exclusion list,
	// business-key members, and the technical columns.
	SelectAll SelectionMode = iota

	// SelectExplicit includes exactly the listed columns.
	SelectExplicit
)

const (
	selectAllYAML      = "select_all"
	selectExplicitYAML = "select_explicit"
)

// String returns the wire name of the mode.
func (m SelectionMode) String() string {
	switch m {
	case SelectAll:
		return selectAllYAML
	case SelectExplicit:
		return selectExplicitYAML
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// MarshalYAML implements yaml.Marshaler.
func (m SelectionMode) MarshalYAML() (interface{}, error) {
	switch m {
	case SelectAll, SelectExplicit:
		return m.String(), nil
	default:
		return nil, fmt.Errorf("invalid selection mode %d", int(m))
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *SelectionMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case selectAllYAML:
		*m = SelectAll
	case selectExplicitYAML:
		*m = SelectExplicit
	default:
		return fmt.Errorf("invalid selection mode %q (expected %q or %q)", s, selectAllYAML, selectExplicitYAML)
	}
	return nil
}

// ColumnSelection is the tagged selection rule of a hashdiff group.
// Exclude is honored only in SelectAll mode, Include only in SelectExplicit
// mode; the unused field stays empty on the wire.
type ColumnSelection struct {
	Mode    SelectionMode `yaml:"mode"`
	Exclude []string      `yaml:"exclude,omitempty"`
	Include []string      `yaml:"include,omitempty"`
}

// SelectAllExcept builds a SelectAll selection with the given exclusions.
func SelectAllExcept(exclude ...string) ColumnSelection {
	return ColumnSelection{Mode: SelectAll, Exclude: exclude}
}

// SelectOnly builds a SelectExplicit selection with the given inclusions.
func SelectOnly(include ...string) ColumnSelection {
	return ColumnSelection{Mode: SelectExplicit, Include: include}
}

// Members computes the member column set of a hashdiff selection against a
// table, preserving the table's column order. The result is the ordered
// member list; membership logic is shared by the satellite compiler and the
// denormalized export so the two can never diverge.
//
// SelectAll membership excludes, in addition to the exclusion list:
// columns belonging to any non-link business-key group of the table, the
// record-source column, and the load-date column.
func (s ColumnSelection) Members(t *Table) []string {
	switch s.Mode {
	case SelectAll:
		excluded := make(map[string]bool, len(s.Exclude))
		for _, name := range s.Exclude {
			excluded[name] = true
		}
		recordSource := t.RecordSourceColumn()
		loadDate := t.LoadDateColumn()

		var members []string
		for _, col := range t.Columns {
			if excluded[col.Name] {
				continue
			}
			if t.InBusinessKeyGroup(col.Name) {
				continue
			}
			if col.Name == recordSource || col.Name == loadDate {
				continue
			}
			members = append(members, col.Name)
		}
		return members

	case SelectExplicit:
		// Exactly the inclusion list, emitted in table column order so the
		// hashing order stays tied to the physical layout.
		included := make(map[string]bool, len(s.Include))
		for _, name := range s.Include {
			included[name] = true
		}
		var members []string
		for _, col := range t.Columns {
			if included[col.Name] {
				members = append(members, col.Name)
			}
		}
		return members

	default:
		return nil
	}
}

// Contains reports whether the named column is a member of the selection
// against the given table.
func (s ColumnSelection) Contains(t *Table, columnName string) bool {
	for _, name := range s.Members(t) {
		if name == columnName {
			return true
		}
	}
	return false
}
