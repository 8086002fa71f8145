package model

import "fmt"

// ValidationResult contains the outcome of model validation.
// If Valid is false, Errors contains human-readable error messages.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// AddError appends an error message to the validation result and marks it as invalid.
func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Valid = false
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if the validation result contains errors.
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// ErrorString returns all validation errors joined with semicolons.
// Returns empty string if no errors.
func (v *ValidationResult) ErrorString() string {
	if len(v.Errors) == 0 {
		return ""
	}
	result := v.Errors[0]
	for i := 1; i < len(v.Errors); i++ {
		result += "; " + v.Errors[i]
	}
	return result
}

// Validate checks the structural invariants the export compilers rely on.
// It checks:
//   - Hashkey names of non-link groups are unique across the whole model
//     (link and hashdiff resolution scan a single flat namespace)
//   - Link groups reference hashkey names that exist
//   - Group columns, hashdiff inclusions, and hashdiff exclusions name
//     real columns of their table
//   - Non-link groups carry at least one column; link groups carry at
//     least one referenced hashkey
//
// Conditions the compilers handle by omission (hashdiff without concept,
// unresolvable hashdiff hashkey) are reported here too, so the user can fix
// the model instead of discovering missing rows in the output.
func Validate(m *Model) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	// owner of each non-link hashkey name, for duplicate reporting
	hashkeyOwners := make(map[string]string)

	for ti := range m.Tables {
		t := &m.Tables[ti]
		qualified := t.Schema + "." + t.Name

		for gi, g := range t.Groups {
			if g.Link {
				if len(g.ReferencedHashkeys) == 0 {
					result.AddError("%s: link group %d references no hashkeys", qualified, gi+1)
				}
				continue
			}

			if len(g.Columns) == 0 {
				result.AddError("%s: business-key group %d has no columns", qualified, gi+1)
			}
			for _, name := range g.Columns {
				if t.Column(name) == nil {
					result.AddError("%s: business-key group %d names unknown column %q", qualified, gi+1, name)
				}
			}

			// Duplicate check uses the effective name so collisions
			// introduced by the hk_ fallback are caught too.
			name := EffectiveHashkeyName(t, g)
			if owner, dup := hashkeyOwners[name]; dup {
				result.AddError("duplicate hashkey name %q: defined by %s and %s (hashkey names must be unique across the model)",
					name, owner, qualified)
			} else {
				hashkeyOwners[name] = qualified
			}
		}

		for _, hd := range t.Hashdiffs {
			if hd.Name == "" {
				result.AddError("%s: hashdiff group has no name", qualified)
				continue
			}
			if hd.BusinessConcept == "" {
				result.AddError("%s: hashdiff group %q has no business concept and will be skipped at export", qualified, hd.Name)
			}
			for _, name := range hd.Selection.Exclude {
				if t.Column(name) == nil {
					result.AddError("%s: hashdiff group %q excludes unknown column %q", qualified, hd.Name, name)
				}
			}
			for _, name := range hd.Selection.Include {
				if t.Column(name) == nil {
					result.AddError("%s: hashdiff group %q includes unknown column %q", qualified, hd.Name, name)
				}
			}
		}
	}

	// Cross-table pass: link references must resolve somewhere.
	for ti := range m.Tables {
		t := &m.Tables[ti]
		for gi, g := range t.Groups {
			if !g.Link {
				continue
			}
			for _, ref := range g.ReferencedHashkeys {
				if !hashkeyDefined(m, ref) {
					result.AddError("%s.%s: link group %d references hashkey %q which no business-key group defines",
						t.Schema, t.Name, gi+1, ref)
				}
			}
		}
	}

	return result
}

// hashkeyDefined reports whether any non-link group in the model declares
// the hashkey name, explicitly or through the "hk_{hubName}" fallback.
func hashkeyDefined(m *Model, name string) bool {
	for ti := range m.Tables {
		t := &m.Tables[ti]
		for _, g := range t.Groups {
			if g.Link {
				continue
			}
			if EffectiveHashkeyName(t, g) == name {
				return true
			}
		}
	}
	return false
}
