package export

import (
	"github.com/vvka-141/dvgen/internal/model"
)

// HubDefinition is one resolved non-link business-key group: the owning
// table, the derived hub naming, and the ordered business-key columns.
type HubDefinition struct {
	// Table is the owning table.
	Table *model.Table

	// HubName is the derived hub base name (e.g. "customer_h").
	HubName string

	// HashkeyName is the effective hashkey name (declared or hk_ fallback).
	HashkeyName string

	// Columns is the ordered business-key column list of the group.
	Columns []string
}

// HashkeyRegistry maps hashkey names to their owning hub definitions.
//
// It replaces the implicit "scan every table, first match wins" lookup with
// an explicit structure built once per export call. Duplicate hashkey names
// keep their first definition (matching the observed first-match behavior)
// and are reported as error-severity diagnostics so strict exports fail
// instead of silently picking a winner.
type HashkeyRegistry struct {
	byName map[string]HubDefinition
}

// BuildHashkeyRegistry scans all non-link business-key groups of the model
// in declaration order and registers their effective hashkey names.
func BuildHashkeyRegistry(m *model.Model) (*HashkeyRegistry, []Diagnostic) {
	reg := &HashkeyRegistry{byName: make(map[string]HubDefinition)}
	var diags []Diagnostic

	for ti := range m.Tables {
		t := &m.Tables[ti]
		for _, g := range t.Groups {
			if g.Link {
				continue
			}

			name := model.EffectiveHashkeyName(t, g)
			if existing, dup := reg.byName[name]; dup {
				diags = append(diags, Diagnostic{
					Severity: SeverityError,
					Table:    t.Schema + "." + t.Name,
					Subject:  name,
					Reason: "duplicate hashkey name, already defined by " +
						existing.Table.Schema + "." + existing.Table.Name + "; first definition wins",
				})
				continue
			}

			reg.byName[name] = HubDefinition{
				Table:       t,
				HubName:     model.EffectiveHubName(t, g),
				HashkeyName: name,
				Columns:     g.Columns,
			}
		}
	}

	return reg, diags
}

// Resolve returns the hub definition owning the hashkey name.
func (r *HashkeyRegistry) Resolve(hashkeyName string) (HubDefinition, bool) {
	def, ok := r.byName[hashkeyName]
	return def, ok
}
