package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/internal/naming"
)

// satelliteHeader is the standard_satellite wire contract.
var satelliteHeader = []string{
	"Satellite_Identifier",
	"Satellite_Name",
	"Parent_Identifier",
	"Parent_Hashkey_Name",
	"Source_Identifier",
	"Source_Column_Physical_Name",
	"Target_Column_Sort_Order",
}

// Options control the optional compiler behaviors.
type Options struct {
	// ImplicitSatellites enables the legacy fallback that synthesizes one
	// satellite per table from all unclassified columns when the table
	// declares no hashdiff groups.
	ImplicitSatellites bool
}

// Satellites expands the hashdiff groups of every table into ordered
// satellite rows.
//
// A group is skipped (with a diagnostic) when it has no business concept,
// when its parent hashkey cannot be resolved, or when its member column set
// is empty. The parent hashkey is the group's own, or is resolved from the
// table's business-key group with a matching concept.
//
// With Options.ImplicitSatellites, a table with zero hashdiff groups
// instead synthesizes one satellite per table from every column not already
// classified as key or technical, attached to the table's first hub.
func Satellites(m *model.Model, opts Options) (Relation, []Diagnostic) {
	rel := Relation{Name: "standard_satellite", Header: satelliteHeader}
	var diags []Diagnostic

	for ti := range m.Tables {
		t := &m.Tables[ti]

		if len(t.Hashdiffs) == 0 {
			if opts.ImplicitSatellites {
				diags = append(diags, emitImplicitSatellite(&rel, t)...)
			}
			continue
		}

		for _, hd := range t.Hashdiffs {
			diags = append(diags, emitSatellite(&rel, t, hd)...)
		}
	}

	return rel, diags
}

func emitSatellite(rel *Relation, t *model.Table, hd model.HashdiffGroup) []Diagnostic {
	qualified := t.Schema + "." + t.Name

	if hd.BusinessConcept == "" {
		return []Diagnostic{{
			Severity: SeverityWarning,
			Table:    qualified,
			Subject:  hd.Name,
			Reason:   "hashdiff group has no business concept; skipped",
		}}
	}

	hashkey := hd.HashkeyName
	if hashkey == "" {
		hashkey = resolveConceptHashkey(t, hd.BusinessConcept)
	}
	if hashkey == "" {
		return []Diagnostic{{
			Severity: SeverityWarning,
			Table:    qualified,
			Subject:  hd.Name,
			Reason: fmt.Sprintf("no hashkey set and no business-key group matches concept %q; skipped",
				hd.BusinessConcept),
		}}
	}

	members := hd.Selection.Members(t)
	if len(members) == 0 {
		return []Diagnostic{{
			Severity: SeverityWarning,
			Table:    qualified,
			Subject:  hd.Name,
			Reason:   "member column set is empty; skipped",
		}}
	}

	satBase := naming.SatelliteBase(hd.Name)
	emitSatelliteRows(rel, t, satBase, hashkey, members)
	return nil
}

// resolveConceptHashkey scans the table's own non-link groups for one whose
// hub concept matches, returning its effective hashkey name. Concepts are
// user-facing labels, so matching is case-insensitive.
func resolveConceptHashkey(t *model.Table, concept string) string {
	for _, g := range t.HubGroups() {
		if strings.EqualFold(t.HubConcept(g), concept) {
			return model.EffectiveHashkeyName(t, g)
		}
	}
	return ""
}

// emitImplicitSatellite synthesizes the single legacy satellite for a table
// without hashdiff groups: every column not classified as business key or
// technical becomes payload, attached to the table's first hub.
func emitImplicitSatellite(rel *Relation, t *model.Table) []Diagnostic {
	groups := t.HubGroups()
	if len(groups) == 0 {
		return []Diagnostic{{
			Severity: SeverityInfo,
			Table:    t.Schema + "." + t.Name,
			Reason:   "no hashdiff groups and no hub to attach an implicit satellite to; skipped",
		}}
	}

	hashkey := model.EffectiveHashkeyName(t, groups[0])
	recordSource := t.RecordSourceColumn()
	loadDate := t.LoadDateColumn()

	var members []string
	for _, col := range t.Columns {
		if col.BusinessKey || t.InBusinessKeyGroup(col.Name) {
			continue
		}
		if col.Name == recordSource || col.Name == loadDate {
			continue
		}
		members = append(members, col.Name)
	}
	if len(members) == 0 {
		return []Diagnostic{{
			Severity: SeverityInfo,
			Table:    t.Schema + "." + t.Name,
			Reason:   "no unclassified columns left for an implicit satellite; skipped",
		}}
	}

	emitSatelliteRows(rel, t, naming.HubBase(hashkey), hashkey, members)
	return nil
}

func emitSatelliteRows(rel *Relation, t *model.Table, satBase, hashkey string, members []string) {
	satID := naming.SatelliteIdentifier(satBase)
	parentID := naming.HubIdentifier(naming.HubBase(hashkey))
	sourceID := naming.SourceIdentifier(t.Schema, t.Name)

	for i, name := range members {
		order := i + 1
		if col := t.Column(name); col != nil && col.SortOrder > 0 {
			order = col.SortOrder
		}
		rel.Append(
			satID,
			satBase,
			parentID,
			hashkey,
			sourceID,
			name,
			strconv.Itoa(order),
		)
	}
}
