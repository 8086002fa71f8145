package export

import (
	"sort"
	"strconv"

	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/internal/naming"
)

// hubHeader is the standard_hub wire contract.
var hubHeader = []string{
	"Hub_Identifier",
	"Hub_Name",
	"Hashkey_Name",
	"Source_Identifier",
	"Source_Column_Physical_Name",
	"Target_Column_Sort_Order",
	"Is_Primary_Source",
}

// Hubs expands the business-key groups of every table into ordered hub rows.
//
// Tables with business-key groups emit one row per group column in group
// order; Target_Column_Sort_Order is the column's 1-based position within
// its group, not its table ordinal. Tables without groups fall back to the
// legacy flat business-key column flags, treated as one implicit group
// ordered by stored sort order. Tables with neither contribute nothing.
//
// Exactly one row per table carries Is_Primary_Source = "1": the first
// column of the first group (or of the implicit legacy group).
func Hubs(m *model.Model) (Relation, []Diagnostic) {
	rel := Relation{Name: "standard_hub", Header: hubHeader}
	var diags []Diagnostic

	for ti := range m.Tables {
		t := &m.Tables[ti]
		groups := t.HubGroups()

		if len(groups) > 0 {
			emitGroupedHubRows(&rel, t, groups)
			continue
		}

		if !emitLegacyHubRows(&rel, t) {
			diags = append(diags, Diagnostic{
				Severity: SeverityInfo,
				Table:    t.Schema + "." + t.Name,
				Reason:   "no business-key groups and no flagged business-key columns; table contributes no hub rows",
			})
		}
	}

	return rel, diags
}

func emitGroupedHubRows(rel *Relation, t *model.Table, groups []model.BusinessKeyGroup) {
	sourceID := naming.SourceIdentifier(t.Schema, t.Name)

	for gi, g := range groups {
		hubName := model.EffectiveHubName(t, g)
		hubID := naming.HubIdentifier(hubName)
		hashkey := model.EffectiveHashkeyName(t, g)

		for ci, colName := range g.Columns {
			primary := "0"
			if gi == 0 && ci == 0 {
				primary = "1"
			}
			rel.Append(
				hubID,
				hubName,
				hashkey,
				sourceID,
				colName,
				strconv.Itoa(ci+1),
				primary,
			)
		}
	}
}

// emitLegacyHubRows handles un-migrated input where business keys exist only
// as flat per-column flags. The flagged set becomes one implicit group
// ordered by each column's stored sort order, falling back to its position
// in the flagged sequence. Returns false if the table has no flagged columns.
func emitLegacyHubRows(rel *Relation, t *model.Table) bool {
	type keyed struct {
		name  string
		order int
	}

	var keys []keyed
	for _, col := range t.Columns {
		if !col.BusinessKey {
			continue
		}
		order := col.SortOrder
		if order == 0 {
			order = len(keys) + 1
		}
		keys = append(keys, keyed{name: col.Name, order: order})
	}
	if len(keys) == 0 {
		return false
	}

	sort.SliceStable(keys, func(i, j int) bool { return keys[i].order < keys[j].order })

	hubName := naming.HubName(t.Name, t.BusinessConcept)
	hubID := naming.HubIdentifier(hubName)
	hashkey := naming.DefaultHashkeyName(hubName)
	sourceID := naming.SourceIdentifier(t.Schema, t.Name)

	for i, k := range keys {
		primary := "0"
		if i == 0 {
			primary = "1"
		}
		rel.Append(
			hubID,
			hubName,
			hashkey,
			sourceID,
			k.name,
			strconv.Itoa(k.order),
			primary,
		)
	}
	return true
}
