package export

import (
	"fmt"

	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/internal/naming"
)

// linkHeader is the standard_link wire contract.
var linkHeader = []string{
	"Link_Identifier",
	"Link_Name",
	"Source_Identifier",
	"Source_Column_Physical_Name",
	"Target_Column_Physical_Name",
	"Hub_Identifier",
	"Referenced_Hashkey_Name",
	"Target_Primary_Key_Name",
}

// Links expands the link groups of every table into ordered link rows.
//
// Each referenced hashkey resolves through the registry to its owning hub
// definition. Resolved references emit one row per referenced-hub column,
// carrying the link table's own source identifier (not the referenced
// table's). References that resolve to an empty column list, or do not
// resolve at all, still emit a single placeholder row with blank column
// fields so the link-to-hub relationship survives in the output; the
// degradation is reported as a diagnostic.
func Links(m *model.Model, reg *HashkeyRegistry) (Relation, []Diagnostic) {
	rel := Relation{Name: "standard_link", Header: linkHeader}
	var diags []Diagnostic

	for ti := range m.Tables {
		t := &m.Tables[ti]
		sourceID := naming.SourceIdentifier(t.Schema, t.Name)

		for li, g := range t.LinkGroups() {
			linkName := g.HashkeyName
			if linkName == "" {
				linkName = fmt.Sprintf("lk_%s_%d", t.Name, li+1)
			}
			linkID := naming.LinkIdentifier(linkName)

			for _, ref := range g.ReferencedHashkeys {
				def, ok := reg.Resolve(ref)

				switch {
				case ok && len(def.Columns) > 0:
					hubID := naming.HubIdentifier(def.HubName)
					for _, colName := range def.Columns {
						rel.Append(
							linkID,
							linkName,
							sourceID,
							colName,
							colName,
							hubID,
							ref,
							linkName,
						)
					}

				case ok:
					// Resolved, but the owning group has no columns.
					rel.Append(linkID, linkName, sourceID, "", "", naming.HubIdentifier(def.HubName), ref, linkName)
					diags = append(diags, Diagnostic{
						Severity: SeverityWarning,
						Table:    t.Schema + "." + t.Name,
						Subject:  linkName,
						Reason:   fmt.Sprintf("referenced hashkey %q resolves to a group with no columns; placeholder row emitted", ref),
					})

				default:
					rel.Append(linkID, linkName, sourceID, "", "", "", ref, linkName)
					diags = append(diags, Diagnostic{
						Severity: SeverityError,
						Table:    t.Schema + "." + t.Name,
						Subject:  linkName,
						Reason:   fmt.Sprintf("referenced hashkey %q is not defined by any business-key group; placeholder row emitted", ref),
					})
				}
			}
		}
	}

	return rel, diags
}
