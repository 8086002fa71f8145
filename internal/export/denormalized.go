package export

import (
	"strconv"
	"strings"

	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/internal/naming"
)

// denormalizedHeader is the single-table column export wire contract.
var denormalizedHeader = []string{
	"Source_Identifier",
	"Source_Schema_Physical_Name",
	"Source_Table_Physical_Name",
	"Column_Physical_Name",
	"Ordinal_Position",
	"Data_Type",
	"Is_Nullable",
	"Business_Concept",
	"Hub_Hashkey_Name",
	"Link_Hashkey_Name",
	"Hashdiff_Groups",
	"Is_Record_Source",
	"Is_Load_Date",
	"Create_Satellite",
}

// hashdiffGroupSeparator joins the hashdiff-group names a column
// participates in. Semicolon keeps the field free of CSV quoting in the
// common case.
const hashdiffGroupSeparator = ";"

// Denormalized flattens the model into one row per physical column: table
// identity, declared type, and the column's place in every grouping. It
// reuses the hashkey naming and hashdiff membership rules of the relational
// compilers rather than re-deriving them, so the two output shapes can
// never disagree.
func Denormalized(m *model.Model) (Relation, []Diagnostic) {
	rel := Relation{Name: "columns", Header: denormalizedHeader}

	// Hashkey name -> name of the first link group referencing it.
	linkRefs := make(map[string]string)
	for ti := range m.Tables {
		t := &m.Tables[ti]
		for li, g := range t.LinkGroups() {
			linkName := g.HashkeyName
			if linkName == "" {
				linkName = "lk_" + t.Name + "_" + strconv.Itoa(li+1)
			}
			for _, ref := range g.ReferencedHashkeys {
				if _, seen := linkRefs[ref]; !seen {
					linkRefs[ref] = linkName
				}
			}
		}
	}

	for ti := range m.Tables {
		t := &m.Tables[ti]
		sourceID := naming.SourceIdentifier(t.Schema, t.Name)

		for _, col := range t.Columns {
			hubHashkey := columnHubHashkey(t, col.Name)

			linkHashkey := ""
			if hubHashkey != "" {
				linkHashkey = linkRefs[hubHashkey]
			}

			var hdNames []string
			for _, hd := range t.Hashdiffs {
				if hd.Selection.Contains(t, col.Name) {
					hdNames = append(hdNames, hd.Name)
				}
			}

			rel.Append(
				sourceID,
				t.Schema,
				t.Name,
				col.Name,
				strconv.Itoa(col.OrdinalPosition),
				col.DataType,
				flag(col.Nullable),
				t.BusinessConcept,
				hubHashkey,
				linkHashkey,
				strings.Join(hdNames, hashdiffGroupSeparator),
				flag(col.RecordSource),
				flag(col.LoadDate),
				flag(col.CreateSatellite),
			)
		}
	}

	return rel, nil
}

// columnHubHashkey returns the effective hashkey of the first non-link
// group containing the column, or "".
func columnHubHashkey(t *model.Table, columnName string) string {
	for _, g := range t.HubGroups() {
		for _, c := range g.Columns {
			if c == columnName {
				return model.EffectiveHashkeyName(t, g)
			}
		}
	}
	return ""
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
