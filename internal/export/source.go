package export

import (
	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/internal/naming"
)

// sourceHeader is the source_data wire contract.
var sourceHeader = []string{
	"Source_System",
	"Source_Object",
	"Source_Schema_Physical_Name",
	"Source_Table_Physical_Name",
	"Source_Identifier",
	"Record_Source_Column",
	"Load_Date_Column",
	"Group_Name",
	"Static_Part",
}

// Sources emits exactly one registration row per table. There is no
// filtering and no precondition: every table in the model always yields a
// source row, so Sources never produces diagnostics.
//
// The record-source and load-date columns serialize as empty fields when
// the table has no column flagged for the role.
func Sources(m *model.Model) (Relation, []Diagnostic) {
	rel := Relation{Name: "source_data", Header: sourceHeader}

	for ti := range m.Tables {
		t := &m.Tables[ti]
		system := naming.SourceSystem(t.Schema)

		rel.Append(
			system,
			naming.SourceObject(t.Name),
			t.Schema,
			t.Name,
			naming.SourceIdentifier(t.Schema, t.Name),
			t.RecordSourceColumn(),
			t.LoadDateColumn(),
			naming.GroupName(t.Schema),
			system,
		)
	}

	return rel, nil
}
