package wizards

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/dvgen/internal/model"
)

func annotateModel() *model.Model {
	return &model.Model{
		Tables: []model.Table{
			{
				Schema: "stg",
				Name:   "customer",
				Columns: []model.Column{
					{Name: "customer_id", OrdinalPosition: 1, DataType: "integer"},
					{Name: "name", OrdinalPosition: 2, DataType: "text"},
					{Name: "rec_src", OrdinalPosition: 3, DataType: "text"},
					{Name: "load_dts", OrdinalPosition: 4, DataType: "timestamp"},
				},
			},
			{
				Schema: "stg",
				Name:   "order_line",
				Columns: []model.Column{
					{Name: "order_id", OrdinalPosition: 1, DataType: "integer"},
					{Name: "line_no", OrdinalPosition: 2, DataType: "integer"},
				},
			},
		},
	}
}

func asAnnotate(t *testing.T, m tea.Model) AnnotateWizard {
	t.Helper()
	w, ok := m.(AnnotateWizard)
	if !ok {
		t.Fatalf("expected AnnotateWizard, got %T", m)
	}
	return w
}

func TestAnnotateWizard_InitialState(t *testing.T) {
	w := NewAnnotateWizard(annotateModel())
	if w.step != annotateStepTables {
		t.Errorf("step = %d, want annotateStepTables", w.step)
	}

	view := w.View()
	if !strings.Contains(view, "dvgen annotate") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "stg.customer") || !strings.Contains(view, "stg.order_line") {
		t.Errorf("view should list both tables, got:\n%s", view)
	}
	if !strings.Contains(view, "unannotated") {
		t.Error("view should flag unannotated tables")
	}
}

func TestAnnotateWizard_SetBusinessConcept(t *testing.T) {
	mdl := annotateModel()
	w := NewAnnotateWizard(mdl)

	// Enter first table, select "Business concept", type a value, apply
	m, _ := update(t, w, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("enter"))
	m = typeString(t, m, "customer")
	m, _ = update(t, m, keyMsg("enter"))

	aw := asAnnotate(t, m)
	if aw.step != annotateStepMenu {
		t.Fatalf("expected annotateStepMenu, got %d", aw.step)
	}
	if mdl.Tables[0].BusinessConcept != "customer" {
		t.Errorf("BusinessConcept = %q, want customer", mdl.Tables[0].BusinessConcept)
	}
}

func TestAnnotateWizard_ComposeBusinessKeyGroup(t *testing.T) {
	mdl := annotateModel()
	w := NewAnnotateWizard(mdl)

	// Second table, "Business-key group" action
	m, _ := update(t, w, keyMsg("down"))
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("enter"))

	aw := asAnnotate(t, m)
	if aw.step != annotateStepPickColumns {
		t.Fatalf("expected annotateStepPickColumns, got %d", aw.step)
	}

	// Toggle line_no first, then order_id: composition order is key order
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, keyMsg("up"))
	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, keyMsg("enter"))

	aw = asAnnotate(t, m)
	if aw.step != annotateStepName {
		t.Fatalf("expected annotateStepName, got %d", aw.step)
	}

	// Name the hashkey and apply
	m = typeString(t, m, "hk_order_line_h")
	m, _ = update(t, m, keyMsg("enter"))

	groups := mdl.Tables[1].HubGroups()
	if len(groups) != 1 {
		t.Fatalf("expected 1 business-key group, got %d", len(groups))
	}
	wantCols := []string{"line_no", "order_id"}
	if !reflect.DeepEqual(groups[0].Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", groups[0].Columns, wantCols)
	}
	if groups[0].HashkeyName != "hk_order_line_h" {
		t.Errorf("HashkeyName = %q, want hk_order_line_h", groups[0].HashkeyName)
	}
}

func TestAnnotateWizard_ReplacesExistingGroup(t *testing.T) {
	mdl := annotateModel()
	mdl.Tables[0].Groups = []model.BusinessKeyGroup{
		{HashkeyName: "hk_customer_h", Columns: []string{"customer_id", "name"}},
	}
	w := NewAnnotateWizard(mdl)

	// First table, "Business-key group"
	m, _ := update(t, w, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("enter"))

	// Existing columns arrive preselected; deselect "name"
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("enter")) // keep the suggested name empty

	groups := mdl.Tables[0].HubGroups()
	if len(groups) != 1 {
		t.Fatalf("expected the group to be replaced, got %d groups", len(groups))
	}
	if !reflect.DeepEqual(groups[0].Columns, []string{"customer_id"}) {
		t.Errorf("Columns = %v, want [customer_id]", groups[0].Columns)
	}
}

func TestAnnotateWizard_ComposeLinkGroup(t *testing.T) {
	mdl := annotateModel()
	mdl.Tables[0].Groups = []model.BusinessKeyGroup{
		{HashkeyName: "hk_customer_h", Columns: []string{"customer_id"}},
	}
	mdl.Tables[1].Groups = []model.BusinessKeyGroup{
		{HashkeyName: "hk_order_h", Columns: []string{"order_id"}},
	}
	w := NewAnnotateWizard(mdl)

	// Second table, "Link group" action
	m, _ := update(t, w, keyMsg("down"))
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("enter"))

	aw := asAnnotate(t, m)
	if aw.step != annotateStepPickColumns {
		t.Fatalf("expected annotateStepPickColumns, got %d", aw.step)
	}

	// The picker lists every hashkey in the model
	view := m.View()
	if !strings.Contains(view, "hk_customer_h") || !strings.Contains(view, "hk_order_h") {
		t.Errorf("picker should list all hashkeys, got:\n%s", view)
	}

	// Reference both hashkeys, order first
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, keyMsg("up"))
	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, keyMsg("enter"))
	m = typeString(t, m, "hk_customer_order_l")
	m, _ = update(t, m, keyMsg("enter"))

	links := mdl.Tables[1].LinkGroups()
	if len(links) != 1 {
		t.Fatalf("expected 1 link group, got %d", len(links))
	}
	wantRefs := []string{"hk_order_h", "hk_customer_h"}
	if !reflect.DeepEqual(links[0].ReferencedHashkeys, wantRefs) {
		t.Errorf("ReferencedHashkeys = %v, want %v", links[0].ReferencedHashkeys, wantRefs)
	}
	if !links[0].Link {
		t.Error("group should be marked as a link")
	}
}

func TestAnnotateWizard_ComposeHashdiffGroup(t *testing.T) {
	mdl := annotateModel()
	w := NewAnnotateWizard(mdl)

	// First table, "Hashdiff group" action
	m, _ := update(t, w, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("enter"))

	// Pick "name" as the only payload column, accept the default name
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("enter"))

	hds := mdl.Tables[0].Hashdiffs
	if len(hds) != 1 {
		t.Fatalf("expected 1 hashdiff group, got %d", len(hds))
	}
	if hds[0].Name != "hd_customer_sat" {
		t.Errorf("Name = %q, want hd_customer_sat", hds[0].Name)
	}
	if !reflect.DeepEqual(hds[0].Selection.Include, []string{"name"}) {
		t.Errorf("Include = %v, want [name]", hds[0].Selection.Include)
	}
}

func TestAnnotateWizard_MarkTechnicalColumns(t *testing.T) {
	mdl := annotateModel()
	w := NewAnnotateWizard(mdl)

	// First table, "Technical columns" action
	m, _ := update(t, w, keyMsg("enter"))
	for i := 0; i < 4; i++ {
		m, _ = update(t, m, keyMsg("down"))
	}
	m, _ = update(t, m, keyMsg("enter"))

	aw := asAnnotate(t, m)
	if aw.step != annotateStepTechnical {
		t.Fatalf("expected annotateStepTechnical, got %d", aw.step)
	}

	// rec_src (third column) as record source, load_dts as load date
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("r"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("l"))
	m, _ = update(t, m, keyMsg("enter"))

	tbl := &mdl.Tables[0]
	if got := tbl.RecordSourceColumn(); got != "rec_src" {
		t.Errorf("RecordSourceColumn = %q, want rec_src", got)
	}
	if got := tbl.LoadDateColumn(); got != "load_dts" {
		t.Errorf("LoadDateColumn = %q, want load_dts", got)
	}
}

func TestAnnotateWizard_RecordSourceIsExclusive(t *testing.T) {
	mdl := annotateModel()
	mdl.Tables[0].Columns[0].RecordSource = true
	w := NewAnnotateWizard(mdl)

	m, _ := update(t, w, keyMsg("enter"))
	for i := 0; i < 4; i++ {
		m, _ = update(t, m, keyMsg("down"))
	}
	m, _ = update(t, m, keyMsg("enter"))

	// Mark rec_src; the old flag on customer_id must clear
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("r"))

	tbl := &mdl.Tables[0]
	if tbl.Columns[0].RecordSource {
		t.Error("previous record-source flag should be cleared")
	}
	if got := tbl.RecordSourceColumn(); got != "rec_src" {
		t.Errorf("RecordSourceColumn = %q, want rec_src", got)
	}
}

func TestAnnotateWizard_SaveQuits(t *testing.T) {
	mdl := annotateModel()
	w := NewAnnotateWizard(mdl)

	m, cmd := update(t, w, keyMsg("s"))
	aw := asAnnotate(t, m)

	if !isQuitCmd(cmd) {
		t.Fatal("expected tea.Quit on save")
	}
	result := aw.Result()
	if !result.Saved {
		t.Error("Saved should be true")
	}
	if result.Cancelled {
		t.Error("should not be cancelled")
	}
	if result.Model != mdl {
		t.Error("result should carry the edited model")
	}
}

func TestAnnotateWizard_EscCancels(t *testing.T) {
	w := NewAnnotateWizard(annotateModel())

	m, cmd := update(t, w, keyMsg("esc"))
	aw := asAnnotate(t, m)

	if !isQuitCmd(cmd) {
		t.Fatal("expected tea.Quit on esc")
	}
	if !aw.Result().Cancelled {
		t.Error("Cancelled should be true")
	}
	if aw.Result().Saved {
		t.Error("Saved should be false")
	}
}

func TestAnnotateWizard_EmptyPickReturnsToMenu(t *testing.T) {
	mdl := annotateModel()
	w := NewAnnotateWizard(mdl)

	// First table, "Business-key group", submit with nothing toggled
	m, _ := update(t, w, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("enter"))

	aw := asAnnotate(t, m)
	if aw.step != annotateStepMenu {
		t.Fatalf("expected annotateStepMenu, got %d", aw.step)
	}
	if len(mdl.Tables[0].Groups) != 0 {
		t.Errorf("no group should be created, got %v", mdl.Tables[0].Groups)
	}
}
