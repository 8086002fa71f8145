package wizards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/internal/naming"
	"github.com/vvka-141/dvgen/internal/tui/components"
)

// AnnotateResult holds the outcome of the annotate wizard. The wizard edits
// the model in place; callers persist it only when Saved is set.
type AnnotateResult struct {
	Cancelled bool
	Saved     bool
	Model     *model.Model
}

// AnnotateWizard walks the tables of a model and lets the user assign
// business concepts, compose ordered business-key, link, and hashdiff
// groups, and mark technical columns.
type AnnotateWizard struct {
	m    *model.Model
	step annotateStep

	// Table list
	tableIdx int

	// Per-table action menu
	menuIdx int

	// Concept editing
	conceptField components.TextField

	// Group editing
	picker    components.MultiSelect
	nameField components.TextField
	groupKind groupKind
	picked    []string

	// Technical column marking
	colCursor int

	result AnnotateResult

	width  int
	height int
	styles wizardStyles
	keys   wizardKeys
}

type annotateStep int

const (
	annotateStepTables annotateStep = iota
	annotateStepMenu
	annotateStepConcept
	annotateStepPickColumns
	annotateStepName
	annotateStepTechnical
)

type groupKind int

const (
	groupKindBusinessKey groupKind = iota
	groupKindLink
	groupKindHashdiff
)

var menuActions = []string{
	"Business concept",
	"Business-key group",
	"Link group",
	"Hashdiff group",
	"Technical columns",
	"Back to tables",
}

// NewAnnotateWizard creates an annotate wizard over the given model.
func NewAnnotateWizard(m *model.Model) AnnotateWizard {
	return AnnotateWizard{
		m:      m,
		step:   annotateStepTables,
		width:  80,
		height: 24,
		styles: defaultWizardStyles(),
		keys:   defaultWizardKeys(),
	}
}

func (w AnnotateWizard) table() *model.Table {
	return &w.m.Tables[w.tableIdx]
}

// Init implements tea.Model.
func (w AnnotateWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w AnnotateWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		switch w.step {
		case annotateStepTables:
			return w.updateTables(msg)
		case annotateStepMenu:
			return w.updateMenu(msg)
		case annotateStepConcept:
			return w.updateConcept(msg)
		case annotateStepPickColumns:
			return w.updatePickColumns(msg)
		case annotateStepName:
			return w.updateName(msg)
		case annotateStepTechnical:
			return w.updateTechnical(msg)
		}

	default:
		// Forward cursor blink etc. to the active text input
		switch w.step {
		case annotateStepConcept:
			var cmd tea.Cmd
			w.conceptField, cmd = w.conceptField.Update(msg)
			return w, cmd
		case annotateStepName:
			var cmd tea.Cmd
			w.nameField, cmd = w.nameField.Update(msg)
			return w, cmd
		}
	}

	return w, nil
}

func (w AnnotateWizard) updateTables(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.tableIdx > 0 {
			w.tableIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if w.tableIdx < len(w.m.Tables)-1 {
			w.tableIdx++
		}
	case key.Matches(msg, w.keys.Select):
		if len(w.m.Tables) > 0 {
			w.menuIdx = 0
			w.step = annotateStepMenu
		}
	case msg.String() == "s":
		w.result.Saved = true
		w.result.Model = w.m
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back), key.Matches(msg, w.keys.Quit):
		w.result.Cancelled = true
		return w, tea.Quit
	}
	return w, nil
}

func (w AnnotateWizard) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.menuIdx > 0 {
			w.menuIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if w.menuIdx < len(menuActions)-1 {
			w.menuIdx++
		}
	case key.Matches(msg, w.keys.Select):
		return w.enterMenuAction()
	case key.Matches(msg, w.keys.Back):
		w.step = annotateStepTables
	}
	return w, nil
}

func (w AnnotateWizard) enterMenuAction() (tea.Model, tea.Cmd) {
	t := w.table()
	switch w.menuIdx {
	case 0: // business concept
		w.conceptField = components.NewTextField("Business concept", t.Name).
			WithValue(t.BusinessConcept)
		w.step = annotateStepConcept
		return w, w.conceptField.Focus()
	case 1: // business-key group
		w.groupKind = groupKindBusinessKey
		w.picker = components.NewMultiSelect(
			fmt.Sprintf("Business-key columns for %s.%s", t.Schema, t.Name),
			w.columnOptions()).
			WithPreselected(existingKeyColumns(t))
		w.step = annotateStepPickColumns
	case 2: // link group
		w.groupKind = groupKindLink
		w.picker = components.NewMultiSelect(
			fmt.Sprintf("Hashkeys referenced by the link on %s.%s", t.Schema, t.Name),
			w.hashkeyOptions()).
			WithPreselected(existingLinkRefs(t))
		w.step = annotateStepPickColumns
	case 3: // hashdiff group
		w.groupKind = groupKindHashdiff
		w.picker = components.NewMultiSelect(
			fmt.Sprintf("Change-tracking columns for %s.%s", t.Schema, t.Name),
			w.columnOptions()).
			WithPreselected(existingHashdiffColumns(t))
		w.step = annotateStepPickColumns
	case 4: // technical columns
		w.colCursor = 0
		w.step = annotateStepTechnical
	case 5: // back
		w.step = annotateStepTables
	}
	return w, nil
}

func (w AnnotateWizard) updateConcept(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		w.table().BusinessConcept = strings.TrimSpace(w.conceptField.Value())
		w.step = annotateStepMenu
		return w, nil
	case key.Matches(msg, w.keys.Back):
		w.step = annotateStepMenu
		return w, nil
	}
	var cmd tea.Cmd
	w.conceptField, cmd = w.conceptField.Update(msg)
	return w, cmd
}

func (w AnnotateWizard) updatePickColumns(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m, _ := w.picker.Update(msg)
	w.picker = m.(components.MultiSelect)

	if w.picker.Cancelled() {
		w.step = annotateStepMenu
		return w, nil
	}
	if w.picker.Submitted() {
		w.picked = w.picker.Values()
		if len(w.picked) == 0 {
			w.step = annotateStepMenu
			return w, nil
		}
		w.nameField = components.NewTextField(w.nameLabel(), w.defaultGroupName())
		w.step = annotateStepName
		return w, w.nameField.Focus()
	}
	return w, nil
}

func (w AnnotateWizard) nameLabel() string {
	if w.groupKind == groupKindHashdiff {
		return "Hashdiff name"
	}
	return "Hashkey name"
}

func (w AnnotateWizard) defaultGroupName() string {
	t := w.table()
	if w.groupKind == groupKindHashdiff {
		return naming.DefaultHashdiffName(t.Name)
	}
	g := model.BusinessKeyGroup{}
	return model.EffectiveHashkeyName(t, g)
}

func (w AnnotateWizard) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		w.applyGroup(strings.TrimSpace(w.nameField.Value()))
		w.step = annotateStepMenu
		return w, nil
	case key.Matches(msg, w.keys.Back):
		w.step = annotateStepPickColumns
		return w, nil
	}
	var cmd tea.Cmd
	w.nameField, cmd = w.nameField.Update(msg)
	return w, cmd
}

// applyGroup writes the picked selection back to the table, replacing the
// first group of the same kind or appending a new one.
func (w AnnotateWizard) applyGroup(name string) {
	t := w.table()
	switch w.groupKind {
	case groupKindBusinessKey:
		g := model.BusinessKeyGroup{HashkeyName: name, Columns: w.picked}
		replaceGroup(t, false, g)
	case groupKindLink:
		g := model.BusinessKeyGroup{HashkeyName: name, Link: true, ReferencedHashkeys: w.picked}
		replaceGroup(t, true, g)
	case groupKindHashdiff:
		if name == "" {
			name = naming.DefaultHashdiffName(t.Name)
		}
		g := model.HashdiffGroup{
			Name:            name,
			BusinessConcept: t.BusinessConcept,
			Selection:       model.SelectOnly(w.picked...),
		}
		if len(t.Hashdiffs) > 0 {
			t.Hashdiffs[0] = g
		} else {
			t.Hashdiffs = append(t.Hashdiffs, g)
		}
	}
}

func replaceGroup(t *model.Table, link bool, g model.BusinessKeyGroup) {
	for i := range t.Groups {
		if t.Groups[i].Link == link {
			t.Groups[i] = g
			return
		}
	}
	t.Groups = append(t.Groups, g)
}

func (w AnnotateWizard) updateTechnical(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := w.table()
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.colCursor > 0 {
			w.colCursor--
		}
	case key.Matches(msg, w.keys.Down):
		if w.colCursor < len(t.Columns)-1 {
			w.colCursor++
		}
	case msg.String() == "r":
		// A table has at most one record-source column.
		col := &t.Columns[w.colCursor]
		was := col.RecordSource
		for i := range t.Columns {
			t.Columns[i].RecordSource = false
		}
		col.RecordSource = !was
	case msg.String() == "l":
		col := &t.Columns[w.colCursor]
		was := col.LoadDate
		for i := range t.Columns {
			t.Columns[i].LoadDate = false
		}
		col.LoadDate = !was
	case key.Matches(msg, w.keys.Select), key.Matches(msg, w.keys.Back):
		w.step = annotateStepMenu
	}
	return w, nil
}

func (w AnnotateWizard) columnOptions() []components.Option {
	t := w.table()
	opts := make([]components.Option, 0, len(t.Columns))
	for _, c := range t.Columns {
		opts = append(opts, components.Option{
			Label:       c.Name,
			Description: c.DataType,
			Value:       c.Name,
		})
	}
	return opts
}

// hashkeyOptions lists every hashkey defined by a non-link group anywhere in
// the model; link groups reference this global namespace.
func (w AnnotateWizard) hashkeyOptions() []components.Option {
	var opts []components.Option
	for i := range w.m.Tables {
		t := &w.m.Tables[i]
		for _, g := range t.HubGroups() {
			hk := model.EffectiveHashkeyName(t, g)
			opts = append(opts, components.Option{
				Label:       hk,
				Description: fmt.Sprintf("%s.%s", t.Schema, t.Name),
				Value:       hk,
			})
		}
	}
	return opts
}

func existingKeyColumns(t *model.Table) []string {
	for _, g := range t.Groups {
		if !g.Link {
			return g.Columns
		}
	}
	return nil
}

func existingLinkRefs(t *model.Table) []string {
	for _, g := range t.Groups {
		if g.Link {
			return g.ReferencedHashkeys
		}
	}
	return nil
}

func existingHashdiffColumns(t *model.Table) []string {
	if len(t.Hashdiffs) == 0 {
		return nil
	}
	return t.Hashdiffs[0].Selection.Members(t)
}

// View implements tea.Model.
func (w AnnotateWizard) View() string {
	var b strings.Builder

	b.WriteString(w.styles.Title.Render("dvgen annotate - Model Editor"))
	b.WriteString("\n")

	switch w.step {
	case annotateStepTables:
		b.WriteString(w.viewTables())
	case annotateStepMenu:
		b.WriteString(w.viewMenu())
	case annotateStepConcept:
		b.WriteString(w.conceptField.View())
		b.WriteString(w.styles.Help.Render("\nenter apply • esc back"))
	case annotateStepPickColumns:
		b.WriteString(w.picker.View())
	case annotateStepName:
		b.WriteString(w.nameField.View())
		b.WriteString(w.styles.Help.Render("\nenter apply • esc back"))
	case annotateStepTechnical:
		b.WriteString(w.viewTechnical())
	}

	return b.String()
}

func (w AnnotateWizard) viewTables() string {
	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("Select a table to annotate"))
	b.WriteString("\n\n")

	for i := range w.m.Tables {
		t := &w.m.Tables[i]
		style := w.styles.Unselected
		cursor := "  "
		if i == w.tableIdx {
			style = w.styles.Selected
			cursor = ""
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("%s.%s", t.Schema, t.Name)))
		b.WriteString(w.styles.Description.Render(tableSummary(t)))
		b.WriteString("\n")
	}

	b.WriteString(w.styles.Help.Render("\n↑/↓ navigate • enter edit • s save • esc cancel"))

	return b.String()
}

func tableSummary(t *model.Table) string {
	var parts []string
	if t.BusinessConcept != "" {
		parts = append(parts, t.BusinessConcept)
	}
	if n := len(t.HubGroups()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d key group(s)", n))
	}
	if n := len(t.LinkGroups()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d link(s)", n))
	}
	if n := len(t.Hashdiffs); n > 0 {
		parts = append(parts, fmt.Sprintf("%d hashdiff(s)", n))
	}
	if len(parts) == 0 {
		return "unannotated"
	}
	return strings.Join(parts, ", ")
}

func (w AnnotateWizard) viewMenu() string {
	var b strings.Builder

	t := w.table()
	b.WriteString(w.styles.Subtitle.Render(fmt.Sprintf("Annotate %s.%s", t.Schema, t.Name)))
	b.WriteString("\n\n")

	for i, action := range menuActions {
		style := w.styles.Unselected
		cursor := "  "
		symbol := "○"
		if i == w.menuIdx {
			style = w.styles.Selected
			cursor = ""
			symbol = "●"
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + action))
		b.WriteString("\n")
	}

	b.WriteString(w.styles.Help.Render("\n↑/↓ navigate • enter select • esc back"))

	return b.String()
}

func (w AnnotateWizard) viewTechnical() string {
	var b strings.Builder

	t := w.table()
	b.WriteString(w.styles.Subtitle.Render("Mark technical columns"))
	b.WriteString("\n\n")

	for i, c := range t.Columns {
		style := w.styles.Unselected
		cursor := "  "
		if i == w.colCursor {
			style = w.styles.Selected
			cursor = ""
		}

		var marks []string
		if c.RecordSource {
			marks = append(marks, "record source")
		}
		if c.LoadDate {
			marks = append(marks, "load date")
		}
		line := c.Name
		if len(marks) > 0 {
			line += " (" + strings.Join(marks, ", ") + ")"
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(w.styles.Help.Render("\n↑/↓ navigate • r record source • l load date • enter done"))

	return b.String()
}

// Result returns the wizard result.
func (w AnnotateWizard) Result() AnnotateResult {
	return w.result
}

// RunAnnotateWizard executes the annotate wizard over the given model.
func RunAnnotateWizard(m *model.Model) (AnnotateResult, error) {
	if len(m.Tables) == 0 {
		return AnnotateResult{Cancelled: true}, fmt.Errorf("model has no tables to annotate")
	}

	wizard := NewAnnotateWizard(m)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return AnnotateResult{Cancelled: true}, err
	}
	return final.(AnnotateWizard).Result(), nil
}
