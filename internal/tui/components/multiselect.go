package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MultiSelect is a component for picking several options from a list.
// Selection order is preserved: the first option toggled on is the first
// value returned, which matters wherever the picked set is ordered
// (business-key hashing order, hashdiff member order).
type MultiSelect struct {
	title     string
	options   []Option
	cursor    int
	order     []int
	width     int
	showHelp  bool
	keyMap    multiSelectKeyMap
	styles    multiSelectStyles
	submitted bool
	cancelled bool
}

type multiSelectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Submit key.Binding
	Quit   key.Binding
}

type multiSelectStyles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Order       lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

func defaultMultiSelectStyles() multiSelectStyles {
	return multiSelectStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Unselected:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Order:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

func defaultMultiSelectKeyMap() multiSelectKeyMap {
	return multiSelectKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// NewMultiSelect creates a new multi-select component.
func NewMultiSelect(title string, options []Option) MultiSelect {
	return MultiSelect{
		title:    title,
		options:  options,
		width:    60,
		showHelp: true,
		keyMap:   defaultMultiSelectKeyMap(),
		styles:   defaultMultiSelectStyles(),
	}
}

// WithWidth sets the width of the multi-select.
func (s MultiSelect) WithWidth(width int) MultiSelect {
	s.width = width
	return s
}

// WithShowHelp enables or disables the help text.
func (s MultiSelect) WithShowHelp(show bool) MultiSelect {
	s.showHelp = show
	return s
}

// WithPreselected toggles on the options whose values appear in values,
// in the order given. Unknown values are ignored.
func (s MultiSelect) WithPreselected(values []string) MultiSelect {
	for _, v := range values {
		for i, opt := range s.options {
			if opt.Value == v {
				s.order = append(s.order, i)
				break
			}
		}
	}
	return s
}

// Init implements tea.Model.
func (s MultiSelect) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s MultiSelect) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, s.keyMap.Down):
			if s.cursor < len(s.options)-1 {
				s.cursor++
			}
		case key.Matches(msg, s.keyMap.Toggle):
			s.toggle(s.cursor)
		case key.Matches(msg, s.keyMap.Submit):
			s.submitted = true
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Quit):
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
	}
	return s, nil
}

func (s *MultiSelect) toggle(idx int) {
	for i, sel := range s.order {
		if sel == idx {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
	s.order = append(s.order, idx)
}

// positionOf returns the 1-based selection position of an option index,
// or 0 if the option is not selected.
func (s MultiSelect) positionOf(idx int) int {
	for i, sel := range s.order {
		if sel == idx {
			return i + 1
		}
	}
	return 0
}

// View implements tea.Model.
func (s MultiSelect) View() string {
	var b strings.Builder

	b.WriteString(s.styles.Title.Render(s.title))
	b.WriteString("\n\n")

	for i, opt := range s.options {
		cursor := "  "
		style := s.styles.Unselected

		if i == s.cursor {
			cursor = ""
			style = s.styles.Selected
		}

		mark := "[ ]"
		if pos := s.positionOf(i); pos > 0 {
			mark = s.styles.Order.Render(fmt.Sprintf("[%d]", pos))
		}

		b.WriteString(cursor)
		b.WriteString(mark)
		b.WriteString(" ")
		b.WriteString(style.Render(opt.Label))
		b.WriteString("\n")

		if opt.Description != "" {
			b.WriteString(s.styles.Description.Render(opt.Description))
			b.WriteString("\n")
		}
	}

	if s.showHelp {
		b.WriteString(s.styles.Help.Render("\n↑/↓ navigate • space toggle • enter confirm • esc cancel"))
	}

	return b.String()
}

// Values returns the selected option values in selection order.
func (s MultiSelect) Values() []string {
	values := make([]string, 0, len(s.order))
	for _, idx := range s.order {
		values = append(values, s.options[idx].Value)
	}
	return values
}

// Cancelled returns true if the user cancelled the selection.
func (s MultiSelect) Cancelled() bool {
	return s.cancelled
}

// Submitted returns true if the user confirmed the selection.
func (s MultiSelect) Submitted() bool {
	return s.submitted
}
