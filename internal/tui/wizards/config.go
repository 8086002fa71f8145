package wizards

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/dvgen/internal/config"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

// ConfigResult holds the result of the config wizard.
type ConfigResult struct {
	Cancelled bool
	Config    config.ProjectConfig
	SavePath  string
}

// ConfigWizard guides users through creating dvgen.yaml.
type ConfigWizard struct {
	step configStep

	// Connection info (from connection wizard or existing)
	connConfig dvgen.ConnectionConfig
	hasConn    bool

	// Model file path and output directory
	pathInputs []textinput.Model
	pathFocus  int

	// Export option toggles
	options   []optionEntry
	optionIdx int

	// Timeout
	timeout string

	// Result
	result ConfigResult

	// Dimensions
	width  int
	height int

	// Styles and keys
	styles wizardStyles
	keys   wizardKeys
}

type configStep int

const (
	configStepConnection configStep = iota
	configStepPaths
	configStepOptions
	configStepTimeout
	configStepReview
	configStepDone
)

type optionEntry struct {
	Name        string
	Description string
	Enabled     bool
}

// NewConfigWizard creates a new config wizard.
func NewConfigWizard() ConfigWizard {
	return ConfigWizard{
		step: configStepConnection,
		options: []optionEntry{
			{Name: "Denormalized export", Description: "single columns.csv instead of the four relational files"},
			{Name: "Implicit satellites", Description: "legacy fallback: one satellite per table without hashdiff groups"},
			{Name: "Strict mode", Description: "fail the export when error diagnostics are present"},
		},
		timeout: "3m",
		width:   80,
		height:  24,
		styles:  defaultWizardStyles(),
		keys:    defaultWizardKeys(),
	}
}

// WithConnection sets the connection config (from connection wizard).
func (w ConfigWizard) WithConnection(cfg dvgen.ConnectionConfig) ConfigWizard {
	w.connConfig = cfg
	w.hasConn = true
	w.step = configStepPaths
	w.pathInputs = w.createPathInputs()
	return w
}

func (w *ConfigWizard) createPathInputs() []textinput.Model {
	modelPath := textinput.New()
	modelPath.SetValue(dvgen.DefaultModelFileName)
	modelPath.CharLimit = 256
	modelPath.Width = 40

	outputDir := textinput.New()
	outputDir.SetValue(dvgen.DefaultOutputDir)
	outputDir.CharLimit = 256
	outputDir.Width = 40

	return []textinput.Model{modelPath, outputDir}
}

// Init implements tea.Model.
func (w ConfigWizard) Init() tea.Cmd {
	if len(w.pathInputs) > 0 {
		return w.pathInputs[0].Focus()
	}
	return nil
}

// Update implements tea.Model.
func (w ConfigWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			w.result.Cancelled = true
			return w, tea.Quit
		}

		switch w.step {
		case configStepPaths:
			return w.updatePaths(msg)
		case configStepOptions:
			return w.updateOptions(msg)
		case configStepTimeout:
			return w.updateTimeout(msg)
		case configStepReview:
			return w.updateReview(msg)
		}
	}

	return w, nil
}

func (w ConfigWizard) updatePaths(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Tab), msg.String() == "down":
		if w.pathFocus < len(w.pathInputs)-1 {
			w.pathInputs[w.pathFocus].Blur()
			w.pathFocus++
			return w, w.pathInputs[w.pathFocus].Focus()
		}
	case msg.String() == "shift+tab", msg.String() == "up":
		if w.pathFocus > 0 {
			w.pathInputs[w.pathFocus].Blur()
			w.pathFocus--
			return w, w.pathInputs[w.pathFocus].Focus()
		}
	case key.Matches(msg, w.keys.Select):
		if w.pathFocus < len(w.pathInputs)-1 {
			w.pathInputs[w.pathFocus].Blur()
			w.pathFocus++
			return w, w.pathInputs[w.pathFocus].Focus()
		}
		w.step = configStepOptions
	case key.Matches(msg, w.keys.Back):
		w.result.Cancelled = true
		return w, tea.Quit
	default:
		var cmd tea.Cmd
		w.pathInputs[w.pathFocus], cmd = w.pathInputs[w.pathFocus].Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w ConfigWizard) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.optionIdx > 0 {
			w.optionIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if w.optionIdx < len(w.options)-1 {
			w.optionIdx++
		}
	case msg.String() == " ", key.Matches(msg, w.keys.Select):
		w.options[w.optionIdx].Enabled = !w.options[w.optionIdx].Enabled
	case msg.String() == "n":
		w.step = configStepTimeout
	case key.Matches(msg, w.keys.Back):
		w.step = configStepPaths
	}
	return w, nil
}

func (w ConfigWizard) updateTimeout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		w.timeout = "1m"
	case "3":
		w.timeout = "3m"
	case "5":
		w.timeout = "5m"
	case "0":
		w.timeout = "10m"
	}

	switch {
	case key.Matches(msg, w.keys.Select), msg.String() == "n":
		w.step = configStepReview
	case key.Matches(msg, w.keys.Back):
		w.step = configStepOptions
	}
	return w, nil
}

func (w ConfigWizard) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		w.buildConfig()
		w.step = configStepDone
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = configStepTimeout
	}
	return w, nil
}

func (w *ConfigWizard) buildConfig() {
	w.result.Config = w.assembleConfig()
	w.result.SavePath = config.ConfigFileName
}

func (w ConfigWizard) assembleConfig() config.ProjectConfig {
	modelPath := dvgen.DefaultModelFileName
	outputDir := dvgen.DefaultOutputDir
	if len(w.pathInputs) == 2 {
		if v := w.pathInputs[0].Value(); v != "" {
			modelPath = v
		}
		if v := w.pathInputs[1].Value(); v != "" {
			outputDir = v
		}
	}

	return config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     w.connConfig.Host,
			Port:     w.connConfig.Port,
			Username: w.connConfig.Username,
			Database: w.connConfig.Database,
			SSLMode:  w.connConfig.SSLMode,
		},
		Model: config.ModelConfig{
			Path: modelPath,
		},
		Export: config.ExportConfig{
			OutputDir:          outputDir,
			Denormalized:       w.options[0].Enabled,
			ImplicitSatellites: w.options[1].Enabled,
			Strict:             w.options[2].Enabled,
		},
		Timeout: w.timeout,
	}
}

// View implements tea.Model.
func (w ConfigWizard) View() string {
	var b strings.Builder

	b.WriteString(w.styles.Title.Render("dvgen - Configuration Builder"))
	b.WriteString("\n")

	switch w.step {
	case configStepPaths:
		b.WriteString(w.viewPaths())
	case configStepOptions:
		b.WriteString(w.viewOptions())
	case configStepTimeout:
		b.WriteString(w.viewTimeout())
	case configStepReview:
		b.WriteString(w.viewReview())
	}

	return b.String()
}

func (w ConfigWizard) viewPaths() string {
	var b strings.Builder

	if w.hasConn {
		b.WriteString(w.styles.Success.Render("✓ Connection: "))
		b.WriteString(fmt.Sprintf("%s:%d/%s", w.connConfig.Host, w.connConfig.Port, w.connConfig.Database))
		b.WriteString("\n\n")
	}

	b.WriteString(w.styles.Subtitle.Render("Project Files"))
	b.WriteString("\n\n")

	b.WriteString("Model file: ")
	b.WriteString(w.pathInputs[0].View())
	b.WriteString("\n")
	b.WriteString("Output dir: ")
	b.WriteString(w.pathInputs[1].View())
	b.WriteString("\n\n")
	b.WriteString(w.styles.Help.Render("tab next • enter continue • esc cancel"))

	return b.String()
}

func (w ConfigWizard) viewOptions() string {
	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("Export Options"))
	b.WriteString("\n\n")

	for i, opt := range w.options {
		cursor := "  "
		style := w.styles.Unselected
		if i == w.optionIdx {
			cursor = ""
			style = w.styles.Selected
		}
		symbol := "☐"
		if opt.Enabled {
			symbol = "☑"
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("%s %s", symbol, opt.Name)))
		b.WriteString("\n")
		b.WriteString("    ")
		b.WriteString(w.styles.Description.Render(opt.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(w.styles.Help.Render("↑/↓ navigate • space toggle • n next step • esc back"))

	return b.String()
}

func (w ConfigWizard) viewTimeout() string {
	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("Timeout"))
	b.WriteString("\n")
	b.WriteString(w.styles.Description.Render("Maximum time for introspection (press 1, 3, 5, or 0 for 10m)"))
	b.WriteString("\n\n")

	timeouts := []string{"1m", "3m", "5m", "10m"}
	for _, t := range timeouts {
		style := w.styles.Unselected
		symbol := "○"
		if t == w.timeout {
			style = w.styles.Selected
			symbol = "●"
		}
		b.WriteString("  ")
		b.WriteString(style.Render(symbol + " " + t))
		b.WriteString("\n")
	}

	b.WriteString(w.styles.Help.Render("\n1/3/5/0 select • n next step • esc back"))

	return b.String()
}

func (w ConfigWizard) viewReview() string {
	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("Review Configuration"))
	b.WriteString("\n\n")

	yamlBytes, _ := yaml.Marshal(w.assembleConfig())
	lines := strings.Split(string(yamlBytes), "\n")
	for _, line := range lines {
		b.WriteString(w.styles.Description.Render("  " + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(w.styles.Help.Render("enter save to " + config.ConfigFileName + " • esc go back"))

	return b.String()
}

// Result returns the wizard result.
func (w ConfigWizard) Result() ConfigResult {
	return w.result
}

// SaveConfig saves the configuration to dvgen.yaml.
func (w ConfigWizard) SaveConfig(dir string) error {
	path := filepath.Join(dir, config.ConfigFileName)

	data, err := yaml.Marshal(w.result.Config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// RunConfigWizard executes the config wizard with an existing connection.
func RunConfigWizard(connConfig dvgen.ConnectionConfig) (ConfigResult, error) {
	wizard := NewConfigWizard().WithConnection(connConfig)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return ConfigResult{Cancelled: true}, err
	}

	return model.(ConfigWizard).Result(), nil
}
