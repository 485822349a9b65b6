// Package tui is the terminal front end: an output buffer above a single
// command line, drawn in the configured colors.
package tui

import (
	"strings"

	"f3os/internal/config"
	"f3os/internal/dispatch"
	"f3os/internal/log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Cell size used to turn the pixel geometry of the config into terminal cells
const (
	cellWidth  = 8
	cellHeight = 16
)

// Prompt is drawn in front of the command line
const Prompt = ">> "

// Dispatcher runs command lines
type Dispatcher interface {
	Dispatch(line string) dispatch.Result
	Start() dispatch.Result
}

// Settings is the part of the config store the UI reads
type Settings interface {
	Bool(key string, def bool) bool
	Int(key string, def int) int
	Color(key string, def config.Color) config.Color
}

// ConfigReloadedMsg tells the model the settings changed underneath it
type ConfigReloadedMsg struct{}

type Model struct {
	settings   Settings
	dispatcher Dispatcher
	keys       KeyMap
	styles     Styles

	input  textinput.Model
	output viewport.Model
	lines  []string

	// winW and winH are the last window size reported by the terminal
	winW, winH    int
	width, height int
	quitting      bool
}

func New(settings Settings, d Dispatcher) *Model {
	m := &Model{
		settings:   settings,
		dispatcher: d,
		keys:       DefaultKeyMap(),
		styles:     stylesFrom(settings),
	}

	m.input = textinput.New()
	m.input.Prompt = Prompt
	m.input.Focus()

	m.output = viewport.New(0, 0)
	m.resize(0, 0)
	m.applyStyles()

	m.setLines(d.Start().Lines)
	return m
}

// ProgramOptions returns the bubbletea options matching the settings
func ProgramOptions(settings Settings) []tea.ProgramOption {
	if settings.Bool(config.KeyFullscreen, false) {
		return []tea.ProgramOption{tea.WithAltScreen()}
	}
	return nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW, m.winH = msg.Width, msg.Height
		m.resize(msg.Width, msg.Height)
		return m, nil
	case ConfigReloadedMsg:
		m.styles = stylesFrom(m.settings)
		m.applyStyles()
		m.resize(m.winW, m.winH)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the command line. The line is cleared whatever the result.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	res := m.dispatcher.Dispatch(line)
	if res.Render {
		m.setLines(res.Lines)
	}
	if res.Quit {
		log.Debug("quit requested from command line")
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.output.View())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	return m.styles.App.Width(m.width).Render(sb.String())
}

func (m *Model) setLines(lines []string) {
	m.lines = append([]string(nil), lines...)
	m.output.SetContent(m.styles.Output.Render(strings.Join(m.lines, "\n")))
	m.output.GotoTop()
}

func (m *Model) applyStyles() {
	m.input.PromptStyle = m.styles.Prompt
	m.input.TextStyle = m.styles.Input
	m.input.Cursor.Style = m.styles.Input
	m.output.Style = m.styles.Output
	if m.lines != nil {
		m.setLines(m.lines)
	}
}

// geometry picks the console size in cells. Fullscreen takes the whole
// window; otherwise the configured pixel size is used, clamped to the window.
func (m *Model) geometry(winW, winH int) (int, int) {
	if m.settings.Bool(config.KeyFullscreen, false) && winW > 0 && winH > 0 {
		return winW, winH
	}
	w := m.settings.Int(config.KeyWidth, 1024) / cellWidth
	h := m.settings.Int(config.KeyHeight, 768) / cellHeight
	if winW > 0 && w > winW {
		w = winW
	}
	if winH > 0 && h > winH {
		h = winH
	}
	return max(w, 1), max(h, 2)
}

func (m *Model) resize(winW, winH int) {
	m.width, m.height = m.geometry(winW, winH)
	m.output.Width = m.width
	m.output.Height = m.outputHeight()
	m.input.Width = max(m.width-len(Prompt)-1, 1)
}

func (m *Model) outputHeight() int {
	return max(m.height-1, 1)
}

// Lines returns what the output buffer currently holds
func (m *Model) Lines() []string {
	return m.lines
}

// InputValue returns the text on the command line
func (m *Model) InputValue() string {
	return m.input.Value()
}

// Size returns the console size in cells
func (m *Model) Size() (int, int) {
	return m.width, m.height
}

// Styles returns the palette in use
func (m *Model) Styles() Styles {
	return m.styles
}
