// Package prompt provides the interactive file-name prompt.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrSourceExhausted reports that no readable data file was named within the
// allowed number of attempts.
var ErrSourceExhausted = errors.New("unable to open a data file; stop and check file name")

// ErrAborted reports that the user cancelled the prompt.
var ErrAborted = errors.New("prompt aborted")

// maxAttempts is the initial attempt plus five retries.
const maxAttempts = 6

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))

// Loader turns a file path into count samples.
type Loader func(path string) ([]string, error)

// Result holds the successfully loaded samples and their source path.
type Result struct {
	Path    string
	Samples []string
}

// Model implements the Bubble Tea file-name prompt.
type Model struct {
	input    textinput.Model
	loader   Loader
	attempts int
	errMsg   string

	result Result
	err    error
	done   bool
}

// NewModel constructs a prompt model around a sample loader.
func NewModel(loader Loader) *Model {
	input := textinput.New()
	input.Placeholder = "counts.txt"
	input.Focus()
	return &Model{
		input:  input,
		loader: loader,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrAborted
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.input.Value())
	samples, err := m.loader(path)
	if err == nil {
		m.result = Result{Path: path, Samples: samples}
		m.done = true
		return m, tea.Quit
	}
	m.attempts++
	if m.attempts >= maxAttempts {
		m.err = ErrSourceExhausted
		m.done = true
		return m, tea.Quit
	}
	m.errMsg = fmt.Sprintf("Unable to open the file %q: %v", path, err)
	m.input.SetValue("")
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString("Name of file with COUNT data: ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

// AskForSamples prompts for a file name until the loader succeeds or the
// attempts are exhausted.
func AskForSamples(loader Loader) (Result, error) {
	model := NewModel(loader)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run prompt: %w", err)
	}
	m, ok := final.(*Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected prompt model type %T", final)
	}
	if m.err != nil {
		return Result{}, m.err
	}
	return m.result, nil
}
