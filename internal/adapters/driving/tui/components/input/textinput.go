// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/styles"
)

// maxHistory bounds the remembered questions.
const maxHistory = 20

// AskInput wraps a bubbles textinput for typing questions. Up and down
// recall earlier questions.
type AskInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int

	history []string
	cursor  int
}

// NewAskInput creates a new question input component.
func NewAskInput(s *styles.Styles) *AskInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "اسأل عن خريطة مصر..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	return &AskInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (a *AskInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (a *AskInput) Update(msg tea.Msg) (*AskInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // only history keys are intercepted
		switch key.Type {
		case tea.KeyUp:
			a.recall(-1)
			return a, nil
		case tea.KeyDown:
			a.recall(1)
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.textinput, cmd = a.textinput.Update(msg)
	return a, cmd
}

// View renders the input.
func (a *AskInput) View() string {
	label := a.styles.Title.Render("Ask: ")
	input := a.styles.InputField.Render(a.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (a *AskInput) Value() string {
	return a.textinput.Value()
}

// Question returns the input with whitespace collapsed.
func (a *AskInput) Question() string {
	return strings.Join(strings.Fields(a.textinput.Value()), " ")
}

// SetValue sets the input value.
func (a *AskInput) SetValue(value string) {
	a.textinput.SetValue(value)
}

// Remember adds a question to the history. Repeating the latest question
// does not add it again.
func (a *AskInput) Remember(question string) {
	if question == "" {
		return
	}
	if n := len(a.history); n == 0 || a.history[n-1] != question {
		a.history = append(a.history, question)
		if len(a.history) > maxHistory {
			a.history = a.history[len(a.history)-maxHistory:]
		}
	}
	a.cursor = len(a.history)
}

// History returns the remembered questions, oldest first.
func (a *AskInput) History() []string {
	out := make([]string, len(a.history))
	copy(out, a.history)
	return out
}

// recall moves through the history. Moving past the newest entry clears
// the input.
func (a *AskInput) recall(step int) {
	if len(a.history) == 0 {
		return
	}
	a.cursor = min(max(a.cursor+step, 0), len(a.history))
	if a.cursor == len(a.history) {
		a.textinput.SetValue("")
		return
	}
	a.textinput.SetValue(a.history[a.cursor])
	a.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (a *AskInput) Focus() tea.Cmd {
	return a.textinput.Focus()
}

// Blur removes focus from the input.
func (a *AskInput) Blur() {
	a.textinput.Blur()
}

// Focused returns whether the input is focused.
func (a *AskInput) Focused() bool {
	return a.textinput.Focused()
}

// SetWidth sets the width of the input.
func (a *AskInput) SetWidth(width int) {
	a.width = width
	// Account for label and padding
	a.textinput.Width = max(width-10, 20)
}

// Width returns the current width.
func (a *AskInput) Width() int {
	return a.width
}

// Reset clears the input. The history is kept.
func (a *AskInput) Reset() {
	a.textinput.Reset()
	a.cursor = len(a.history)
}
