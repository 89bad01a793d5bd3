// Package ask provides the question and answer view for the TUI.
package ask

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
)

// Status messages shown for answers without facts.
const (
	hintNoTokens  = "اكتب كلمات أوضح"
	hintNoMatches = "لم أجد إجابة، جرّب كلمات أخرى"
)

// View represents the ask view with input, answer list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.AskInput
	list      *list.AnswerList
	statusbar *status.Bar

	knowledge driving.KnowledgeService

	width      int
	height     int
	ready      bool
	err        error
	result     *domain.QueryResult
	focusInput bool // true = input mode (typing), false = answer mode (navigating)
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, knowledge driving.KnowledgeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewAskInput(s),
		list:       list.NewAnswerList(s),
		statusbar:  status.NewBar(s, km),
		knowledge:  knowledge,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerReady:
		v.handleAnswer(msg.Result)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			question := v.input.Question()
			if question == "" {
				return v, nil
			}
			v.input.Remember(question)
			v.statusbar.SetState(status.StateThinking)
			v.statusbar.SetMessage("")
			return v, v.ask(question)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case msg.Type == tea.KeyEnter:
		pointID := v.list.SelectedPointID()
		if pointID == "" {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.PointSelected{PointID: pointID}
		}
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.NewQuestion):
		v.focusInput = true
		v.input.Reset()
		return v, v.input.Focus()
	case keymap.Matches(msg.String(), v.keymap.Random):
		v.statusbar.SetState(status.StateThinking)
		return v, v.randomFact()
	}
	return v, nil
}

// ask answers a question.
func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		if v.knowledge == nil {
			return messages.ErrorOccurred{Err: ErrNoKnowledgeService}
		}
		return messages.AnswerReady{Result: v.knowledge.Ask(question)}
	}
}

// randomFact answers with a random fact.
func (v *View) randomFact() tea.Cmd {
	return func() tea.Msg {
		if v.knowledge == nil {
			return messages.ErrorOccurred{Err: ErrNoKnowledgeService}
		}
		return messages.AnswerReady{Result: v.knowledge.RandomFact()}
	}
}

// handleAnswer shows an answer. A question without searchable words keeps
// the previous answer and the input focused.
func (v *View) handleAnswer(result domain.QueryResult) {
	v.err = nil

	if result.Outcome == domain.OutcomeNoTokens {
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(hintNoTokens)
		return
	}

	v.result = &result
	v.list.SetAnswer(result)
	v.statusbar.SetState(status.StateAnswered)
	v.statusbar.SetFactCount(len(result.MatchedFacts))
	v.statusbar.SetMessage("")
	if result.Outcome == domain.OutcomeNoMatches {
		v.statusbar.SetMessage(hintNoMatches)
	}

	v.focusInput = false
	v.input.Blur()
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Khareeta"), "")
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.result != nil && v.result.Query == domain.RandomFactQuery {
		sections = append(sections, v.styles.Warning.Render("💡 معلومة عشوائية"), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// SetScope shows the lesson scope in the status bar.
func (v *View) SetScope(title string) {
	v.statusbar.SetScope(title)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the current input text.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the input text.
func (v *View) SetQuestion(question string) {
	v.input.SetValue(question)
}

// Result returns the shown answer, if any.
func (v *View) Result() (domain.QueryResult, bool) {
	if v.result == nil {
		return domain.QueryResult{}, false
	}
	return *v.result, true
}

// SelectedIndex returns the index of the selected fact.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the answer and returns to input mode. Question history and
// scope are kept.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.Reset()
	v.list.Clear()
	v.result = nil
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
