// Package point provides the map point view for the TUI: the point's
// details, its category quiz and the visit action.
package point

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
)

// View is the map point view.
type View struct {
	styles    *styles.Styles
	knowledge driving.KnowledgeService
	ctx       context.Context

	point        *domain.PointOfInterest
	quiz         domain.PointQuiz
	legend       map[string]domain.Category
	answer       *domain.PointQuizAnswer
	visit        *domain.VisitResult
	scrollOffset int
	width        int
	height       int
	err          error
}

// NewView creates a new point view.
func NewView(s *styles.Styles, knowledge driving.KnowledgeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		knowledge: knowledge,
		ctx:       context.Background(),
		legend:    make(map[string]domain.Category),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for visits and quiz answers.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetPoint clears the view and returns a command that loads a point.
func (v *View) SetPoint(id string) tea.Cmd {
	v.point = nil
	v.answer = nil
	v.visit = nil
	v.err = nil
	v.scrollOffset = 0

	return func() tea.Msg {
		if v.knowledge == nil {
			return messages.PointLoaded{Err: errors.New("knowledge service not available")}
		}
		p, err := v.knowledge.Point(id)
		if err != nil {
			return messages.PointLoaded{Err: err}
		}
		quiz, err := v.knowledge.PointQuiz(id)
		return messages.PointLoaded{Point: p, Quiz: quiz, Err: err}
	}
}

// Update handles messages for the point view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PointLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		p := msg.Point
		v.point = &p
		v.quiz = msg.Quiz
		if v.knowledge != nil {
			for _, c := range v.knowledge.Categories() {
				v.legend[c.Key] = c
			}
		}
		return v, nil

	case messages.QuizAnswered:
		if msg.Err != nil && !errors.Is(msg.Err, domain.ErrAlreadyAnswered) {
			v.err = msg.Err
			return v, nil
		}
		a := msg.Answer
		if errors.Is(msg.Err, domain.ErrAlreadyAnswered) {
			a.Awarded = 0
		}
		v.answer = &a
		return v, nil

	case messages.VisitRecorded:
		if msg.Err != nil && msg.Result.PointID == "" {
			v.err = msg.Err
			return v, nil
		}
		r := msg.Result
		v.visit = &r
		v.err = msg.Err
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch key {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
		return v, nil
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
		return v, nil
	case "v":
		return v, v.recordVisit()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewAsk}
		}
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return v, v.answerQuiz(int(key[0] - '1'))
	}
	return v, nil
}

// recordVisit returns a command that visits the shown point.
func (v *View) recordVisit() tea.Cmd {
	if v.point == nil || v.knowledge == nil {
		return nil
	}
	id := v.point.ID
	return func() tea.Msg {
		result, err := v.knowledge.RecordVisit(v.ctx, id)
		return messages.VisitRecorded{Result: result, Err: err}
	}
}

// answerQuiz returns a command that answers the quiz with the option at index.
func (v *View) answerQuiz(index int) tea.Cmd {
	if v.point == nil || v.knowledge == nil || index >= len(v.quiz.Options) {
		return nil
	}
	id, choice := v.point.ID, v.quiz.Options[index]
	return func() tea.Msg {
		answer, err := v.knowledge.AnswerPointQuiz(v.ctx, id, choice)
		return messages.QuizAnswered{Answer: answer, Err: err}
	}
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	return max(v.height-6, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

func (v *View) categoryLabel(key string) string {
	c, ok := v.legend[key]
	if !ok {
		return key
	}
	if c.Emoji != "" {
		return c.Emoji + " " + c.Label
	}
	return c.Label
}

// buildContent builds the styled content lines.
func (v *View) buildContent() []string {
	if v.point == nil {
		return nil
	}
	p := v.point

	lines := []string{
		v.formatField("Category", v.styles.Category(v.legend[p.Type]).Render(v.categoryLabel(p.Type))),
		v.formatField("Location", fmt.Sprintf("%.2f, %.2f", p.Lat, p.Lng)),
	}

	for _, text := range []struct{ label, value string }{
		{"Info", p.Info},
		{"Story", p.Story},
		{"Learn", p.EducationalContent},
		{"Fun fact", p.FunFact},
	} {
		if text.value != "" {
			lines = append(lines, v.formatField(text.label, v.styles.Normal.Render(text.value)))
		}
	}

	if len(p.QuickFacts) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Quick facts:"))
		for _, f := range p.QuickFacts {
			lines = append(lines, v.styles.Normal.Render("  • "+f))
		}
	}

	if len(v.quiz.Options) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Quiz: ما نوع هذا المكان؟"))
		for i, key := range v.quiz.Options {
			lines = append(lines, v.styles.Normal.Render(fmt.Sprintf("  [%d] %s", i+1, v.categoryLabel(key))))
		}
	}

	if v.answer != nil {
		lines = append(lines, "", v.renderAnswer())
	}
	if v.visit != nil {
		lines = append(lines, "")
		lines = append(lines, v.renderVisit()...)
	}

	return lines
}

func (v *View) renderAnswer() string {
	switch {
	case v.answer.Correct && v.answer.Awarded > 0:
		return v.styles.Success.Render(fmt.Sprintf("Correct! +%d points", v.answer.Awarded))
	case v.answer.Correct:
		return v.styles.Success.Render("Correct!")
	default:
		return v.styles.Warning.Render("Not quite. It is " + v.categoryLabel(v.quiz.CorrectKey))
	}
}

func (v *View) renderVisit() []string {
	var lines []string
	if v.visit.FirstVisit {
		lines = append(lines, v.styles.Success.Render(fmt.Sprintf("Visited! (%d so far)", v.visit.Visited)))
	} else {
		lines = append(lines, v.styles.Muted.Render("Already visited"))
	}
	for _, m := range v.visit.Completed {
		lines = append(lines, v.styles.Success.Render(fmt.Sprintf("🏆 Mission complete: %s (+%d)", m.Label, m.Reward)))
	}
	return lines
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return v.styles.Subtitle.Render(fmt.Sprintf("%-10s", label+":")) + " " + value
}

// View renders the point view.
func (v *View) View() string {
	var b strings.Builder

	title := "Point"
	if v.point != nil {
		title = "📍 " + v.point.Name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.point == nil {
		if v.err == nil {
			b.WriteString(v.styles.Muted.Render("Loading point..."))
			b.WriteString("\n\n")
		}
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(lines[i])
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1, min(v.scrollOffset+visible, len(lines)), len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[1-9] answer quiz  [v] visit  [↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Point returns the shown point, or nil while loading.
func (v *View) Point() *domain.PointOfInterest {
	return v.point
}

// Answer returns the quiz answer, or nil if not answered in this view.
func (v *View) Answer() *domain.PointQuizAnswer {
	return v.answer
}

// Visit returns the last visit result, or nil.
func (v *View) Visit() *domain.VisitResult {
	return v.visit
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
