// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// AnswerList displays the facts of an answer in a navigable list, followed
// by the related map points.
type AnswerList struct {
	facts    []domain.ScoredFact
	points   []domain.PointOfInterest
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewAnswerList creates a new answer list component.
func NewAnswerList(s *styles.Styles) *AnswerList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &AnswerList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *AnswerList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *AnswerList) Update(msg tea.Msg) (*AnswerList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the list.
func (r *AnswerList) View() string {
	if len(r.facts) == 0 {
		return r.styles.Muted.Render("No facts")
	}

	lines := make([]string, 0, len(r.facts)*2+len(r.points)+4)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Facts (%d)", len(r.facts))), "")

	// Each fact takes two lines.
	visibleCount := max((r.height-6-len(r.points))/2, 1)

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.facts))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderFact(i, &r.facts[i]))
	}

	if len(r.points) > 0 {
		lines = append(lines, "", r.styles.Subtitle.Render("On the map"))
		for _, p := range r.points {
			lines = append(lines, r.styles.Normal.Render("  📍 "+p.Name))
		}
	}

	return strings.Join(lines, "\n")
}

// renderFact formats a single fact with its source line.
func (r *AnswerList) renderFact(index int, fact *domain.ScoredFact) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	maxTextWidth := max(r.width-12, 10)
	text := runewidth.Truncate(fact.Text, maxTextWidth, "...")

	score := fmt.Sprintf("%d", fact.Score)

	var textLine string
	if index == r.selected {
		textLine = r.styles.Selected.Render(indicator+runewidth.FillRight(text, maxTextWidth)+"  "+score)
	} else {
		textLine = r.styles.Normal.Render(indicator+runewidth.FillRight(text, maxTextWidth)+"  ") +
			r.styles.Muted.Render(score)
	}

	source := fact.Kind.Label() + " · " + fact.Title
	if fact.LinkedPointID != "" {
		source += " · 📍"
	}
	sourceLine := r.styles.Muted.Render("    " + runewidth.Truncate(source, max(r.width-6, 20), "..."))

	return textLine + "\n" + sourceLine
}

// SetAnswer replaces the list contents with an answer.
func (r *AnswerList) SetAnswer(result domain.QueryResult) {
	r.facts = result.MatchedFacts
	r.points = result.RelatedPoints
	r.selected = 0
}

// Clear empties the list.
func (r *AnswerList) Clear() {
	r.facts = nil
	r.points = nil
	r.selected = 0
}

// Facts returns the listed facts.
func (r *AnswerList) Facts() []domain.ScoredFact {
	return r.facts
}

// Points returns the listed related points.
func (r *AnswerList) Points() []domain.PointOfInterest {
	return r.points
}

// Selected returns the index of the selected fact.
func (r *AnswerList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *AnswerList) SetSelected(index int) {
	if index >= 0 && index < len(r.facts) {
		r.selected = index
	}
}

// SelectedFact returns the currently selected fact, or nil if none.
func (r *AnswerList) SelectedFact() *domain.ScoredFact {
	if len(r.facts) == 0 || r.selected < 0 || r.selected >= len(r.facts) {
		return nil
	}
	return &r.facts[r.selected]
}

// SelectedPointID returns the map point of the selected fact. Facts
// without a linked point fall back to the first related point.
func (r *AnswerList) SelectedPointID() string {
	if f := r.SelectedFact(); f != nil && f.LinkedPointID != "" {
		return f.LinkedPointID
	}
	if len(r.points) > 0 {
		return r.points[0].ID
	}
	return ""
}

// MoveUp moves selection up.
func (r *AnswerList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *AnswerList) MoveDown() {
	if r.selected < len(r.facts)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *AnswerList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *AnswerList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *AnswerList) Height() int {
	return r.height
}

// Count returns the number of facts.
func (r *AnswerList) Count() int {
	return len(r.facts)
}

// IsEmpty returns whether the list is empty.
func (r *AnswerList) IsEmpty() bool {
	return len(r.facts) == 0
}
