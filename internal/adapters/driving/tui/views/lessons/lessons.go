// Package lessons provides the lesson scope picker for the TUI.
package lessons

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
)

// allLessons is the entry that clears the scope.
var allLessons = domain.LessonSummary{Title: "كل الدروس"}

// View lists the lessons with an "all lessons" entry first.
type View struct {
	styles    *styles.Styles
	knowledge driving.KnowledgeService

	entries  []domain.LessonSummary
	scope    string
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
}

// NewView creates a new lessons view.
func NewView(s *styles.Styles, knowledge driving.KnowledgeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		knowledge: knowledge,
		entries:   []domain.LessonSummary{allLessons},
		width:     80,
		height:    24,
	}
}

// Init initialises the view and loads the lessons.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadLessons()
}

// loadLessons returns a command that lists lessons and the active scope.
func (v *View) loadLessons() tea.Cmd {
	return func() tea.Msg {
		if v.knowledge == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("knowledge service not available")}
		}
		return messages.LessonsLoaded{
			Lessons: v.knowledge.Lessons(),
			Scope:   v.knowledge.Scope(),
		}
	}
}

// selectLesson returns a command that changes the lesson scope.
func (v *View) selectLesson(id string) tea.Cmd {
	return func() tea.Msg {
		if v.knowledge == nil {
			return messages.LessonSelected{LessonID: id, Err: fmt.Errorf("knowledge service not available")}
		}
		return messages.LessonSelected{LessonID: id, Err: v.knowledge.SelectLesson(id)}
	}
}

// Update handles messages for the lessons view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LessonsLoaded:
		v.loading = false
		v.err = nil
		v.entries = append([]domain.LessonSummary{allLessons}, msg.Lessons...)
		v.scope = msg.Scope
		v.selected = 0
		for i, l := range v.entries {
			if l.ID == msg.Scope {
				v.selected = i
			}
		}
		return v, nil

	case messages.LessonSelected:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.scope = msg.LessonID
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case "enter":
		return v, v.selectLesson(v.entries[v.selected].ID)
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "r":
		v.loading = true
		return v, v.loadLessons()
	}

	return v, nil
}

// View renders the lessons view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Lessons"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading lessons..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	for i := range v.entries {
		b.WriteString(v.renderLesson(i, &v.entries[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderLesson renders a single lesson line. The active scope is starred.
func (v *View) renderLesson(index int, lesson *domain.LessonSummary) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	mark := "  "
	if lesson.ID == v.scope {
		mark = "* "
	}

	title := runewidth.Truncate(lesson.Title, max(v.width-20, 10), "...")
	count := ""
	if lesson.ID != "" {
		count = fmt.Sprintf("%d points", lesson.Points)
	}

	if index == v.selected {
		return v.styles.Selected.Render(indicator + mark + title + "  " + count)
	}
	return v.styles.Normal.Render(indicator+mark+title+"  ") + v.styles.Muted.Render(count)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] choose  [r] reload  [esc] back  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Entries returns the listed lessons, starting with the all-lessons entry.
func (v *View) Entries() []domain.LessonSummary {
	return v.entries
}

// Scope returns the active lesson id.
func (v *View) Scope() string {
	return v.scope
}

// SelectedIndex returns the currently selected entry index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
