package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/views/lessons"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/views/point"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/views/progress"
	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles is shared by all views and restyled in place on theme change.
	styles *styles.Styles
	theme  domain.Theme

	menuView     *menu.View
	askView      *ask.View
	lessonsView  *lessons.View
	pointView    *point.View
	progressView *progress.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		theme:        domain.ThemeLight,
		menuView:     menu.NewView(s, ports.Progress != nil),
		askView:      ask.NewView(s, km, ports.Knowledge),
		lessonsView:  lessons.NewView(s, ports.Knowledge),
		pointView:    point.NewView(s, ports.Knowledge),
		progressView: progress.NewView(s, ports.Progress, ports.Knowledge),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.pointView.WithContext(ctx)
	a.progressView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It sets the window title and loads the saved theme.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("khareeta"),
	}
	if a.ports.Progress != nil {
		cmds = append(cmds, a.loadTheme)
	}
	return tea.Batch(cmds...)
}

func (a *App) loadTheme() tea.Msg {
	p, err := a.ports.Progress.Get(a.ctx)
	if err != nil {
		return messages.ProgressLoaded{Err: err}
	}
	return messages.ProgressLoaded{Achievements: domain.AchievementsFor(p.Points), Theme: p.Theme}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewAsk:
			return a, a.askView.Init()
		case messages.ViewLessons:
			return a, a.lessonsView.Init()
		case messages.ViewProgress:
			return a, a.progressView.Init()
		case messages.ViewMenu, messages.ViewPoint, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.LessonSelected:
		a.lessonsView, cmd = a.lessonsView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		title := a.lessonTitle(msg.LessonID)
		a.menuView.SetScope(title)
		a.askView.SetScope(title)
		// The session was reset, so the previous answer no longer applies.
		a.askView.Reset()
		a.currentView = messages.ViewAsk
		return a, tea.Batch(cmd, a.askView.Init())

	case messages.PointSelected:
		a.currentView = messages.ViewPoint
		return a, a.pointView.SetPoint(msg.PointID)

	case messages.PointLoaded, messages.QuizAnswered, messages.VisitRecorded:
		a.pointView, cmd = a.pointView.Update(msg)
		return a, cmd

	case messages.ProgressLoaded:
		if msg.Err == nil {
			a.applyTheme(msg.Theme)
		}
		a.progressView, cmd = a.progressView.Update(msg)
		return a, cmd

	case messages.AnswerReady:
		a.askView, cmd = a.askView.Update(msg)
		return a, cmd

	case messages.LessonsLoaded:
		a.lessonsView, cmd = a.lessonsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewLessons:
		a.lessonsView, cmd = a.lessonsView.Update(msg)
	case messages.ViewPoint:
		a.pointView, cmd = a.pointView.Update(msg)
	case messages.ViewProgress:
		a.progressView, cmd = a.progressView.Update(msg)
	case messages.ViewHelp:
		// Esc from help goes to menu
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// applyTheme restyles every view when the theme changes.
func (a *App) applyTheme(theme domain.Theme) {
	if theme == "" || theme == a.theme {
		return
	}
	a.theme = theme
	*a.styles = *styles.NewStyles(styles.ThemeFor(theme))
}

// lessonTitle returns the title shown for a lesson scope.
func (a *App) lessonTitle(id string) string {
	if id == "" {
		return ""
	}
	for _, l := range a.ports.Knowledge.Lessons() {
		if l.ID == id {
			return l.Title
		}
	}
	return id
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewLessons:
		return a.lessonsView.View()
	case messages.ViewPoint:
		return a.pointView.View()
	case messages.ViewProgress:
		return a.progressView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Ask:
  (type)      Write a question
  ↑/↓         Previous questions
  enter       Ask
  n           New question
  r           Random fact
  enter       Open the selected point

Point:
  1-9         Answer the quiz
  v           Mark as visited

Progress:
  t           Switch light/dark theme

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Theme returns the active theme.
func (a *App) Theme() domain.Theme {
	return a.theme
}

// Styles returns the shared styles.
func (a *App) Styles() *styles.Styles {
	return a.styles
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and all views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.askView.SetDimensions(width, height)
	a.lessonsView.SetDimensions(width, height)
	a.pointView.SetDimensions(width, height)
	a.progressView.SetDimensions(width, height)
}
