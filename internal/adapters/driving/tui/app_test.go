package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/khareeta/internal/adapters/driving/tui/tuitest"
	"github.com/custodia-labs/khareeta/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	return app
}

// run applies msg and then every app message produced by the resulting
// commands. Batches and cursor blinks are not followed.
func run(app *App, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := app.Update(next)
		if cmd == nil {
			continue
		}
		if out := cmd(); isAppMsg(out) {
			queue = append(queue, out)
		}
	}
}

func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case messages.AnswerReady, messages.ViewChanged, messages.ErrorOccurred,
		messages.LessonsLoaded, messages.LessonSelected, messages.PointSelected,
		messages.PointLoaded, messages.VisitRecorded, messages.QuizAnswered,
		messages.ProgressLoaded:
		return true
	}
	return false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Equal(t, domain.ThemeLight, app.Theme())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.ErrorIs(t, err, ErrMissingKnowledgeService)
	assert.Nil(t, app)
}

func TestNewApp_NilPorts(t *testing.T) {
	app, err := NewApp(nil)

	require.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_LoadTheme(t *testing.T) {
	knowledge, _ := tuitest.Services()
	ports := NewPorts(knowledge, &MockProgressService{
		GetFunc: func(context.Context) (domain.Progress, error) {
			return domain.Progress{Points: 30, Theme: domain.ThemeDark}, nil
		},
	})
	app, err := NewApp(ports)
	require.NoError(t, err)
	before := *app.Styles()

	run(app, app.loadTheme())

	assert.Equal(t, domain.ThemeDark, app.Theme())
	assert.NotEqual(t, before.Title.GetForeground(), app.Styles().Title.GetForeground())
}

func TestApp_LoadTheme_Error(t *testing.T) {
	knowledge, _ := tuitest.Services()
	ports := NewPorts(knowledge, &MockProgressService{
		GetFunc: func(context.Context) (domain.Progress, error) {
			return domain.Progress{}, errors.New("disk gone")
		},
	})
	app, err := NewApp(ports)
	require.NoError(t, err)

	run(app, app.loadTheme())

	assert.Equal(t, domain.ThemeLight, app.Theme())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, model.(*App).Ready())
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Menu(t *testing.T) {
	app := newTestApp(t)

	view := app.View()
	assert.Contains(t, view, "Khareeta")
	assert.Contains(t, view, "Progress")
}

func TestApp_Menu_WithoutProgress(t *testing.T) {
	knowledge, _ := tuitest.Services()
	app, err := NewApp(NewPorts(knowledge, nil))
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	assert.NotContains(t, app.View(), "Progress")
	assert.NotNil(t, app.Init())
}

func TestApp_CtrlC_Quits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)

	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestApp_ViewChanged(t *testing.T) {
	tests := []struct {
		view     messages.ViewType
		contains string
	}{
		{messages.ViewAsk, "Ask:"},
		{messages.ViewLessons, "كل الدروس"},
		{messages.ViewProgress, "Progress"},
		{messages.ViewHelp, "Help"},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			app := newTestApp(t)

			run(app, messages.ViewChanged{View: tt.view})

			assert.Equal(t, tt.view, app.CurrentView())
			assert.Contains(t, app.View(), tt.contains)
		})
	}
}

func TestApp_Help_EscReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	run(app, messages.ViewChanged{View: messages.ViewHelp})

	run(app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_AskFlow(t *testing.T) {
	app := newTestApp(t)
	run(app, messages.ViewChanged{View: messages.ViewAsk})

	app.askView.SetQuestion("منجم ذهب")
	run(app, tea.KeyMsg{Type: tea.KeyEnter})

	result, ok := app.askView.Result()
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeAnswered, result.Outcome)
	assert.Contains(t, app.View(), "أكبر منجم ذهب في مصر")

	// Opening the answer's point switches to the point view.
	run(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, messages.ViewPoint, app.CurrentView())
	assert.Contains(t, app.View(), "منجم السكري")

	run(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewAsk, app.CurrentView())
	_, ok = app.askView.Result()
	assert.True(t, ok)
}

func TestApp_PointVisit(t *testing.T) {
	app := newTestApp(t)

	run(app, messages.PointSelected{PointID: "high-dam"})
	run(app, keyRunes("v"))

	assert.Contains(t, app.View(), "Mission complete")

	p, err := app.ports.Progress.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 10, p.Points)
}

func TestApp_SelectLesson(t *testing.T) {
	app := newTestApp(t)
	run(app, messages.ViewChanged{View: messages.ViewLessons})

	run(app, tea.KeyMsg{Type: tea.KeyDown})
	run(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "resources", app.ports.Knowledge.Scope())
	assert.Equal(t, messages.ViewAsk, app.CurrentView())
	assert.Contains(t, app.askView.Status().Scope(), "موارد مصر")

	run(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, app.View(), "Lesson: موارد مصر")
}

func TestApp_SelectLesson_Error(t *testing.T) {
	app := newTestApp(t)

	run(app, messages.LessonSelected{LessonID: "nope", Err: domain.ErrUnknownLesson})

	require.ErrorIs(t, app.Err(), domain.ErrUnknownLesson)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ToggleTheme(t *testing.T) {
	app := newTestApp(t)
	run(app, messages.ViewChanged{View: messages.ViewProgress})

	run(app, keyRunes("t"))

	assert.Equal(t, domain.ThemeDark, app.Theme())
	p, err := app.ports.Progress.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, p.Theme)

	run(app, keyRunes("t"))
	assert.Equal(t, domain.ThemeLight, app.Theme())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)
	run(app, messages.ViewChanged{View: messages.ViewAsk})

	run(app, messages.ErrorOccurred{Err: errors.New("boom")})

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "boom")
}
