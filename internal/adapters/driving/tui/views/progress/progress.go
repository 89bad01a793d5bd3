// Package progress provides the achievements view for the TUI.
package progress

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

const barWidth = 30

// View shows points, level, badges and the missions of the current scope.
type View struct {
	styles    *styles.Styles
	progress  driving.ProgressService
	knowledge driving.KnowledgeService
	ctx       context.Context

	achievements *domain.Achievements
	theme        domain.Theme
	loading      bool
	width        int
	height       int
	err          error
}

// NewView creates a new progress view. Knowledge may be nil, in which
// case missions are not shown.
func NewView(s *styles.Styles, progress driving.ProgressService, knowledge driving.KnowledgeService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		progress:  progress,
		knowledge: knowledge,
		ctx:       context.Background(),
		theme:     domain.ThemeLight,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for progress calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init returns a command that loads the achievements.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.load
}

func (v *View) load() tea.Msg {
	if v.progress == nil {
		return messages.ProgressLoaded{Err: errors.New("progress service not available")}
	}
	p, err := v.progress.Get(v.ctx)
	if err != nil {
		return messages.ProgressLoaded{Err: err}
	}
	return messages.ProgressLoaded{Achievements: domain.AchievementsFor(p.Points), Theme: p.Theme}
}

func (v *View) toggleTheme() tea.Msg {
	if v.progress == nil {
		return messages.ProgressLoaded{Err: errors.New("progress service not available")}
	}
	p, err := v.progress.ToggleTheme(v.ctx)
	if err != nil {
		return messages.ProgressLoaded{Err: err}
	}
	return messages.ProgressLoaded{Achievements: domain.AchievementsFor(p.Points), Theme: p.Theme}
}

// Update handles messages for the progress view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			return v, v.toggleTheme
		case "r":
			return v, v.Init()
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil

	case messages.ProgressLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		a := msg.Achievements
		v.achievements = &a
		v.theme = msg.Theme
		v.err = nil
		return v, nil
	}

	return v, nil
}

// View renders the progress view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Progress"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading progress..."))
		b.WriteString("\n\n")
	case v.achievements != nil:
		v.renderAchievements(&b)
	}

	v.renderMissions(&b)

	b.WriteString(v.styles.Help.Render("[t] theme  [r] refresh  [esc] back"))
	return b.String()
}

func (v *View) renderAchievements(b *strings.Builder) {
	a := v.achievements

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("⭐ %d points", a.Points)))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Level %d: %s", a.Level, a.Title)))
	b.WriteString("\n")
	b.WriteString(v.renderBar(a.Progress))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Badges:"))
	b.WriteString("\n")
	for _, badge := range a.Badges {
		if badge.Unlocked {
			b.WriteString(v.styles.Success.Render(fmt.Sprintf("  %s %s", badge.Icon, badge.Name)))
		} else {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  🔒 %s (%d)", badge.Name, badge.Need)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Theme: " + string(v.theme)))
	b.WriteString("\n\n")
}

func (v *View) renderBar(p domain.LevelProgress) string {
	filled := min(max(p.Pct*barWidth/100, 0), barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return v.styles.Selected.Render(bar) + " " +
		v.styles.Muted.Render(fmt.Sprintf("%d/%d (%d%%)", p.InLevel, p.Need, p.Pct))
}

func (v *View) renderMissions(b *strings.Builder) {
	if v.knowledge == nil {
		return
	}
	missions := v.knowledge.Missions()
	if len(missions) == 0 {
		return
	}
	b.WriteString(v.styles.Subtitle.Render("Missions:"))
	b.WriteString("\n")
	for _, m := range missions {
		line := fmt.Sprintf("  %s %d/%d (+%d)", m.Label, m.Visited, m.Count, m.Reward)
		if m.Completed {
			b.WriteString(v.styles.Success.Render("✓" + line))
		} else {
			b.WriteString(v.styles.Normal.Render(" " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Achievements returns the loaded achievements, or nil.
func (v *View) Achievements() *domain.Achievements {
	return v.achievements
}

// Theme returns the last loaded theme.
func (v *View) Theme() domain.Theme {
	return v.theme
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
