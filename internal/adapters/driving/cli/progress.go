package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

var progressJSON bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show points, level and badges",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

var progressCompleteCmd = &cobra.Command{
	Use:   "complete <lesson-id>",
	Short: "Mark a lesson as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressComplete,
}

var progressThemeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Toggle between the light and dark theme",
	Args:  cobra.NoArgs,
	RunE:  runProgressTheme,
}

func init() {
	progressCmd.Flags().BoolVar(&progressJSON, "json", false, "output progress as JSON")
	progressCmd.AddCommand(progressCompleteCmd)
	progressCmd.AddCommand(progressThemeCmd)
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, _ []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}

	p, err := progressService.Get(cmd.Context())
	if err != nil {
		return err
	}
	a := domain.AchievementsFor(p.Points)

	if progressJSON {
		return printJSON(cmd, struct {
			Progress     domain.Progress     `json:"progress"`
			Achievements domain.Achievements `json:"achievements"`
		}{p, a})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Points: %d\n", p.Points)
	fmt.Fprintf(cmd.OutOrStdout(), "Level:  %d %s (%d/%d, %d%%)\n", a.Level, a.Title, a.Progress.InLevel, a.Progress.Need, a.Progress.Pct)
	fmt.Fprintf(cmd.OutOrStdout(), "Theme:  %s\n", p.Theme)

	var unlocked []string
	for _, b := range a.Badges {
		if b.Unlocked {
			unlocked = append(unlocked, b.Icon+" "+b.Name)
		}
	}
	if len(unlocked) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Badges: %s\n", strings.Join(unlocked, ", "))
	}

	ids := make([]string, 0, len(p.Lessons))
	for id := range p.Lessons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Lessons:")
	}
	for _, id := range ids {
		lp := p.Lessons[id]
		status := "in progress"
		if lp.Completed {
			status = "completed"
		}
		marker := " "
		if id == p.LastLessonID {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), " %s %-12s quiz %d, %s\n", marker, id, lp.MCQScore, status)
	}
	return nil
}

func runProgressComplete(cmd *cobra.Command, args []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}
	if _, err := progressService.MarkCompleted(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Lesson %s completed\n", args[0])
	return nil
}

func runProgressTheme(cmd *cobra.Command, _ []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}
	p, err := progressService.ToggleTheme(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", p.Theme)
	return nil
}
