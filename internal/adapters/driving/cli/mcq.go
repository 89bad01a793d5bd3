package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

var mcqCmd = &cobra.Command{
	Use:   "mcq <lesson-id> [question=option]...",
	Short: "Take a lesson's multiple-choice quiz",
	Long: `Without answers, prints the lesson's questions. With answers, grades
them and saves the score. Options are numbered from 1.`,
	Example: `  khareeta mcq resources
  khareeta mcq resources q1=2 q2=1 q3=3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMCQ,
}

func init() {
	rootCmd.AddCommand(mcqCmd)
}

func runMCQ(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil || progressService == nil {
		return errors.New("knowledge and progress services not configured")
	}

	lesson, err := knowledgeService.Lesson(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		printQuestions(cmd, lesson)
		return nil
	}

	answers, err := parseAnswers(args[1:])
	if err != nil {
		return err
	}
	result, err := progressService.GradeMCQ(cmd.Context(), lesson.ID, answers)
	if err != nil {
		return err
	}

	for _, q := range lesson.Quiz {
		choice, ok := result.Answers[q.ID]
		switch {
		case !ok:
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: skipped\n", q.ID)
		case choice == q.Answer:
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: correct\n", q.ID)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: wrong, answer is %d) %s\n", q.ID, q.Answer+1, q.Options[q.Answer])
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/%d\n", result.Score, result.Max)
	if result.Perfect {
		fmt.Fprintln(cmd.OutOrStdout(), "Perfect score!")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Earned %d points\n", result.Awarded)
	return nil
}

func printQuestions(cmd *cobra.Command, lesson domain.LessonRecord) {
	if len(lesson.Quiz) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "This lesson has no quiz.")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), lesson.Title)
	for _, q := range lesson.Quiz {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %s\n", q.ID, q.Question)
		for i, o := range q.Options {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d) %s\n", i+1, o)
		}
	}
}

// parseAnswers parses "q1=2" pairs with 1-based options into 0-based choices.
func parseAnswers(args []string) (map[string]int, error) {
	answers := make(map[string]int, len(args))
	for _, arg := range args {
		id, raw, ok := strings.Cut(arg, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: answer %q must look like q1=2", domain.ErrInvalidInput, arg)
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: option in %q must be a number from 1", domain.ErrInvalidInput, arg)
		}
		answers[id] = n - 1
	}
	return answers, nil
}
