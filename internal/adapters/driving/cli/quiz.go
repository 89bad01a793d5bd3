package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

var quizAnswer string

var quizCmd = &cobra.Command{
	Use:   "quiz <point-id>",
	Short: "Guess the category of a map point",
	Long: `Shows the category quiz for a point. Pass --answer with a category
key to answer it; a correct first answer earns points.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().StringVar(&quizAnswer, "answer", "", "category key to answer with")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	quiz, err := knowledgeService.PointQuiz(args[0])
	if err != nil {
		return err
	}

	if quizAnswer == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "What kind of place is %s?\n", quiz.PointName)
		for i, key := range quiz.Options {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d) %s (%s)\n", i+1, categoryLabel(key), key)
		}
		return nil
	}

	answer, err := knowledgeService.AnswerPointQuiz(cmd.Context(), quiz.PointID, quizAnswer)
	if err != nil && !errors.Is(err, domain.ErrAlreadyAnswered) {
		return err
	}
	if answer.Correct {
		fmt.Fprintf(cmd.OutOrStdout(), "Correct! +%d points\n", answer.Awarded)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Not quite. %s is %s.\n", quiz.PointName, categoryLabel(quiz.CorrectKey))
	}
	if err != nil {
		return fmt.Errorf("answer not recorded: %w", err)
	}
	return nil
}

// categoryLabel returns the legend label of key, or key itself.
func categoryLabel(key string) string {
	for _, c := range knowledgeService.Categories() {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}
