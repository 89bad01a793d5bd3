package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

var (
	askJSON   bool
	askRandom bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the lessons",
	Long: `Ranks the lesson facts and map points that best match a question.

Arabic and Latin text are both accepted. Common Arabic stop words are
ignored, so a question needs at least one meaningful word.

Use --random to get a random fact instead.`,
	Example: `  khareeta ask "أين يوجد الذهب؟"
  khareeta ask --lesson water "السد العالي"
  khareeta ask --random`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askRandom, "random", false, "answer with a random fact")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}
	if !askRandom && len(args) == 0 {
		return errors.New("a question is required (or use --random)")
	}

	var result domain.QueryResult
	if askRandom {
		result = knowledgeService.RandomFact()
	} else {
		result = knowledgeService.Ask(strings.Join(args, " "))
	}

	if askJSON {
		return printJSON(cmd, result)
	}
	printAnswer(cmd, result)
	return nil
}

func printAnswer(cmd *cobra.Command, result domain.QueryResult) {
	switch result.Outcome {
	case domain.OutcomeNoTokens:
		fmt.Fprintln(cmd.OutOrStdout(), "Ask with at least one meaningful word.")
		return
	case domain.OutcomeNoMatches:
		fmt.Fprintln(cmd.OutOrStdout(), "No matching facts found. Try other words.")
		return
	}

	if len(result.Tokens) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Tokens: %s\n", strings.Join(result.Tokens, ", "))
	}
	if len(result.MatchedFacts) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Facts:")
		for i, f := range result.MatchedFacts {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s (%s, %d)\n", i+1, f.Text, f.Kind.Label(), f.Score)
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", factSource(f.IndexedFact))
		}
	}
	if len(result.RelatedPoints) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Related points:")
		for _, p := range result.RelatedPoints {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s [%s]\n", p.Name, p.ID)
		}
	}
}

func factSource(f domain.IndexedFact) string {
	parts := []string{f.LessonTitle}
	if f.Heading != "" {
		parts = append(parts, f.Heading)
	}
	if f.Title != "" && f.Title != f.LessonTitle {
		parts = append(parts, f.Title)
	}
	return strings.Join(parts, " / ")
}
