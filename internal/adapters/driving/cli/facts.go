package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

var (
	factsKind string
	factsJSON bool
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "List the fact index",
	Long: `Lists the searchable facts built from the current lesson scope.

Kinds: objective, section-bullet, point-info, quick-fact, fun-fact.`,
	Args: cobra.NoArgs,
	RunE: runFacts,
}

func init() {
	factsCmd.Flags().StringVar(&factsKind, "kind", "", "only list facts of this kind")
	factsCmd.Flags().BoolVar(&factsJSON, "json", false, "output facts as JSON")
	rootCmd.AddCommand(factsCmd)
}

func runFacts(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	kind := domain.FactKind(factsKind)
	if factsKind != "" && !kind.IsValid() {
		return fmt.Errorf("%w: unknown fact kind %q", domain.ErrInvalidInput, factsKind)
	}

	facts := knowledgeService.Facts()
	if factsKind != "" {
		filtered := facts[:0]
		for _, f := range facts {
			if f.Kind == kind {
				filtered = append(filtered, f)
			}
		}
		facts = filtered
	}

	if factsJSON {
		return printJSON(cmd, facts)
	}

	for _, f := range facts {
		fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-15s %s\n", f.ID, f.Kind, f.Text)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d facts\n", len(facts))
	return nil
}
