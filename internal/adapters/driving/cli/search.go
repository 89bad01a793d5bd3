package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search map points",
	Long: `Ranks the map points of the current lesson scope by how well their
name, descriptions and keywords match the query.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = default cap)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	results := knowledgeService.SearchPoints(strings.Join(args, " "))
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		return printJSON(cmd, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Results:")
	for i, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s [%s] (%d)\n", i+1, r.Point.Name, r.Point.ID, r.Score)
		if summary := r.Point.Summary(); summary != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", summary)
		}
	}
	return nil
}
