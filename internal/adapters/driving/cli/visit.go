package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var visitCmd = &cobra.Command{
	Use:   "visit <point-id>...",
	Short: "Visit map points and complete missions",
	Long: `Records visits to map points in order. Missions completed by a visit
are announced and their rewards are added to the saved points.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVisit,
}

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List the missions of the current lesson scope",
	Args:  cobra.NoArgs,
	RunE:  runMissions,
}

func init() {
	rootCmd.AddCommand(visitCmd)
	rootCmd.AddCommand(missionsCmd)
}

func runVisit(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	total := 0
	for _, id := range args {
		result, err := knowledgeService.RecordVisit(cmd.Context(), id)
		if err != nil {
			return err
		}
		if result.FirstVisit {
			fmt.Fprintf(cmd.OutOrStdout(), "Visited %s (%d so far)\n", id, result.Visited)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Already visited %s\n", id)
		}
		for _, m := range result.Completed {
			fmt.Fprintf(cmd.OutOrStdout(), "  Mission complete: %s (+%d)\n", m.Label, m.Reward)
		}
		total += result.Awarded
	}

	if total > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Earned %d points\n", total)
	}
	return nil
}

func runMissions(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	missions := knowledgeService.Missions()
	if len(missions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No missions for this lesson.")
		return nil
	}
	for _, m := range missions {
		mark := "[ ]"
		if m.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d/%d (+%d)\n", mark, m.Label, m.Visited, m.Count, m.Reward)
	}
	return nil
}
