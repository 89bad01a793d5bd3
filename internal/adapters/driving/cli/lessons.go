package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons",
	Args:  cobra.NoArgs,
	RunE:  runLessons,
}

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "List the map points of the current lesson scope",
	Args:  cobra.NoArgs,
	RunE:  runPoints,
}

func init() {
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(pointsCmd)
}

func runLessons(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	scope := knowledgeService.Scope()
	for _, l := range knowledgeService.Lessons() {
		marker := " "
		if l.ID == scope {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s (%d points)\n", marker, l.ID, l.Title, l.Points)
	}
	return nil
}

func runPoints(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	labels := make(map[string]string)
	for _, c := range knowledgeService.Categories() {
		labels[c.Key] = c.Emoji + " " + c.Label
	}
	for _, p := range knowledgeService.Points() {
		label, ok := labels[p.Type]
		if !ok {
			label = p.Type
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s (%s)\n", p.ID, p.Name, label)
	}
	return nil
}
