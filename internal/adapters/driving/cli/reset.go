package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var resetYes bool

// stdinIsTerminal reports whether confirmation can be asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all saved progress",
	Long: `Erases points, quiz answers and lesson progress. Asks for confirmation
unless --yes is given; without a terminal, --yes is required.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if progressService == nil {
		return errors.New("progress service not configured")
	}

	if !resetYes {
		if !stdinIsTerminal() {
			return errors.New("refusing to reset without --yes when not running in a terminal")
		}
		fmt.Fprint(cmd.ErrOrStderr(), "Erase all progress? Type 'yes' to confirm: ")
		//nolint:errcheck // an unreadable answer counts as no
		input, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if _, err := progressService.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Progress erased.")
	return nil
}
