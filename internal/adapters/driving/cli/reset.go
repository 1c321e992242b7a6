package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete collections and their records",
	Long: `Deletes the collection named with --collection, or every collection
when no collection is named. Asks for confirmation first.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	svcs, err := services()
	if err != nil {
		return err
	}
	defer closeServices(svcs)

	// Without an explicit collection flag the whole store is wiped.
	all := !cmd.Flag("collection").Changed

	target := fmt.Sprintf("collection '%s'", flagCollection)
	if all {
		target = "all collections"
	}

	if !resetForce {
		if !confirm(cmd, fmt.Sprintf("Are you sure you want to delete %s? (y/n): ", target)) {
			return nil
		}
	}

	ctx := context.Background()
	if all {
		if err := svcs.Admin.ResetAll(ctx); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		cmd.Println("Deleted all collections.")
		return nil
	}

	if err := svcs.Admin.Reset(ctx, flagCollection); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("Collection '%s' does not exist.\n", flagCollection)
			return nil
		}
		return fmt.Errorf("reset failed: %w", err)
	}
	cmd.Printf("Deleted collection '%s'.\n", flagCollection)
	return nil
}

// confirm asks the question until it gets a recognisable answer.
// "y"/"yes" confirms; "n"/"no" or end of input cancels.
func confirm(cmd *cobra.Command, prompt string) bool {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print(prompt)
		if !scanner.Scan() {
			cmd.Println("Operation canceled.")
			return false
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true
		case "n", "no":
			cmd.Println("Operation canceled.")
			return false
		default:
			cmd.Println("Please enter 'y' or 'n'.")
		}
	}
}
