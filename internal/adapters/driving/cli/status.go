package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collections and their contents",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	svcs, err := services()
	if err != nil {
		return err
	}
	defer closeServices(svcs)

	infos, err := svcs.Admin.Status(context.Background())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if len(infos) == 0 {
		cmd.Println("No collections found.")
		return nil
	}

	for _, info := range infos {
		cmd.Printf("Collection: %s\n", info.Name)
		cmd.Printf("  Records: %d\n", info.Count)
		if len(info.MetadataKeys) > 0 {
			cmd.Printf("  Metadata keys: %s\n", strings.Join(info.MetadataKeys, ", "))
		}
		cmd.Println()
	}
	return nil
}
