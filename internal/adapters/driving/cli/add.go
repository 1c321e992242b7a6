package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var addInput string

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Ingest a file or directory into a collection",
	Long: `Reads the input path, extracts text from each supported file,
splits it into chunks and stores them in the collection. Files whose
content is already in the collection are skipped.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addInput, "input", "i", "", "file or directory to ingest")
	_ = addCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	svcs, err := services()
	if err != nil {
		return err
	}
	defer closeServices(svcs)

	report, err := svcs.Ingestor.Ingest(context.Background(), addInput)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Println()
	cmd.Printf("Processed %d file(s), wrote %d chunk(s)\n", report.FilesProcessed, report.ChunksWritten)
	if report.FilesDuplicate > 0 {
		cmd.Printf("Skipped %d duplicate file(s)\n", report.FilesDuplicate)
	}
	if report.FilesSkipped > 0 {
		cmd.Printf("Skipped %d unsupported file(s)\n", report.FilesSkipped)
	}
	if report.ExtractionErrors > 0 {
		cmd.Printf("Failed to extract %d file(s)\n", report.ExtractionErrors)
	}
	return nil
}

// closeServices closes the bundle, ignoring the error: commands have
// already produced their output by the time the store shuts down.
func closeServices(svcs *Services) {
	if svcs.Close != nil {
		_ = svcs.Close()
	}
}
