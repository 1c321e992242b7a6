package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Ask questions about the collection interactively",
	Long: `Starts an interactive loop: each question is answered from the
chunks stored in the collection. Type 'exit' to quit.`,
	RunE: runClient,
}

func init() {
	rootCmd.AddCommand(clientCmd)
}

func runClient(cmd *cobra.Command, _ []string) error {
	svcs, err := services()
	if err != nil {
		return err
	}
	defer closeServices(svcs)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("Ask a question (or type 'exit' to quit): ")
		if !scanner.Scan() {
			cmd.Println()
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") {
			break
		}

		answer, err := svcs.Answerer.Answer(context.Background(), question)
		if err != nil {
			return fmt.Errorf("answering failed: %w", err)
		}
		cmd.Println()
		cmd.Println("Response:")
		cmd.Println(answer)
		cmd.Println()
	}
	return scanner.Err()
}
