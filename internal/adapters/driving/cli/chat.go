package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Opens an interactive session. Each line is answered from the index.
Type 'exit' or 'quit' (or send EOF) to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "passages to retrieve (default from settings)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	sess, err := openQuerySession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	cmd.Println("Ask about the Constitution of India. Type 'exit' to quit.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("\n> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(question) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		resp := sess.answers.Respond(cmd.Context(), question)
		if resp.Failure != nil {
			cmd.Println(resp.Failure.String())
			continue
		}
		cmd.Println()
		cmd.Println(resp.Answer.Render())

		if cmd.Context().Err() != nil {
			return nil
		}
	}
}
