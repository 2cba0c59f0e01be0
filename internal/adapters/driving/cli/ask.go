package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

var (
	askJSON bool
	askTopK int
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about the Constitution",
	Long: `Retrieves the most relevant passages from the index and asks the model
to answer from them. The answer ends with the cited source pages.`,
	Example: `  samvidhan ask "What does Article 21 protect?"
  samvidhan ask --json "Who appoints the Chief Justice?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "passages to retrieve (default from settings)")
	rootCmd.AddCommand(askCmd)
}

// answerJSON is the --json shape of an answer or failure.
type answerJSON struct {
	Question  string   `json:"question,omitempty"`
	Answer    string   `json:"answer,omitempty"`
	Citations []string `json:"citations,omitempty"`
	Error     string   `json:"error,omitempty"`
	Message   string   `json:"message,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" {
		if askJSON {
			return printJSON(cmd, toAnswerJSON(domain.AnswerResponse{
				Failure: domain.NewFailure(domain.ErrEmptyQuestion, domain.AnswerFailureMessage),
			}))
		}
		return domain.ErrEmptyQuestion
	}

	sess, err := openQuerySession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	resp := sess.answers.Respond(cmd.Context(), question)

	if askJSON {
		return printJSON(cmd, toAnswerJSON(resp))
	}
	if resp.Failure != nil {
		return errors.New(resp.Failure.String())
	}
	cmd.Println(resp.Answer.Render())
	return nil
}

// openQuerySession opens a session that can answer questions.
func openQuerySession(cmd *cobra.Command) (*session, error) {
	sess, err := openSession(cmd.Context(), ai.Needs{Embedding: true, LLM: true, Index: true},
		func(s *domain.AppSettings) {
			if askTopK > 0 {
				s.Retrieval.TopK = askTopK
			}
		})
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return nil, fmt.Errorf("%w (run 'samvidhan index build' first)", err)
		}
		return nil, err
	}
	if sess.answers == nil {
		sess.Close()
		return nil, errors.New("answer service not configured")
	}
	return sess, nil
}

func toAnswerJSON(resp domain.AnswerResponse) answerJSON {
	if resp.Failure != nil {
		return answerJSON{Error: resp.Failure.Error, Message: resp.Failure.Message}
	}
	out := answerJSON{
		Question:  resp.Answer.Question,
		Answer:    resp.Answer.Render(),
		Citations: make([]string, len(resp.Answer.Citations)),
	}
	for i, c := range resp.Answer.Citations {
		out.Citations[i] = c.String()
	}
	return out
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
