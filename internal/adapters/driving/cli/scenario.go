package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

var (
	scenarioJSON     bool
	scenarioExamples bool
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario <description>",
	Short: "Analyse a hypothetical legal scenario",
	Long: `Asks the model which constitutional provisions apply to a scenario and
how. No index is needed; the analysis comes from the model alone.`,
	Example: `  samvidhan scenario "A private school refuses admission based on religion."
  samvidhan scenario --examples`,
	RunE: runScenario,
}

func init() {
	scenarioCmd.Flags().BoolVar(&scenarioJSON, "json", false, "output as JSON")
	scenarioCmd.Flags().BoolVar(&scenarioExamples, "examples", false, "list example scenarios")
	rootCmd.AddCommand(scenarioCmd)
}

// scenarioJSONOutput is the --json shape of an analysis or failure.
type scenarioJSONOutput struct {
	Scenario string `json:"scenario,omitempty"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
}

func runScenario(cmd *cobra.Command, args []string) error {
	if scenarioExamples {
		for i, s := range domain.ExampleScenarios() {
			cmd.Printf("%d. %s\n", i+1, s)
		}
		return nil
	}
	if len(args) == 0 {
		return errors.New("describe a scenario, or use --examples")
	}
	description := strings.Join(args, " ")
	if strings.TrimSpace(description) == "" {
		if scenarioJSON {
			return printJSON(cmd, toScenarioJSON(domain.ScenarioResponse{
				Failure: domain.NewFailure(domain.ErrEmptyScenario, domain.ScenarioFailureMessage),
			}))
		}
		return domain.ErrEmptyScenario
	}

	sess, err := openSession(cmd.Context(), ai.Needs{LLM: true})
	if err != nil {
		return err
	}
	defer sess.Close()
	if sess.scenarios == nil {
		return errors.New("scenario service not configured")
	}

	resp := sess.scenarios.Respond(cmd.Context(), description)

	if scenarioJSON {
		return printJSON(cmd, toScenarioJSON(resp))
	}
	if resp.Failure != nil {
		return errors.New(resp.Failure.String())
	}
	cmd.Println(resp.Analysis)
	return nil
}

func toScenarioJSON(resp domain.ScenarioResponse) scenarioJSONOutput {
	if resp.Failure != nil {
		return scenarioJSONOutput{Error: resp.Failure.Error, Message: resp.Failure.Message}
	}
	return scenarioJSONOutput{Scenario: resp.Scenario, Analysis: resp.Analysis}
}
