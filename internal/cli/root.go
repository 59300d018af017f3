package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/compass/internal/llm"
	"github.com/alexanderramin/compass/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services used by CLI commands.
type App struct {
	Advisory   service.AdvisoryService
	Scorecards service.ScorecardService
	Seed       service.SeedService

	// LLM is the client shared by the advisors; LLMConfig is what built it.
	LLM       llm.LLMClient
	LLMConfig llm.LLMConfig
}

// NewRootCmd creates the top-level "compass" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "compass",
		Short:         "Advisory analyses for customers, contracts and strategy frameworks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "Print results as JSON")

	root.AddCommand(
		newSeedCmd(app),
		newMetricCmd(),
		newCustomerCmd(app),
		newContractCmd(app),
		newInvoiceCmd(app),
		newCapacityCmd(app),
		newCanvasCmd(app),
		newScorecardCmd(app),
		newPorterCmd(app),
		newADKARCmd(app),
		newLLMCmd(app),
	)

	return root
}

// printResult writes v as indented JSON when --json is set, otherwise the
// text produced by render.
func printResult(cmd *cobra.Command, v any, render func() string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(out, render())
	return err
}
