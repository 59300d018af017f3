package cli

import (
	"strconv"

	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/llm"
	"github.com/spf13/cobra"
)

// LLMStatus reports the configured text-generation backend and whether it
// answered a reachability check.
type LLMStatus struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Endpoint  string `json:"endpoint,omitempty"`
	Available bool   `json:"available"`
}

func newLLMCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "Inspect the text-generation backend",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the configured provider and whether it is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := llmStatus(cmd, app)
			return printResult(cmd, st, func() string { return formatLLMStatus(st) })
		},
	})

	return cmd
}

func llmStatus(cmd *cobra.Command, app *App) LLMStatus {
	st := LLMStatus{
		Enabled:  app.LLMConfig.Enabled,
		Provider: string(app.LLMConfig.Provider),
		Model:    app.LLMConfig.Model,
	}
	if app.LLMConfig.Provider == llm.ProviderOllama {
		st.Endpoint = app.LLMConfig.Endpoint
	}
	if app.LLM != nil {
		st.Available = app.LLM.Available(cmd.Context())
	}
	return st
}

func formatLLMStatus(st LLMStatus) string {
	reachable := "no"
	if st.Available {
		reachable = "yes"
	}
	rows := [][]string{
		{"Enabled", strconv.FormatBool(st.Enabled)},
		{"Provider", st.Provider},
		{"Model", st.Model},
	}
	if st.Endpoint != "" {
		rows = append(rows, []string{"Endpoint", st.Endpoint})
	}
	rows = append(rows, []string{"Reachable", reachable})

	out := formatter.RenderTable([]string{"LLM", "Value"}, rows)
	if !st.Enabled {
		out += "\n" + formatter.Dim("Generation is disabled; analyses use rule-based defaults.") + "\n"
	}
	return out
}
