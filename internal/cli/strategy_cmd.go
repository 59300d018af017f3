package cli

import (
	"strings"

	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/domain"
	"github.com/spf13/cobra"
)

// choices lists enum values for help text and shell completion.
func choices[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// completeSecondArg offers values for the second positional argument.
func completeSecondArg(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func newCanvasCmd(app *App) *cobra.Command {
	blocks := choices(domain.CanvasBlocks)

	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Business Model Canvas analyses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "analyze <canvas-id>",
			Short: "Review every block of a canvas",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.AnalyzeCanvas(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatCanvasInsights(res) })
			},
		},
		&cobra.Command{
			Use:               "block <canvas-id> <block>",
			Short:             "Suggest content for one canvas block",
			Long:              "Blocks: " + strings.Join(blocks, ", "),
			Args:              cobra.ExactArgs(2),
			ValidArgsFunction: completeSecondArg(blocks),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.BlockSuggestions(cmd.Context(), args[0], domain.CanvasBlock(args[1]))
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatBlockSuggestion(res) })
			},
		},
	)

	return cmd
}

func newScorecardCmd(app *App) *cobra.Command {
	perspectives := choices(domain.Perspectives)

	cmd := &cobra.Command{
		Use:   "scorecard",
		Short: "Balanced Scorecard analyses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "metrics <scorecard-id>",
			Short: "Show progress, status and trend for every metric",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Scorecards.Metrics(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatScorecardMetrics(res) })
			},
		},
		&cobra.Command{
			Use:               "perspective <scorecard-id> <perspective>",
			Short:             "Analyze one scorecard perspective",
			Long:              "Perspectives: " + strings.Join(perspectives, ", "),
			Args:              cobra.ExactArgs(2),
			ValidArgsFunction: completeSecondArg(perspectives),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.AnalyzePerspective(cmd.Context(), args[0], domain.Perspective(args[1]))
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatPerformanceAnalysis(res) })
			},
		},
		&cobra.Command{
			Use:               "insights <scorecard-id> <perspective>",
			Short:             "Strategic insights for one perspective",
			Long:              "Perspectives: " + strings.Join(perspectives, ", "),
			Args:              cobra.ExactArgs(2),
			ValidArgsFunction: completeSecondArg(perspectives),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.StrategicInsights(cmd.Context(), args[0], domain.Perspective(args[1]))
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatStrategicInsights(res) })
			},
		},
	)

	return cmd
}

func newPorterCmd(app *App) *cobra.Command {
	forces := choices(domain.Forces)

	cmd := &cobra.Command{
		Use:   "porter",
		Short: "Porter's Five Forces analyses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:               "force <analysis-id> <force>",
			Short:             "Analyze one competitive force",
			Long:              "Forces: " + strings.Join(forces, ", "),
			Args:              cobra.ExactArgs(2),
			ValidArgsFunction: completeSecondArg(forces),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.AnalyzeForce(cmd.Context(), args[0], domain.Force(args[1]))
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatForceAnalysis(res) })
			},
		},
		&cobra.Command{
			Use:   "benchmark <analysis-id>",
			Short: "Compare a company against its industry on all five forces",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.CompareBenchmark(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatBenchmark(res) })
			},
		},
	)

	return cmd
}

func newADKARCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adkar",
		Short: "ADKAR change-readiness analyses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "readiness <initiative-id>",
			Short: "Assess readiness of a change initiative",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.AnalyzeReadiness(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatReadiness(res) })
			},
		},
		&cobra.Command{
			Use:   "recommend <initiative-id>",
			Short: "Recommend actions for the initiative's current stage",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.StageRecommendations(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatStageRecommendations(res) })
			},
		},
	)

	return cmd
}
