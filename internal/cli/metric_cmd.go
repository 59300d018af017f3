package cli

import (
	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/kpi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newMetricCmd() *cobra.Command {
	var current, target, previous float64

	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Compute progress, variance, status and trend for a value",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := kpi.Calculate(current, target, optionalFloat(cmd.Flags(), "previous", previous))
			return printResult(cmd, m, func() string { return formatter.FormatDerivedMetric(m) })
		},
	}

	cmd.Flags().Float64Var(&current, "current", 0, "Current value")
	cmd.Flags().Float64Var(&target, "target", 0, "Target value")
	cmd.Flags().Float64Var(&previous, "previous", 0, "Previous reading, enables the trend")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// optionalFloat returns &v only when the flag was given on the command line.
func optionalFloat(fs *pflag.FlagSet, name string, v float64) *float64 {
	if !fs.Changed(name) {
		return nil
	}
	return &v
}
