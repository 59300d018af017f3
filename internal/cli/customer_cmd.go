package cli

import (
	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/service"
	"github.com/spf13/cobra"
)

func newCustomerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Customer health analyses",
	}

	cmd.AddCommand(
		newCustomerHealthCmd(app),
		newCustomerInsightsCmd(app),
		newCustomerPortfolioCmd(app),
	)

	return cmd
}

func newCustomerHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health <customer-id>",
		Short: "Assess a customer's health and risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Advisory.CustomerHealth(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, res, func() string { return formatter.FormatHealth(res) })
		},
	}
}

func newCustomerInsightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insights <customer-id>",
		Short: "List risks, opportunities and actions for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Advisory.CustomerInsights(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, res, func() string { return formatter.FormatCustomerInsights(res) })
		},
	}
}

func newCustomerPortfolioCmd(app *App) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Assess the health of every customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Advisory.PortfolioHealth(cmd.Context(), concurrency)
			if err != nil {
				return err
			}
			return printResult(cmd, entries, func() string { return formatter.FormatPortfolio(entries) })
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", service.DefaultPortfolioConcurrency, "Analyses to run at once")
	return cmd
}
