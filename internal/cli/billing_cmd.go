package cli

import (
	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newContractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Contract burn rate and validation",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "burn-rate <contract-id>",
			Short: "Forecast spend and churn risk for a contract",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.BurnRate(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatBurnRate(res) })
			},
		},
		&cobra.Command{
			Use:   "validate <contract-id>",
			Short: "Check a contract for inconsistencies",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := app.Advisory.ValidateContract(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printResult(cmd, res, func() string { return formatter.FormatValidationReport(res) })
			},
		},
	)

	return cmd
}

func newInvoiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Invoice validation",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <invoice-id>",
		Short: "Check an invoice against its line items and contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Advisory.ValidateInvoice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, res, func() string { return formatter.FormatValidationReport(res) })
		},
	})

	return cmd
}

func newCapacityCmd(app *App) *cobra.Command {
	var resource string

	conflicts := &cobra.Command{
		Use:   "conflicts",
		Short: "Find periods where a resource is booked beyond capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Advisory.CapacityConflicts(cmd.Context(), resource)
			if err != nil {
				return err
			}
			return printResult(cmd, res, func() string { return formatter.FormatCapacityConflicts(res) })
		},
	}
	conflicts.Flags().StringVar(&resource, "resource", "", "Only check this resource")

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Resource capacity planning",
	}
	cmd.AddCommand(conflicts)
	return cmd
}
