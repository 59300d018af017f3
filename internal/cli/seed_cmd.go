package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/compass/internal/cli/formatter"
	"github.com/alexanderramin/compass/internal/service"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Import records from a YAML seed file",
		Long: `Import customers, contracts, invoices, scorecards, change initiatives,
resource allocations, canvases and competitive analyses from a YAML file.
The file is validated first; nothing is written unless every record is valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Seed.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, res, func() string { return formatSeedResult(res) })
		},
	}
}

func formatSeedResult(r *service.SeedResult) string {
	rows := [][]string{
		{"Customers", strconv.Itoa(r.Customers)},
		{"Contracts", strconv.Itoa(r.Contracts)},
		{"Invoices", strconv.Itoa(r.Invoices)},
		{"Scorecards", strconv.Itoa(r.Scorecards)},
		{"Change initiatives", strconv.Itoa(r.Initiatives)},
		{"Allocations", strconv.Itoa(r.Allocations)},
		{"Canvases", strconv.Itoa(r.Canvases)},
		{"Competitive analyses", strconv.Itoa(r.CompetitiveAnalyses)},
	}
	return formatter.RenderTable([]string{"Records", "Imported"}, rows) +
		fmt.Sprintf("\nImported %d records.\n", r.Total())
}
