package main

import (
	"github.com/Veraticus/compras/internal/cli"
	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/model"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals for the whole list",
		Long: `Show item counts and price totals in Yen, Real and Dollar.

Totals are computed from the loaded list, which includes how much of each
currency was already spent. --remote asks the catalog's stats endpoint
instead; it reports totals only.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	cmd.Flags().Bool("remote", false, "use the catalog's stats endpoint")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := initCatalog()
	if err != nil {
		return err
	}

	render := cli.FormatStats
	var stats model.Stats
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		rs, err := client.Stats(ctx)
		if err != nil {
			return common.NewUserError("Erro ao carregar estatísticas", err)
		}
		stats = fromRemote(rs)
		render = cli.FormatTotals
	} else {
		controller, _ := newController(cmd, client)
		if err := controller.Load(ctx); err != nil {
			return common.NewUserError("Não foi possível carregar os itens", err)
		}
		stats = controller.Stats()
	}

	if stats.Empty() {
		printLine(cmd, cli.FormatInfo("Sua lista está vazia"))
		return nil
	}

	printLine(cmd, cli.RenderBox(cli.ChartIcon+" Resumo", render(stats)))
	return nil
}

func fromRemote(rs model.RemoteStats) model.Stats {
	return model.Stats{
		TotalItems:     rs.TotalItems,
		PurchasedCount: rs.PurchasedItems,
		PendingCount:   rs.PendingItems,
		TotalReal:      rs.TotalPriceReal,
		TotalYen:       rs.TotalPriceYen,
		TotalDollar:    rs.TotalPriceDollar,
	}
}
