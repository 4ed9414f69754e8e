package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/compras/internal/cli"
	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/currency"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Convert a price between Yen, Real and Dollar",
		Long: fmt.Sprintf(`Convert a price at the fixed rates used by the list
(1 ¥ = R$ %.3f, 1 $ = R$ %.2f). Yen and Dollar amounts are converted to Real
first and the third currency is derived from the rounded Real.`,
			currency.YenToReal, currency.DollarToReal),
		Example: `  compras convert 1000 --from yen
  compras convert 52 --from real`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().StringP("from", "f", "yen", "currency of the amount (yen, real, dollar)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	amount := args[0]
	if _, ok := currency.Parse(amount); !ok {
		return common.NewUserError(fmt.Sprintf("Valor inválido: %s", amount), nil)
	}

	from, _ := cmd.Flags().GetString("from")
	var prices currency.Prices
	switch strings.ToLower(from) {
	case "yen", "jpy", "¥":
		prices = currency.FromYen(amount)
	case "real", "brl", "r$":
		prices = currency.FromReal(amount)
	case "dollar", "usd", "$":
		prices = currency.FromDollar(amount)
	default:
		return common.NewUserError(fmt.Sprintf("Moeda desconhecida: %s (use yen, real ou dollar)", from), nil)
	}

	printLine(cmd, cli.BoldStyle.Render(fmt.Sprintf("¥ %s · R$ %s · $ %s", prices.Yen, prices.Real, prices.Dollar)))
	return nil
}
