package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/compras/internal/cli"
	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/filter"
	"github.com/Veraticus/compras/internal/model"
	"github.com/spf13/cobra"
)

// Tabs accepted by --status.
const (
	statusAll       = "all"
	statusPending   = "pending"
	statusPurchased = "purchased"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shopping items",
		Long: `List the items in the catalog, newest first.

Category and city must match exactly. Region and recipient match any part of
the stored value, ignoring case.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("category", "", "only items in this category")
	cmd.Flags().String("city", "", "only items in this city")
	cmd.Flags().String("region", "", "only items whose region contains this text")
	cmd.Flags().String("for", "", "only items whose recipient contains this text")
	cmd.Flags().String("status", statusAll, "which tab to show (all, pending, purchased)")
	cmd.Flags().Bool("json", false, "print the items as JSON")

	return cmd
}

func criteriaFromFlags(cmd *cobra.Command) filter.Criteria {
	var c filter.Criteria
	c.Category, _ = cmd.Flags().GetString("category")
	c.City, _ = cmd.Flags().GetString("city")
	c.Region, _ = cmd.Flags().GetString("region")
	c.ForWhom, _ = cmd.Flags().GetString("for")
	return c
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	status, _ := cmd.Flags().GetString("status")
	switch status {
	case statusAll, statusPending, statusPurchased:
	default:
		return common.NewUserError(fmt.Sprintf("Status inválido: %s (use all, pending ou purchased)", status), nil)
	}

	client, err := initCatalog()
	if err != nil {
		return err
	}

	controller, _ := newController(cmd, client)
	if err := controller.Load(ctx); err != nil {
		return common.NewUserError("Não foi possível carregar os itens", err)
	}

	criteria := criteriaFromFlags(cmd)
	view := controller.View(criteria)
	items := pickTab(view, status)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to encode items: %w", err)
		}
		return nil
	}

	printLine(cmd, cli.FormatTitle("Lista de Compras"))
	printLine(cmd, cli.SubtleStyle.Render(fmt.Sprintf("Todos (%d) · Pendentes (%d) · Comprados (%d)",
		len(view.All), len(view.Pending), len(view.Purchased))))
	if criteria.Active() {
		printLine(cmd, cli.FormatInfo("Filtros (ativo)"))
	}
	printLine(cmd, "")

	if len(items) == 0 {
		printLine(cmd, cli.InfoStyle.Render(emptyMessage(len(controller.Items()), criteria, status)))
		return nil
	}

	for _, item := range items {
		printLine(cmd, cli.FormatItemLine(item))
	}
	return nil
}

func pickTab(view filter.View, status string) []model.ShoppingItem {
	switch status {
	case statusPending:
		return view.Pending
	case statusPurchased:
		return view.Purchased
	default:
		return view.All
	}
}

// emptyMessage explains why a tab shows nothing.
func emptyMessage(total int, criteria filter.Criteria, status string) string {
	switch {
	case total == 0:
		return "Sua lista está vazia. Use 'compras add' para adicionar o primeiro item."
	case status == statusPending:
		return "Nenhum item pendente"
	case status == statusPurchased:
		return "Nenhum item comprado ainda"
	case criteria.Active():
		return "Nenhum item corresponde aos filtros"
	default:
		return "Nenhum item"
	}
}
