package main

import (
	"github.com/Veraticus/compras/internal/cli"
	"github.com/Veraticus/compras/internal/common"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an item from the list",
		Long: `Remove an item from the catalog. The item is shown and confirmation is
asked for unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := initCatalog()
	if err != nil {
		return err
	}

	item, err := fetchItem(ctx, client, id)
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		printLine(cmd, cli.FormatItemLine(item))
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		ok, err := prompter.Confirm(ctx, "Remover este item?")
		if err != nil {
			return common.NewUserError("Remoção cancelada", err)
		}
		if !ok {
			printLine(cmd, cli.FormatInfo("Nada foi removido."))
			return nil
		}
	}

	controller, notices := newController(cmd, client)
	if err := controller.Delete(ctx, id); err != nil {
		return notices.wrap(err)
	}
	return nil
}
