package main

import (
	"github.com/spf13/cobra"
)

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"comprei"},
		Short:   "Mark an item purchased, or pending again",
		Args:    cobra.ExactArgs(1),
		RunE:    runToggle,
	}
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := initCatalog()
	if err != nil {
		return err
	}

	controller, notices := newController(cmd, client)
	if err := controller.Toggle(ctx, id); err != nil {
		return notices.wrap(err)
	}

	return showUpdated(ctx, cmd, client, id)
}
