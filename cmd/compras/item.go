package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/compras/internal/catalog"
	"github.com/Veraticus/compras/internal/cli"
	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/editor"
	"github.com/Veraticus/compras/internal/media"
	"github.com/spf13/cobra"
)

// formFlags maps flag names to form setters, in prompt order.
var formFlags = []struct {
	name  string
	usage string
	set   func(*editor.Form, string)
}{
	{"name", "item name", (*editor.Form).SetItemName},
	{"store", "store name", (*editor.Form).SetStoreName},
	{"category", "category", (*editor.Form).SetCategory},
	{"city", "city", (*editor.Form).SetCity},
	{"region", "region or neighborhood", (*editor.Form).SetRegion},
	{"for", "who the item is for", (*editor.Form).SetForWhom},
}

var priceFlags = []struct {
	name  string
	usage string
	set   func(*editor.Form, string)
}{
	{"yen", "price in Yen", (*editor.Form).SetYen},
	{"real", "price in Reais", (*editor.Form).SetReal},
	{"dollar", "price in Dollars", (*editor.Form).SetDollar},
}

var fieldLabels = map[string]string{
	"itemName":  "Nome do Item",
	"storeName": "Loja",
	"category":  "Categoria",
	"city":      "Cidade",
	"region":    "Região",
	"forWhom":   "Para quem",
}

func addItemFlags(cmd *cobra.Command) {
	for _, f := range formFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	for _, f := range priceFlags {
		cmd.Flags().String(f.name, "", f.usage+" (the other currencies are computed)")
	}
	cmd.Flags().String("image", "", "image URL or path of a JPEG/PNG photo")
	cmd.Flags().BoolP("interactive", "i", false, "ask for every field")
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the list",
		Long: `Add an item to the list.

Pass the fields as flags, or run without flags to be asked for each one.
Give a price in one currency only; the other two are computed at the fixed
rates.`,
		Example: `  compras add --name "Kit Kat Matcha" --store "Don Quijote" --category Comida \
    --city Tokyo --region Shibuya --for Ana --yen 500`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}
	addItemFlags(cmd)
	return cmd
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an item",
		Long: `Edit an item's fields. Flags replace single fields; without flags every
field is asked for with its current value as the default.`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}
	addItemFlags(cmd)
	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := initCatalog()
	if err != nil {
		return err
	}

	form := editor.New()
	if err := fillForm(ctx, cmd, form); err != nil {
		return err
	}

	intent, err := submit(form)
	if err != nil {
		return err
	}

	controller, notices := newController(cmd, client)
	created, err := controller.Create(ctx, intent.Create)
	if err != nil {
		return notices.wrap(err)
	}

	printLine(cmd, cli.FormatItemLine(created))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	form := editor.ForItem(item)
	if err := fillForm(ctx, cmd, form); err != nil {
		return err
	}

	intent, err := submit(form)
	if err != nil {
		return err
	}

	controller, notices := newController(cmd, client)
	if err := controller.Update(ctx, intent.ID, intent.Update); err != nil {
		return notices.wrap(err)
	}

	return showUpdated(ctx, cmd, client, id)
}

// fillForm applies flags to f, or prompts when none were given.
func fillForm(ctx context.Context, cmd *cobra.Command, f *editor.Form) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive || !anyFormFlag(cmd) {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if err := prompter.FillForm(ctx, f); err != nil {
			return common.NewUserError("Formulário cancelado", err)
		}
		return nil
	}
	return applyFlags(ctx, cmd, f)
}

func anyFormFlag(cmd *cobra.Command) bool {
	for _, f := range formFlags {
		if cmd.Flags().Changed(f.name) {
			return true
		}
	}
	for _, f := range priceFlags {
		if cmd.Flags().Changed(f.name) {
			return true
		}
	}
	return cmd.Flags().Changed("image")
}

func applyFlags(ctx context.Context, cmd *cobra.Command, f *editor.Form) error {
	for _, flag := range formFlags {
		if cmd.Flags().Changed(flag.name) {
			value, _ := cmd.Flags().GetString(flag.name)
			flag.set(f, value)
		}
	}

	var priced int
	for _, flag := range priceFlags {
		if !cmd.Flags().Changed(flag.name) {
			continue
		}
		priced++
		if priced > 1 {
			return common.NewUserError("Informe o preço em apenas uma moeda", nil)
		}
		value, _ := cmd.Flags().GetString(flag.name)
		flag.set(f, value)
	}

	if !cmd.Flags().Changed("image") {
		return nil
	}
	image, _ := cmd.Flags().GetString("image")
	return applyImage(ctx, f, image)
}

// applyImage sets f's image from a URL or a local photo. An empty value
// removes the image.
func applyImage(ctx context.Context, f *editor.Form, value string) error {
	switch {
	case value == "":
		f.ClearImage()
		return nil
	case strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://"):
		img, err := media.URLImage(value)
		if err != nil {
			return common.NewUserError("URL de imagem inválida", err)
		}
		f.SetImageMethod(editor.ImageFromURL)
		f.SetImage(img)
		return nil
	default:
		f.SetImageMethod(editor.ImageFromGallery)
		if err := f.CaptureImage(ctx, media.FileCapturer{Path: value}); err != nil {
			return common.NewUserError("Erro ao processar imagem", err)
		}
		return nil
	}
}

// submit validates the form and returns the request it produces.
func submit(f *editor.Form) (editor.Intent, error) {
	missing := f.Missing()
	intent, ok := f.Submit()
	if !ok {
		labels := make([]string, 0, len(missing))
		for _, name := range missing {
			labels = append(labels, fieldLabels[name])
		}
		return editor.Intent{}, common.NewUserError(
			"Preencha os campos obrigatórios: "+strings.Join(labels, ", "), f.Validate())
	}
	return intent, nil
}

// showUpdated prints the item as the catalog now stores it.
func showUpdated(ctx context.Context, cmd *cobra.Command, client catalog.Service, id int) error {
	item, err := client.Get(ctx, id)
	if err != nil {
		slog.Debug("Failed to fetch updated item", "item_id", id, "error", err)
		return nil
	}
	printLine(cmd, cli.FormatItemLine(item))
	return nil
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			printLine(cmd, cli.RenderBox(fmt.Sprintf("%s %s", cli.CartIcon, item.ItemName), cli.FormatItemDetails(item)))
			return nil
		},
	}
}
