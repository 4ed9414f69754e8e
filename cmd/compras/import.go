package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"syscall"
	"time"

	"github.com/Veraticus/compras/internal/cli"
	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/list"
	"github.com/Veraticus/compras/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add many items from a JSON or CSV file",
		Long: `Add every item in a file to the catalog.

JSON files hold an array of items with the same fields the API uses
(itemName, storeName, category, city, region, forWhom, priceYen, priceReal,
priceDollar, image). CSV files need a header row with those names; give one
price column per row and the other two are computed.

Rows missing a required field are skipped. A row is sent again only when the
catalog could not have stored it: a rate limit (HTTP 429) or a refused
connection. Server errors and timeouts are not retried, since the item may
already exist. Ctrl+C stops after the current item and reports how many
were sent.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Show what would be imported without sending anything")
	cmd.Flags().Int("retries", 3, "Attempts per item when the catalog refuses a request")
	cmd.Flags().Bool("no-progress", false, "Do not draw a progress bar")

	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("import.retries", cmd.Flags().Lookup("retries"))
	_ = viper.BindPFlag("import.no_progress", cmd.Flags().Lookup("no-progress"))

	return cmd
}

// importResult counts what happened to each row.
type importResult struct {
	Failed  []string
	Skipped []string
	Sent    int
}

func runImport(cmd *cobra.Command, args []string) error {
	rows, err := readItems(args[0])
	if err != nil {
		return common.NewUserError("Não foi possível ler o arquivo", err)
	}

	valid, skipped := splitValid(rows)
	printLine(cmd, cli.FormatTitle(fmt.Sprintf("Importando %d itens", len(valid))))
	for _, msg := range skipped {
		printLine(cmd, cli.FormatWarning(msg))
	}

	if viper.GetBool("import.dry_run") {
		printLine(cmd, cli.FormatWarning("Modo de simulação: nada será enviado"))
		for _, row := range valid {
			printLine(cmd, cli.FormatItemLine(model.NewItem(0, row.Item, time.Time{})))
		}
		return nil
	}
	if len(valid) == 0 {
		printLine(cmd, cli.FormatInfo("Nenhum item para importar."))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := initCatalog()
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context())

	var bar *progressbar.ProgressBar
	if !viper.GetBool("import.no_progress") {
		bar = newProgressBar(cmd.OutOrStdout(), len(valid))
	}

	controller := list.NewController(client)
	retry := common.RetryOptions{
		MaxAttempts:  cfg.Import.Retries,
		InitialDelay: cfg.Import.RetryDelay,
		MaxDelay:     cfg.Import.MaxDelay,
		Multiplier:   2,
	}

	result := importResult{Skipped: skipped}
	for _, row := range valid {
		if ctx.Err() != nil {
			break
		}

		err := common.WithRetry(ctx, func() error {
			_, createErr := controller.Create(ctx, row.Item)
			return resendable(createErr)
		}, retry)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			slog.Warn("Failed to import item", "ref", row.Ref, "error", err)
			result.Failed = append(result.Failed, fmt.Sprintf("%s (%s): %v", row.Ref, row.Item.ItemName, err))
		} else {
			result.Sent++
		}

		handler.SetProgress(result.Sent, len(valid))
		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	if handler.WasInterrupted() {
		return nil
	}

	printImportSummary(cmd, result)
	if len(result.Failed) > 0 {
		return common.NewUserError(fmt.Sprintf("%d itens não foram importados", len(result.Failed)), nil)
	}
	return nil
}

// resendable marks which create failures may be sent again. After a rate
// limit or a refused connection nothing was stored; after a server error or
// a timeout the item may exist and a second POST would duplicate it.
func resendable(err error) error {
	if err == nil {
		return nil
	}
	safe := errors.Is(err, common.ErrRateLimit) || errors.Is(err, syscall.ECONNREFUSED)
	return &common.RetryableError{Err: err, Retryable: safe}
}

// splitValid separates rows the catalog would accept from rows missing
// required fields.
func splitValid(rows []importRow) ([]importRow, []string) {
	valid := make([]importRow, 0, len(rows))
	var skipped []string
	for _, row := range rows {
		if missing := row.Item.MissingFields(); len(missing) > 0 {
			labels := make([]string, 0, len(missing))
			for _, name := range missing {
				labels = append(labels, fieldLabels[name])
			}
			skipped = append(skipped, fmt.Sprintf("%s ignorado: faltam %s", row.Ref, strings.Join(labels, ", ")))
			continue
		}
		valid = append(valid, row)
	}
	return valid, skipped
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Enviando itens...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func printImportSummary(cmd *cobra.Command, result importResult) {
	content := fmt.Sprintf("Enviados:  %d\nIgnorados: %d\nFalharam:  %d",
		result.Sent, len(result.Skipped), len(result.Failed))
	for _, f := range result.Failed {
		content += "\n  " + cli.ErrorStyle.Render(cli.ErrorIcon+" "+f)
	}
	printLine(cmd, cli.RenderBox("Importação concluída", content))
}
