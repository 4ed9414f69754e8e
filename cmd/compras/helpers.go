package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Veraticus/compras/internal/catalog"
	"github.com/Veraticus/compras/internal/cli"
	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/config"
	"github.com/Veraticus/compras/internal/list"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig reads the typed configuration from the global viper.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, common.NewUserError("Configuração inválida", err)
	}
	return cfg, nil
}

// initCatalog builds the remote catalog client from configuration.
func initCatalog() (*catalog.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := catalog.NewClient(catalog.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	slog.Debug("Using catalog", "base_url", client.BaseURL())
	return client, nil
}

// initStorage opens and migrates the dev server database.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// noticePrinter shows controller notices on a command's output and keeps
// the last one so failures can be reported with the same wording.
type noticePrinter struct {
	out  io.Writer
	last list.Notice
}

func (p *noticePrinter) handle(n list.Notice) {
	p.last = n
	if n.Kind == list.NoticeSuccess {
		if _, err := fmt.Fprintln(p.out, cli.FormatSuccess(n.Message)); err != nil {
			slog.Warn("Failed to write notice", "error", err)
		}
	}
}

// wrap attaches the failure notice to err.
func (p *noticePrinter) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, list.ErrBusy) {
		return common.NewUserError("Operação já em andamento", err)
	}
	if p.last.Kind == list.NoticeError && p.last.Message != "" {
		return common.NewUserError(p.last.Message, err)
	}
	return err
}

// newController creates a list controller whose notices go to the
// command's output.
func newController(cmd *cobra.Command, service catalog.Service) (*list.Controller, *noticePrinter) {
	printer := &noticePrinter{out: cmd.OutOrStdout()}
	return list.NewController(service, list.WithNotices(printer.handle)), printer
}

// fetchItem gets one item, mapping a 404 to a readable message.
func fetchItem(ctx context.Context, service catalog.Service, id int) (model.ShoppingItem, error) {
	item, err := service.Get(ctx, id)
	if err != nil {
		if catalog.IsNotFound(err) {
			return model.ShoppingItem{}, common.NewUserError(fmt.Sprintf("Item %d não encontrado", id), err)
		}
		return model.ShoppingItem{}, common.NewUserError("Erro ao buscar item", err)
	}
	return item, nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("ID inválido: %s", arg), err)
	}
	return id, nil
}

func printLine(cmd *cobra.Command, s string) {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
