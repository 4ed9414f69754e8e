package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Veraticus/compras/internal/certs"
	"github.com/Veraticus/compras/internal/cli"
	"github.com/Veraticus/compras/internal/config"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/server"
	"github.com/Veraticus/compras/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local catalog API for development",
		Long: `Serve the shopping catalog REST API from a local SQLite database.

The server speaks the same protocol as the hosted catalog under /api, so the
other commands can use it with --api-url http://localhost:8080/api.

--tls serves HTTPS with a self-signed localhost certificate kept next to the
database. Point SSL_CERT_FILE at the printed certificate path so clients
trust it.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().String("db", "", "database path (default $HOME/.local/share/compras/catalog.db)")
	cmd.Flags().String("seed", "", "JSON or CSV file loaded when the database is empty")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed localhost certificate")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.database", cmd.Flags().Lookup("db"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg.Server.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()
	slog.Info("Database ready", "path", store.Path())

	if seed, _ := cmd.Flags().GetString("seed"); seed != "" {
		if err := seedStorage(ctx, store, seed); err != nil {
			return err
		}
	}

	listener, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
	}

	scheme := "http"
	if useTLS, _ := cmd.Flags().GetBool("tls"); useTLS {
		manager := certs.NewFileManager(filepath.Join(config.DataDir(), "certs"))
		tlsConfig, err := manager.TLSConfig()
		if err != nil {
			_ = listener.Close()
			return fmt.Errorf("failed to prepare certificate: %w", err)
		}
		listener = tls.NewListener(listener, tlsConfig)
		scheme = "https"
		printLine(cmd, cli.FormatInfo("Certificado: "+manager.CertFile()))
	}

	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Catálogo em %s://%s/api", scheme, listener.Addr())))
	return serve(ctx, listener, server.NewRouter(store, slog.Default().With("component", "server")))
}

// serve runs handler on listener until ctx is done, then shuts down
// gracefully.
func serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server started", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// seedStorage loads path into an empty database in one transaction.
func seedStorage(ctx context.Context, store *storage.SQLiteStorage, path string) error {
	existing, err := store.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing items: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("Database already has items, skipping seed", "count", len(existing))
		return nil
	}

	rows, err := readItems(path)
	if err != nil {
		return err
	}
	valid, skipped := splitValid(rows)
	for _, msg := range skipped {
		slog.Warn("Seed row skipped", "reason", msg)
	}

	if len(valid) == 0 {
		slog.Warn("Seed file has no usable items", "file", path)
		return nil
	}

	items := make([]model.CreateItem, 0, len(valid))
	for _, row := range valid {
		items = append(items, row.Item)
	}
	created, err := store.CreateItems(ctx, items)
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	slog.Info("Seeded database", "count", len(created), "file", path)
	return nil
}
