// Package testutil starts a real catalog for tests: the dev server over a
// throwaway SQLite database, with a client pointed at it.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Veraticus/compras/internal/catalog"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/server"
	"github.com/Veraticus/compras/internal/storage"
)

// TestCatalog is a running dev catalog.
type TestCatalog struct {
	Storage *storage.SQLiteStorage
	Server  *httptest.Server
	Client  *catalog.Client
	// BaseURL is the API root, ending in /api.
	BaseURL string
	t       *testing.T
}

// SetupTestCatalog starts a catalog seeded with items, in order. Everything
// is closed when the test ends.
//
// Example:
//
//	cat := testutil.SetupTestCatalog(t,
//		testutil.NewItem("Kit Kat").InCity("Osaka").PricedYen(500).Build(),
//	)
func SetupTestCatalog(t *testing.T, items ...model.CreateItem) *TestCatalog {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	srv := httptest.NewServer(server.NewRouter(store, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)

	client, err := catalog.NewClient(catalog.Config{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("failed to create catalog client: %v", err)
	}

	tc := &TestCatalog{
		Storage: store,
		Server:  srv,
		Client:  client,
		BaseURL: srv.URL + "/api",
		t:       t,
	}
	for _, item := range items {
		tc.MustCreate(item)
	}
	return tc
}

// MustCreate stores item directly, bypassing HTTP.
func (tc *TestCatalog) MustCreate(item model.CreateItem) model.ShoppingItem {
	tc.t.Helper()
	created, err := tc.Storage.CreateItem(context.Background(), item)
	if err != nil {
		tc.t.Fatalf("failed to create %q: %v", item.ItemName, err)
	}
	return created
}

// MustToggle flips the purchased flag of id.
func (tc *TestCatalog) MustToggle(id int) {
	tc.t.Helper()
	if err := tc.Storage.TogglePurchased(context.Background(), id); err != nil {
		tc.t.Fatalf("failed to toggle item %d: %v", id, err)
	}
}

// Items returns what the database holds, newest first.
func (tc *TestCatalog) Items() []model.ShoppingItem {
	tc.t.Helper()
	items, err := tc.Storage.ListItems(context.Background())
	if err != nil {
		tc.t.Fatalf("failed to list items: %v", err)
	}
	return items
}

// MustGet returns item id, failing the test when it is missing.
func (tc *TestCatalog) MustGet(id int) model.ShoppingItem {
	tc.t.Helper()
	item, err := tc.Storage.GetItem(context.Background(), id)
	if err != nil {
		tc.t.Fatalf("failed to get item %d: %v", id, err)
	}
	return item
}

// Exists reports whether id is still stored.
func (tc *TestCatalog) Exists(id int) bool {
	_, err := tc.Storage.GetItem(context.Background(), id)
	return err == nil
}
