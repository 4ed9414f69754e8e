package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Veraticus/compras/internal/catalog"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) (*httptest.Server, *catalog.Client) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	server := httptest.NewServer(NewRouter(store, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(server.Close)

	client, err := catalog.NewClient(catalog.Config{BaseURL: server.URL + "/api"})
	require.NoError(t, err)
	return server, client
}

func sampleCreate(name string) model.CreateItem {
	return model.CreateItem{
		ItemName:    name,
		StoreName:   "Yodobashi",
		Category:    "Eletrônicos",
		City:        "Tóquio",
		Region:      "Akihabara",
		ForWhom:     "Pedro",
		PriceReal:   520,
		PriceYen:    15294,
		PriceDollar: 100,
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	_, client := setupTestServer(t)
	ctx := context.Background()

	items, err := client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	created, err := client.Create(ctx, sampleCreate("Câmera"))
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.False(t, created.Purchased)

	got, err := client.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Câmera", got.ItemName)
	assert.InDelta(t, 15294.0, got.PriceYen, 0)

	update := model.UpdateItem{CreateItem: sampleCreate("Câmera Fuji"), Purchased: false}
	require.NoError(t, client.Update(ctx, created.ID, update))

	require.NoError(t, client.TogglePurchased(ctx, created.ID))
	got, err = client.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Câmera Fuji", got.ItemName)
	assert.True(t, got.Purchased)
	assert.NotNil(t, got.UpdatedAt)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RemoteStats{
		TotalItems:       1,
		PurchasedItems:   1,
		PendingItems:     0,
		TotalPriceReal:   520,
		TotalPriceYen:    15294,
		TotalPriceDollar: 100,
	}, stats)

	require.NoError(t, client.Delete(ctx, created.ID))
	_, err = client.Get(ctx, created.ID)
	assert.True(t, catalog.IsNotFound(err))
}

func TestStatusCodes(t *testing.T) {
	server, client := setupTestServer(t)
	ctx := context.Background()

	err := client.Delete(ctx, 12345)
	assert.Equal(t, http.StatusNotFound, catalog.StatusCode(err))

	err = client.TogglePurchased(ctx, 12345)
	assert.Equal(t, http.StatusNotFound, catalog.StatusCode(err))

	err = client.Update(ctx, 12345, model.UpdateItem{CreateItem: sampleCreate("x")})
	assert.Equal(t, http.StatusNotFound, catalog.StatusCode(err))

	incomplete := sampleCreate("Fone")
	incomplete.ForWhom = ""
	_, err = client.Create(ctx, incomplete)
	assert.Equal(t, http.StatusBadRequest, catalog.StatusCode(err))
	var httpErr *catalog.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Contains(t, httpErr.Body, "forWhom")

	resp, err := http.Get(server.URL + "/api/ShoppingItems/abc")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/ShoppingItems", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid request body", body["error"])
}

func TestResponseShapes(t *testing.T) {
	server, client := setupTestServer(t)
	ctx := context.Background()

	created, err := client.Create(ctx, sampleCreate("Walkman"))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPatch, server.URL+"/api/ShoppingItems/"+strconv.Itoa(created.ID)+"/toggle-purchased", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))

	body, err := json.Marshal(sampleCreate("Fita"))
	require.NoError(t, err)
	resp, err = http.Post(server.URL+"/api/ShoppingItems", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

type failingStore struct {
	Store
}

func (failingStore) ListItems(context.Context) ([]model.ShoppingItem, error) {
	return nil, errors.New("disk on fire")
}

func TestStorageFailureIs500(t *testing.T) {
	server := httptest.NewServer(NewRouter(failingStore{}, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/api/ShoppingItems")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "failed to list items", body["error"])
	assert.NotContains(t, body["error"], "disk on fire")
}
