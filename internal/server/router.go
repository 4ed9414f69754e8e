// Package server serves the shopping catalog REST API over local storage,
// for development and offline use.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Veraticus/compras/internal/model"
)

// Store is the persistence the handlers need.
type Store interface {
	ListItems(ctx context.Context) ([]model.ShoppingItem, error)
	GetItem(ctx context.Context, id int) (model.ShoppingItem, error)
	CreateItem(ctx context.Context, item model.CreateItem) (model.ShoppingItem, error)
	UpdateItem(ctx context.Context, id int, item model.UpdateItem) error
	TogglePurchased(ctx context.Context, id int) error
	DeleteItem(ctx context.Context, id int) error
	Stats(ctx context.Context) (model.RemoteStats, error)
}

// NewRouter creates the API router with all endpoints registered under
// /api.
func NewRouter(store Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	items := &ItemsHandler{Store: store, Logger: logger}

	mux.HandleFunc("GET /api/ShoppingItems", items.List)
	mux.HandleFunc("POST /api/ShoppingItems", items.Create)
	mux.HandleFunc("GET /api/ShoppingItems/stats", items.Stats)
	mux.HandleFunc("GET /api/ShoppingItems/{id}", items.Get)
	mux.HandleFunc("PUT /api/ShoppingItems/{id}", items.Update)
	mux.HandleFunc("PATCH /api/ShoppingItems/{id}/toggle-purchased", items.Toggle)
	mux.HandleFunc("DELETE /api/ShoppingItems/{id}", items.Delete)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return LoggingMiddleware(logger)(mux)
}
