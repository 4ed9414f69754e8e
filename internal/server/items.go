package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/model"
)

// ItemsHandler handles the shopping item endpoints.
type ItemsHandler struct {
	Store  Store
	Logger *slog.Logger
}

// List handles GET /api/ShoppingItems.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListItems(r.Context())
	if err != nil {
		h.fail(w, "failed to list items", err)
		return
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/ShoppingItems/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.Store.GetItem(r.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.fail(w, "failed to get item", err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/ShoppingItems.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateItem
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		jsonError(w, http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	item, err := h.Store.CreateItem(r.Context(), req)
	if err != nil {
		h.fail(w, "failed to create item", err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/ShoppingItems/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateItem
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		jsonError(w, http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
		return
	}

	err := h.Store.UpdateItem(r.Context(), id, req)
	if errors.Is(err, common.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.fail(w, "failed to update item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles PATCH /api/ShoppingItems/{id}/toggle-purchased.
func (h *ItemsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.Store.TogglePurchased(r.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.fail(w, "failed to toggle item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/ShoppingItems/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.Store.DeleteItem(r.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.fail(w, "failed to delete item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/ShoppingItems/stats.
func (h *ItemsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.Stats(r.Context())
	if err != nil {
		h.fail(w, "failed to compute stats", err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

func (h *ItemsHandler) fail(w http.ResponseWriter, message string, err error) {
	h.Logger.Error("Handler failed", "message", message, "error", err)
	jsonError(w, http.StatusInternalServerError, message)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}
