package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/compras/internal/common"
	"github.com/Veraticus/compras/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL + "/api/", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid config",
			config: Config{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		},
		{
			name:    "missing base URL",
			config:  Config{},
			wantErr: true,
			errMsg:  "catalog base URL is required",
		},
		{
			name:    "unsupported scheme",
			config:  Config{BaseURL: "ftp://example.com/api"},
			wantErr: true,
			errMsg:  "scheme must be http or https",
		},
		{
			name:    "negative timeout",
			config:  Config{BaseURL: "http://localhost:8080/api", Timeout: -time.Second},
			wantErr: true,
			errMsg:  "timeout cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClient_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/ShoppingItems", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id": 7, "itemName": "Gundam", "category": "Coisas Geek", "city": "Tóquio",
			 "priceReal": 200, "priceYen": 5882, "priceDollar": 38.46, "purchased": false,
			 "createdAt": "2024-03-01T10:00:00Z"},
			{"id": 8, "itemName": "Matcha", "purchased": true, "createdAt": "2024-03-02T10:00:00Z",
			 "updatedAt": "2024-03-03T10:00:00Z"}
		]`)
	})

	items, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 7, items[0].ID)
	assert.Equal(t, "Gundam", items[0].ItemName)
	assert.InDelta(t, 5882.0, items[0].PriceYen, 0)
	assert.Nil(t, items[0].UpdatedAt)
	assert.True(t, items[1].Purchased)
	require.NotNil(t, items[1].UpdatedAt)
	assert.Equal(t, 2024, items[1].UpdatedAt.Year())
}

func TestClient_ListEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	items, err := client.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_Create(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ShoppingItems", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Protetor solar", body["itemName"])
		assert.InDelta(t, 0.0, body["priceYen"], 0)
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "purchased")

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 42, "itemName": "Protetor solar", "purchased": false}`)
	})

	created, err := client.Create(context.Background(), model.CreateItem{
		ItemName:  "Protetor solar",
		StoreName: "Matsumoto Kiyoshi",
		Category:  "Cosméticos",
		City:      "Tóquio",
		Region:    "Shibuya",
		ForWhom:   "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.False(t, created.Purchased)
}

func TestClient_UpdateSendsPurchasedAndIgnoresBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/ShoppingItems/7", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["purchased"])
		assert.Equal(t, "Gundam RX-78", body["itemName"])

		_, _ = io.WriteString(w, `not json at all`)
	})

	err := client.Update(context.Background(), 7, model.UpdateItem{
		CreateItem: model.CreateItem{ItemName: "Gundam RX-78"},
		Purchased:  true,
	})
	assert.NoError(t, err)
}

func TestClient_ToggleAndDelete(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.TogglePurchased(context.Background(), 3))
	require.NoError(t, client.Delete(context.Background(), 3))

	assert.Equal(t, []string{
		"PATCH /api/ShoppingItems/3/toggle-purchased",
		"DELETE /api/ShoppingItems/3",
	}, calls)
}

func TestClient_Stats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ShoppingItems/stats", r.URL.Path)
		_, _ = io.WriteString(w, `{"totalItems": 3, "purchasedItems": 1, "pendingItems": 2,
			"totalPriceReal": 100.5, "totalPriceYen": 2956, "totalPriceDollar": 19.33}`)
	})

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 1, stats.PurchasedItems)
	assert.Equal(t, 2, stats.PendingItems)
	assert.InDelta(t, 100.5, stats.TotalPriceReal, 1e-9)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"error": "nope"}`)
			})

			err := client.Delete(context.Background(), 9)
			require.Error(t, err)

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, status, httpErr.StatusCode)
			assert.Equal(t, http.MethodDelete, httpErr.Method)
			assert.Equal(t, "/ShoppingItems/9", httpErr.Path)
			assert.Contains(t, httpErr.Body, "nope")
			assert.Contains(t, err.Error(), "failed to delete item 9")
			assert.Contains(t, err.Error(), "HTTP error! status:")
			assert.Equal(t, status, StatusCode(err))
			assert.Equal(t, status == http.StatusNotFound, IsNotFound(err))
		})
	}
}

func TestClient_RateLimited(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		rateLimit bool
		temporary bool
	}{
		{name: "too many requests", status: http.StatusTooManyRequests, rateLimit: true, temporary: true},
		{name: "server error", status: http.StatusServiceUnavailable, temporary: true},
		{name: "bad request", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Create(context.Background(), model.CreateItem{ItemName: "Pocky"})
			require.Error(t, err)
			assert.Equal(t, tt.rateLimit, errors.Is(err, common.ErrRateLimit))

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.temporary, httpErr.Temporary())
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: url})
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
	assert.Zero(t, StatusCode(err))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.List(context.Background())
	assert.Error(t, err)
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_BaseURLTrimmed(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://localhost:8080/api///"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", client.BaseURL())
}
