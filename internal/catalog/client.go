package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/compras/internal/model"
	"github.com/google/uuid"
)

// DefaultBaseURL is the hosted shopping API.
const DefaultBaseURL = "https://new-shopping-api-gwg4h7ehgwe5esby.canadacentral-01.azurewebsites.net/api"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

const itemsPath = "/ShoppingItems"

// Config holds the client configuration.
type Config struct {
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
	BaseURL    string
	// Timeout of zero disables the per-request timeout.
	Timeout time.Duration
}

// Validate checks that the configuration can build a client.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid catalog base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid catalog base URL: scheme must be http or https")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("catalog timeout cannot be negative")
	}
	return nil
}

// Client implements Service over the REST API.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates a catalog client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     slog.Default().With("component", "catalog"),
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every item.
func (c *Client) List(ctx context.Context) ([]model.ShoppingItem, error) {
	var items []model.ShoppingItem
	if err := c.do(ctx, http.MethodGet, itemsPath, nil, &items); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	return items, nil
}

// Get fetches a single item.
func (c *Client) Get(ctx context.Context, id int) (model.ShoppingItem, error) {
	var item model.ShoppingItem
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, &item); err != nil {
		return model.ShoppingItem{}, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

// Create stores a new item and returns it with its server-assigned id.
func (c *Client) Create(ctx context.Context, item model.CreateItem) (model.ShoppingItem, error) {
	var created model.ShoppingItem
	if err := c.do(ctx, http.MethodPost, itemsPath, item, &created); err != nil {
		return model.ShoppingItem{}, fmt.Errorf("failed to create item: %w", err)
	}
	return created, nil
}

// Update replaces the editable fields of an item. Any response body is ignored.
func (c *Client) Update(ctx context.Context, id int, item model.UpdateItem) error {
	if err := c.do(ctx, http.MethodPut, itemPath(id), item, nil); err != nil {
		return fmt.Errorf("failed to update item %d: %w", id, err)
	}
	return nil
}

// TogglePurchased flips the purchased flag on the server.
func (c *Client) TogglePurchased(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodPatch, itemPath(id)+"/toggle-purchased", nil, nil); err != nil {
		return fmt.Errorf("failed to toggle item %d: %w", id, err)
	}
	return nil
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

// Stats fetches the server-side aggregate.
func (c *Client) Stats(ctx context.Context) (model.RemoteStats, error) {
	var stats model.RemoteStats
	if err := c.do(ctx, http.MethodGet, itemsPath+"/stats", nil, &stats); err != nil {
		return model.RemoteStats{}, fmt.Errorf("failed to fetch stats: %w", err)
	}
	return stats, nil
}

func itemPath(id int) string {
	return itemsPath + "/" + strconv.Itoa(id)
}

// do sends one request. A nil body sends no payload; a nil out discards the
// response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Catalog request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Catalog request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

var _ Service = (*Client)(nil)
