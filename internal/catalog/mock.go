package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/Veraticus/compras/internal/model"
)

// MockClient is a mock implementation of Service for testing.
type MockClient struct {
	// Functions that can be set by tests to control behavior
	ListFn   func(ctx context.Context) ([]model.ShoppingItem, error)
	GetFn    func(ctx context.Context, id int) (model.ShoppingItem, error)
	CreateFn func(ctx context.Context, item model.CreateItem) (model.ShoppingItem, error)
	UpdateFn func(ctx context.Context, id int, item model.UpdateItem) error
	ToggleFn func(ctx context.Context, id int) error
	DeleteFn func(ctx context.Context, id int) error
	StatsFn  func(ctx context.Context) (model.RemoteStats, error)

	// Call tracking
	CreateCalls []model.CreateItem
	UpdateCalls []UpdateCall
	ToggleCalls []int
	DeleteCalls []int
	GetCalls    []int
	ListCalls   int
	StatsCalls  int

	mu sync.Mutex
}

// UpdateCall records the parameters of an Update call.
type UpdateCall struct {
	Item model.UpdateItem
	ID   int
}

// NewMockClient creates a new mock catalog.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// List implements Service.List.
func (m *MockClient) List(ctx context.Context) ([]model.ShoppingItem, error) {
	m.mu.Lock()
	m.ListCalls++
	fn := m.ListFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return []model.ShoppingItem{}, nil
}

// Get implements Service.Get.
func (m *MockClient) Get(ctx context.Context, id int) (model.ShoppingItem, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, id)
	fn := m.GetFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id)
	}
	return model.ShoppingItem{}, &HTTPError{Method: "GET", Path: itemPath(id), StatusCode: 404}
}

// Create implements Service.Create. By default it echoes the item back with id 1.
func (m *MockClient) Create(ctx context.Context, item model.CreateItem) (model.ShoppingItem, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, item)
	fn := m.CreateFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, item)
	}
	return model.NewItem(1, item, time.Time{}), nil
}

// Update implements Service.Update.
func (m *MockClient) Update(ctx context.Context, id int, item model.UpdateItem) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, UpdateCall{ID: id, Item: item})
	fn := m.UpdateFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id, item)
	}
	return nil
}

// TogglePurchased implements Service.TogglePurchased.
func (m *MockClient) TogglePurchased(ctx context.Context, id int) error {
	m.mu.Lock()
	m.ToggleCalls = append(m.ToggleCalls, id)
	fn := m.ToggleFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id)
	}
	return nil
}

// Delete implements Service.Delete.
func (m *MockClient) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	fn := m.DeleteFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id)
	}
	return nil
}

// Stats implements Service.Stats.
func (m *MockClient) Stats(ctx context.Context) (model.RemoteStats, error) {
	m.mu.Lock()
	m.StatsCalls++
	fn := m.StatsFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return model.RemoteStats{}, nil
}

// Calls returns how many mutating calls were made, for assertions that no
// remote work happened.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CreateCalls) + len(m.UpdateCalls) + len(m.ToggleCalls) + len(m.DeleteCalls)
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = nil
	m.UpdateCalls = nil
	m.ToggleCalls = nil
	m.DeleteCalls = nil
	m.GetCalls = nil
	m.ListCalls = 0
	m.StatsCalls = 0
}

// Ensure MockClient implements Service interface.
var _ Service = (*MockClient)(nil)
