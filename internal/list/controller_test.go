package list

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/compras/internal/catalog"
	"github.com/Veraticus/compras/internal/editor"
	"github.com/Veraticus/compras/internal/filter"
	"github.com/Veraticus/compras/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)

func seedItems() []model.ShoppingItem {
	return []model.ShoppingItem{
		{ID: 1, ItemName: "Protetor solar", Category: "Cosméticos", City: "Tóquio", PriceReal: 40},
		{ID: 2, ItemName: "Ramen", Category: "Comida", City: "Osaka", PriceReal: 10, Purchased: true},
		{ID: 7, ItemName: "Gundam", Category: "Coisas Geek", City: "Tóquio", PriceReal: 200},
	}
}

type noticeRecorder struct {
	notices []Notice
	mu      sync.Mutex
}

func (r *noticeRecorder) record(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func loadedController(t *testing.T) (*Controller, *catalog.MockClient, *noticeRecorder) {
	t.Helper()
	mock := catalog.NewMockClient()
	mock.ListFn = func(context.Context) ([]model.ShoppingItem, error) {
		return seedItems(), nil
	}
	rec := &noticeRecorder{}
	c := NewController(mock, WithClock(func() time.Time { return fixedNow }), WithNotices(rec.record))
	require.NoError(t, c.Load(context.Background()))
	return c, mock, rec
}

func TestLoad(t *testing.T) {
	mock := catalog.NewMockClient()
	c := NewController(mock)
	assert.Equal(t, StateIdle, c.State())

	mock.ListFn = func(context.Context) ([]model.ShoppingItem, error) {
		return nil, &catalog.HTTPError{StatusCode: 500}
	}
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
	assert.Equal(t, StateLoadFailed, c.State())
	assert.ErrorIs(t, c.LoadErr(), ErrLoad)
	assert.Equal(t, 500, catalog.StatusCode(err))

	mock.ListFn = func(context.Context) ([]model.ShoppingItem, error) {
		return seedItems(), nil
	}
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, StateLoaded, c.State())
	assert.NoError(t, c.LoadErr())
	assert.Len(t, c.Items(), 3)
}

func TestLoad_FailureKeepsMirrorAndNotifies(t *testing.T) {
	c, mock, rec := loadedController(t)
	mock.ListFn = func(context.Context) ([]model.ShoppingItem, error) {
		return nil, errors.New("connection refused")
	}

	require.Error(t, c.Load(context.Background()))
	assert.Len(t, c.Items(), 3)

	notices := rec.all()
	require.Len(t, notices, 1)
	assert.Equal(t, Notice{Kind: NoticeError, Op: OpLoad, Message: "Erro ao carregar itens"}, notices[0])
}

func TestCreate_BlankPricesInsertedAtFront(t *testing.T) {
	c, mock, rec := loadedController(t)
	mock.CreateFn = func(_ context.Context, item model.CreateItem) (model.ShoppingItem, error) {
		return model.NewItem(99, item, fixedNow), nil
	}

	form := editor.New()
	form.SetItemName("Matcha KitKat")
	form.SetStoreName("Don Quijote")
	form.SetCategory("Comida")
	form.SetCity("Tóquio")
	form.SetRegion("Shibuya")
	form.SetForWhom("Família")
	intent, ok := form.Submit()
	require.True(t, ok)

	created, err := c.Create(context.Background(), intent.Create)
	require.NoError(t, err)
	assert.Equal(t, 99, created.ID)

	require.Len(t, mock.CreateCalls, 1)
	sent := mock.CreateCalls[0]
	assert.Zero(t, sent.PriceReal)
	assert.Zero(t, sent.PriceYen)
	assert.Zero(t, sent.PriceDollar)

	items := c.Items()
	require.Len(t, items, 4)
	assert.Equal(t, 99, items[0].ID)
	assert.False(t, items[0].Purchased)
	assert.Zero(t, items[0].PriceReal)
	assert.False(t, c.Creating())

	notices := rec.all()
	require.Len(t, notices, 1)
	assert.Equal(t, "Item adicionado com sucesso!", notices[0].Message)
	assert.Equal(t, NoticeSuccess, notices[0].Kind)
}

func TestCreate_Failure(t *testing.T) {
	c, mock, rec := loadedController(t)
	mock.CreateFn = func(context.Context, model.CreateItem) (model.ShoppingItem, error) {
		return model.ShoppingItem{}, &catalog.HTTPError{StatusCode: 400}
	}

	_, err := c.Create(context.Background(), model.CreateItem{ItemName: "x"})
	require.Error(t, err)

	var mErr *MutationError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, OpCreate, mErr.Op)
	assert.Contains(t, err.Error(), "create item")
	assert.Len(t, c.Items(), 3)
	assert.Equal(t, "Erro ao adicionar item", rec.all()[0].Message)
}

func TestUpdate_PatchesAndStamps(t *testing.T) {
	c, mock, _ := loadedController(t)

	update := model.UpdateItem{
		CreateItem: model.CreateItem{ItemName: "Gundam RX-78", Category: "Coisas Geek", City: "Tóquio", PriceReal: 180},
		Purchased:  false,
	}
	require.NoError(t, c.Update(context.Background(), 7, update))

	require.Len(t, mock.UpdateCalls, 1)
	assert.Equal(t, 7, mock.UpdateCalls[0].ID)

	item, ok := c.Item(7)
	require.True(t, ok)
	assert.Equal(t, "Gundam RX-78", item.ItemName)
	assert.InDelta(t, 180.0, item.PriceReal, 0)
	require.NotNil(t, item.UpdatedAt)
	assert.Equal(t, fixedNow, *item.UpdatedAt)
	assert.Equal(t, 7, c.Items()[2].ID, "update keeps position")
}

func TestToggle_MovesToPurchasedAndRejectsSecondWhileInFlight(t *testing.T) {
	c, mock, _ := loadedController(t)

	started := make(chan struct{})
	release := make(chan struct{})
	mock.ToggleFn = func(context.Context, int) error {
		close(started)
		<-release
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- c.Toggle(context.Background(), 7) }()
	<-started

	assert.Equal(t, OpToggling, c.OpState(7))
	assert.True(t, c.Busy(7))

	err := c.Toggle(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, OpToggling, c.OpState(7), "marker still set after rejection")

	err = c.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrBusy, "any op on a busy row is rejected")

	assert.Equal(t, 1, mock.Calls(), "rejected ops never reach the catalog")

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, OpNone, c.OpState(7))
	view := c.View(filter.Criteria{})
	assert.Equal(t, []int{2, 7}, itemIDs(view.Purchased))
	item, _ := c.Item(7)
	require.NotNil(t, item.UpdatedAt)
	assert.Equal(t, fixedNow, *item.UpdatedAt)
}

func TestToggle_DistinctRowsIndependent(t *testing.T) {
	c, mock, _ := loadedController(t)

	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	mock.ToggleFn = func(context.Context, int) error {
		wg.Done()
		<-release
		return nil
	}

	results := make(chan error, 2)
	go func() { results <- c.Toggle(context.Background(), 1) }()
	go func() { results <- c.Toggle(context.Background(), 7) }()
	wg.Wait()

	assert.True(t, c.Busy(1))
	assert.True(t, c.Busy(7))
	assert.False(t, c.Busy(2))

	close(release)
	require.NoError(t, <-results)
	require.NoError(t, <-results)

	assert.Len(t, c.View(filter.Criteria{}).Purchased, 3)
}

func TestToggle_Notices(t *testing.T) {
	c, mock, rec := loadedController(t)

	require.NoError(t, c.Toggle(context.Background(), 1))
	require.Len(t, rec.all(), 1)
	assert.Equal(t, Notice{Kind: NoticeSuccess, Op: OpToggle, ItemID: 1, Message: "Status atualizado!"}, rec.all()[0])

	mock.ToggleFn = func(context.Context, int) error { return errors.New("offline") }
	require.Error(t, c.Toggle(context.Background(), 1))
	require.Len(t, rec.all(), 2)
	assert.Equal(t, "Erro ao atualizar status", rec.all()[1].Message)
}

func TestDelete_FailureKeepsItem(t *testing.T) {
	c, mock, rec := loadedController(t)
	mock.DeleteFn = func(context.Context, int) error {
		return &catalog.HTTPError{Method: "DELETE", StatusCode: 500}
	}

	err := c.Delete(context.Background(), 7)
	require.Error(t, err)

	var mErr *MutationError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, OpDelete, mErr.Op)
	assert.Equal(t, 7, mErr.ItemID)
	assert.Contains(t, err.Error(), "delete item 7")
	assert.Equal(t, 500, catalog.StatusCode(err))

	_, ok := c.Item(7)
	assert.True(t, ok)
	assert.Len(t, c.Items(), 3)
	assert.Equal(t, OpNone, c.OpState(7))

	notices := rec.all()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
	assert.Equal(t, "Erro ao remover item", notices[0].Message)
}

func TestDelete_Success(t *testing.T) {
	c, _, rec := loadedController(t)

	before := c.Items()
	require.NoError(t, c.Delete(context.Background(), 2))

	assert.Equal(t, []int{1, 7}, itemIDs(c.Items()))
	assert.Len(t, before, 3, "earlier snapshots are unaffected")
	assert.Equal(t, "Item removido com sucesso!", rec.all()[0].Message)
}

func TestMutation_UnknownIDStillCallsCatalog(t *testing.T) {
	c, mock, _ := loadedController(t)

	require.NoError(t, c.Toggle(context.Background(), 404))
	assert.Equal(t, []int{404}, mock.ToggleCalls)
	assert.Len(t, c.Items(), 3)
}

func TestStatsIgnoreFilter(t *testing.T) {
	c, _, _ := loadedController(t)

	view := c.View(filter.Criteria{City: "Osaka"})
	assert.Len(t, view.All, 1)

	stats := c.Stats()
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 1, stats.PurchasedCount)
	assert.InDelta(t, 250.0, stats.TotalReal, 1e-9)
}

func TestMutationError_Message(t *testing.T) {
	err := &MutationError{Op: OpToggle, ItemID: 3, Err: errors.New("boom")}
	assert.Equal(t, "toggle item 3: boom", err.Error())
	assert.Equal(t, "create item: boom", (&MutationError{Op: OpCreate, Err: errors.New("boom")}).Error())
}

func itemIDs(items []model.ShoppingItem) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestReserve(t *testing.T) {
	c, mock, _ := loadedController(t)
	ctx := context.Background()

	require.True(t, c.Reserve(1, OpToggling))
	assert.Equal(t, OpToggling, c.OpState(1))
	assert.False(t, c.Reserve(1, OpToggling), "second reservation on a busy row")
	assert.False(t, c.Reserve(1, OpDeleting))

	var mErr *MutationError
	err := c.Delete(ctx, 1)
	require.ErrorAs(t, err, &mErr)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, mock.DeleteCalls)

	require.NoError(t, c.Toggle(ctx, 1))
	assert.Equal(t, []int{1}, mock.ToggleCalls)
	assert.False(t, c.Busy(1))

	// The reservation is consumed; a later toggle runs on its own.
	require.NoError(t, c.Toggle(ctx, 1))
	assert.Equal(t, []int{1, 1}, mock.ToggleCalls)
}

func TestReserve_Release(t *testing.T) {
	c, mock, _ := loadedController(t)

	assert.False(t, c.Reserve(2, OpNone))
	require.True(t, c.Reserve(2, OpUpdating))
	c.Release(2)
	assert.False(t, c.Busy(2))

	// Release leaves markers owned by a running mutation alone.
	release := make(chan struct{})
	started := make(chan struct{})
	mock.ToggleFn = func(context.Context, int) error {
		close(started)
		<-release
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- c.Toggle(context.Background(), 2) }()
	<-started
	c.Release(2)
	assert.True(t, c.Busy(2))
	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Busy(2))
}
