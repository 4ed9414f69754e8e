package components

import (
	"testing"

	"github.com/Veraticus/compras/internal/filter"
	"github.com/Veraticus/compras/internal/list"
	"github.com/Veraticus/compras/internal/model"
	tuitesting "github.com/Veraticus/compras/internal/tui/testing"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []model.ShoppingItem {
	return []model.ShoppingItem{
		{ID: 1, ItemName: "Protetor Solar", Category: "Cosméticos", StoreName: "Matsukiyo", City: "Tóquio", Region: "Shibuya", ForWhom: "Ana", PriceYen: 1500, PriceReal: 51, PriceDollar: 9.81},
		{ID: 2, ItemName: "Nintendo Switch", Category: "Eletrônicos", StoreName: "Bic Camera", City: "Osaka", Region: "Namba", ForWhom: "Para mim", Purchased: true},
		{ID: 3, ItemName: "Kit Kat", Category: "Comida", StoreName: "Don Quijote", City: "Tóquio", Region: "Shinjuku", ForWhom: "João"},
	}
}

func newTestList(t *testing.T, marker MarkerFunc) ItemListModel {
	t.Helper()
	m := NewItemList(themes.Default, marker)
	m.Resize(80, 20)
	m.SetView(filter.Derive(sampleItems(), filter.Criteria{}))
	return m
}

func TestItemList_TabsPartitionTheView(t *testing.T) {
	m := newTestList(t, nil)

	assert.Len(t, m.Rows(), 3)
	view := tuitesting.StripANSI(m.View())
	assert.True(t, tuitesting.ContainsInOrder(view, "Todos (3)", "Pendentes (2)", "Comprados (1)"))

	m.NextTab()
	assert.Equal(t, TabPending, m.Tab())
	require.Len(t, m.Rows(), 2)
	assert.Equal(t, 1, m.Rows()[0].ID)
	assert.Equal(t, 3, m.Rows()[1].ID)

	m.NextTab()
	assert.Equal(t, TabPurchased, m.Tab())
	require.Len(t, m.Rows(), 1)
	assert.Equal(t, 2, m.Rows()[0].ID)

	m.NextTab()
	assert.Equal(t, TabAll, m.Tab())

	m.PrevTab()
	assert.Equal(t, TabPurchased, m.Tab())
}

func TestItemList_EmptyMessages(t *testing.T) {
	tests := []struct {
		name  string
		tab   Tab
		items []model.ShoppingItem
		want  string
	}{
		{"no pending", TabPending, []model.ShoppingItem{{ID: 1, ItemName: "x", Purchased: true}}, "Nenhum item pendente"},
		{"nothing bought", TabPurchased, []model.ShoppingItem{{ID: 1, ItemName: "x"}}, "Nenhum item comprado ainda"},
		{"filtered out", TabAll, nil, "Nenhum item corresponde aos filtros"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewItemList(themes.Default, nil)
			m.Resize(80, 20)
			m.SetView(filter.Derive(tt.items, filter.Criteria{}))
			m.SetTab(tt.tab)

			assert.Contains(t, tuitesting.StripANSI(m.View()), tt.want)
			_, ok := m.Selected()
			assert.False(t, ok)
		})
	}
}

func TestItemList_SelectionFollowsItem(t *testing.T) {
	m := newTestList(t, nil)

	m, _ = m.Update(tuitesting.KeyDown())
	m, _ = m.Update(tuitesting.KeyDown())
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, selected.ID)

	// Item 1 disappears; the cursor stays on item 3.
	items := sampleItems()[1:]
	m.SetView(filter.Derive(items, filter.Criteria{}))
	selected, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, selected.ID)

	// Item 3 disappears; the cursor is clamped to the last row.
	m.SetView(filter.Derive(items[:1], filter.Criteria{}))
	selected, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, selected.ID)
}

func TestItemList_RowsShowMarkersAndPrices(t *testing.T) {
	marker := func(id int) list.OpState {
		if id == 3 {
			return list.OpDeleting
		}
		return list.OpNone
	}
	m := newTestList(t, marker)

	view := tuitesting.StripANSI(m.View())
	assert.Contains(t, view, "🧴 Protetor Solar")
	assert.Contains(t, view, "¥ 1,500")
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, "✗…")
}

func TestItemList_ColumnsFollowWidth(t *testing.T) {
	m := newTestList(t, nil)
	assert.Len(t, m.table.Columns(), 5)

	m.Resize(120, 20)
	assert.Len(t, m.table.Columns(), 8)
	assert.Len(t, m.table.Rows()[0], 8)
	assert.Contains(t, tuitesting.StripANSI(m.View()), "R$ 51.00")

	m.Resize(60, 20)
	assert.Len(t, m.table.Rows()[0], 5)
}

func TestStatusCell(t *testing.T) {
	assert.Equal(t, "○", statusCell(false, list.OpNone))
	assert.Equal(t, "✓", statusCell(true, list.OpNone))
	assert.Equal(t, "…", statusCell(true, list.OpToggling))
	assert.Equal(t, "✗…", statusCell(false, list.OpDeleting))
	assert.Equal(t, "✎…", statusCell(false, list.OpUpdating))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", truncate("curto", 10))
	assert.Equal(t, "Shibu…", truncate("Shibuya Crossing", 6))
	assert.Equal(t, "S", truncate("Shibuya", 1))
}
