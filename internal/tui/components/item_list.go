package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/compras/internal/currency"
	"github.com/Veraticus/compras/internal/filter"
	"github.com/Veraticus/compras/internal/list"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab selects which partition of the filtered view is listed.
type Tab int

// Tabs in display order.
const (
	TabAll Tab = iota
	TabPending
	TabPurchased
)

func (t Tab) label() string {
	switch t {
	case TabPending:
		return "Pendentes"
	case TabPurchased:
		return "Comprados"
	default:
		return "Todos"
	}
}

// emptyMessage is shown when the tab has nothing to list.
func (t Tab) emptyMessage() string {
	switch t {
	case TabPending:
		return "Nenhum item pendente"
	case TabPurchased:
		return "Nenhum item comprado ainda"
	default:
		return "Nenhum item corresponde aos filtros"
	}
}

// MarkerFunc reports the in-flight operation of an item.
type MarkerFunc func(id int) list.OpState

// ItemListModel is the tabbed item table.
type ItemListModel struct {
	theme  themes.Theme
	marker MarkerFunc
	view   filter.View
	rows   []model.ShoppingItem
	table  table.Model
	tab    Tab
	width  int
	height int
}

// NewItemList creates an empty list.
func NewItemList(theme themes.Theme, marker MarkerFunc) ItemListModel {
	t := table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	if marker == nil {
		marker = func(int) list.OpState { return list.OpNone }
	}

	return ItemListModel{
		theme:  theme,
		marker: marker,
		table:  t,
		width:  80,
		height: 12,
	}
}

// SetView replaces the derived view, keeping the cursor on the same item
// when it is still listed.
func (m *ItemListModel) SetView(v filter.View) {
	selected, hadSelection := m.Selected()
	m.view = v
	m.refresh()
	if !hadSelection {
		return
	}
	for i, item := range m.rows {
		if item.ID == selected.ID {
			m.table.SetCursor(i)
			return
		}
	}
	if c := m.table.Cursor(); c >= len(m.rows) && len(m.rows) > 0 {
		m.table.SetCursor(len(m.rows) - 1)
	}
}

// Refresh re-renders rows, e.g. after in-flight markers change.
func (m *ItemListModel) Refresh() {
	m.refresh()
}

// Tab returns the active tab.
func (m ItemListModel) Tab() Tab {
	return m.tab
}

// SetTab switches tabs and moves the cursor to the top.
func (m *ItemListModel) SetTab(t Tab) {
	m.tab = t
	m.refresh()
	m.table.SetCursor(0)
}

// NextTab cycles forward through the tabs.
func (m *ItemListModel) NextTab() {
	m.SetTab((m.tab + 1) % 3)
}

// PrevTab cycles backward through the tabs.
func (m *ItemListModel) PrevTab() {
	m.SetTab((m.tab + 2) % 3)
}

// Selected returns the item under the cursor.
func (m ItemListModel) Selected() (model.ShoppingItem, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rows) {
		return model.ShoppingItem{}, false
	}
	return m.rows[c], true
}

// Rows returns the items of the active tab.
func (m ItemListModel) Rows() []model.ShoppingItem {
	return m.rows
}

// Resize updates the component size.
func (m *ItemListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	// Rows must match the column count before the table re-renders.
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-2, 3))
	m.refresh()
}

// Update handles cursor movement.
func (m ItemListModel) Update(msg tea.Msg) (ItemListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the tab bar and the table.
func (m ItemListModel) View() string {
	tabs := m.renderTabs()
	if len(m.rows) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(m.theme.Muted).
			Width(m.width).
			Align(lipgloss.Center).
			PaddingTop(1).
			Render(m.tab.emptyMessage())
		return lipgloss.JoinVertical(lipgloss.Left, tabs, empty)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabs, m.table.View())
}

func (m ItemListModel) renderTabs() string {
	counts := map[Tab]int{
		TabAll:       len(m.view.All),
		TabPending:   len(m.view.Pending),
		TabPurchased: len(m.view.Purchased),
	}
	parts := make([]string, 0, 3)
	for _, t := range []Tab{TabAll, TabPending, TabPurchased} {
		label := fmt.Sprintf("%s (%d)", t.label(), counts[t])
		if t == m.tab {
			parts = append(parts, m.theme.ActiveTab.Render(label))
		} else {
			parts = append(parts, m.theme.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *ItemListModel) refresh() {
	switch m.tab {
	case TabPending:
		m.rows = m.view.Pending
	case TabPurchased:
		m.rows = m.view.Purchased
	default:
		m.rows = m.view.All
	}

	wide := m.width >= 100
	rows := make([]table.Row, 0, len(m.rows))
	for _, item := range m.rows {
		rows = append(rows, m.row(item, wide))
	}
	m.table.SetRows(rows)
}

func (m ItemListModel) row(item model.ShoppingItem, wide bool) table.Row {
	name := model.CategoryIcon(item.Category) + " " + item.ItemName
	place := item.City
	if item.Region != "" {
		place += " · " + item.Region
	}

	var yen, reais, dollar string
	if item.PriceYen > 0 || item.PriceReal > 0 || item.PriceDollar > 0 {
		yen = currency.FormatYen(item.PriceYen)
		reais = currency.FormatReal(item.PriceReal)
		dollar = currency.FormatDollar(item.PriceDollar)
	}

	status := statusCell(item.Purchased, m.marker(item.ID))
	if !wide {
		return table.Row{status, name, item.StoreName, item.ForWhom, yen}
	}
	return table.Row{status, name, item.StoreName, place, item.ForWhom, yen, reais, dollar}
}

// statusCell is the first column: purchase state or the pending operation.
func statusCell(purchased bool, op list.OpState) string {
	switch op {
	case list.OpToggling:
		return "…"
	case list.OpDeleting:
		return "✗…"
	case list.OpUpdating:
		return "✎…"
	}
	if purchased {
		return "✓"
	}
	return "○"
}

func columnsFor(width int) []table.Column {
	if width >= 100 {
		fixed := 3 + 18 + 20 + 14 + 12 + 12 + 10
		return []table.Column{
			{Title: "", Width: 3},
			{Title: "Item", Width: max(width-fixed-16, 16)},
			{Title: "Loja", Width: 18},
			{Title: "Local", Width: 20},
			{Title: "Para", Width: 14},
			{Title: "¥", Width: 12},
			{Title: "R$", Width: 12},
			{Title: "$", Width: 10},
		}
	}
	fixed := 3 + 14 + 10 + 12
	return []table.Column{
		{Title: "", Width: 3},
		{Title: "Item", Width: max(width-fixed-10, 12)},
		{Title: "Loja", Width: 14},
		{Title: "Para", Width: 10},
		{Title: "¥", Width: 12},
	}
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
