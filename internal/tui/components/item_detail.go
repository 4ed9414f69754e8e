package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/compras/internal/currency"
	"github.com/Veraticus/compras/internal/list"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

const detailTimeLayout = "02/01/2006 15:04"

// ItemDetailModel shows every field of one item.
type ItemDetailModel struct {
	theme themes.Theme
	item  model.ShoppingItem
	op    list.OpState
	width int
}

// NewItemDetail creates a detail view for item.
func NewItemDetail(item model.ShoppingItem, theme themes.Theme) ItemDetailModel {
	return ItemDetailModel{
		theme: theme,
		item:  item,
		width: 60,
	}
}

// Item returns the item shown.
func (m ItemDetailModel) Item() model.ShoppingItem {
	return m.item
}

// SetItem replaces the item shown, e.g. after a toggle completes.
func (m *ItemDetailModel) SetItem(item model.ShoppingItem) {
	m.item = item
}

// SetOpState sets the in-flight marker shown in the header.
func (m *ItemDetailModel) SetOpState(op list.OpState) {
	m.op = op
}

// Resize updates the component width.
func (m *ItemDetailModel) Resize(width int) {
	m.width = width
}

// View renders the detail card.
func (m ItemDetailModel) View() string {
	item := m.item

	nameStyle := m.theme.Title
	if item.Purchased {
		nameStyle = nameStyle.Strikethrough(true)
	}
	header := nameStyle.Render(model.CategoryIcon(item.Category) + " " + item.ItemName)
	if item.Purchased {
		header += "  " + m.theme.StatusSuccess.Render("✓ Comprado")
	}
	switch m.op {
	case list.OpToggling:
		header += "  " + m.theme.StatusPending.Render("Atualizando...")
	case list.OpDeleting:
		header += "  " + m.theme.StatusPending.Render("Removendo...")
	case list.OpUpdating:
		header += "  " + m.theme.StatusPending.Render("Atualizando item...")
	}

	rows := [][2]string{
		{"Categoria", item.Category},
		{"Loja", item.StoreName},
		{"Cidade", item.City},
		{"Região", item.Region},
		{"Para", item.ForWhom},
	}
	if item.PriceYen > 0 || item.PriceReal > 0 || item.PriceDollar > 0 {
		rows = append(rows,
			[2]string{"Yen", currency.FormatYen(item.PriceYen)},
			[2]string{"Real", currency.FormatReal(item.PriceReal)},
			[2]string{"Dólar", currency.FormatDollar(item.PriceDollar)},
		)
	}
	rows = append(rows, [2]string{"Imagem", m.imageLine()})
	if !item.CreatedAt.IsZero() {
		rows = append(rows, [2]string{"Criado em", item.CreatedAt.In(time.Local).Format(detailTimeLayout)})
	}
	if item.UpdatedAt != nil {
		rows = append(rows, [2]string{"Atualizado em", item.UpdatedAt.In(time.Local).Format(detailTimeLayout)})
	}

	valueWidth := max(m.width-20, 20)
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %s",
			m.theme.Field.Render(fmt.Sprintf("%-14s", r[0])),
			m.theme.Normal.Render(truncate(r[1], valueWidth)),
		))
	}

	footer := m.theme.Faint.Render("espaço comprei · e editar · d remover · esc voltar")

	return m.theme.BorderedBox.
		Width(min(m.width, 80)).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			strings.Join(lines, "\n"),
			"",
			footer,
		))
}

func (m ItemDetailModel) imageLine() string {
	switch m.item.ImageKind() {
	case model.ImageEmbedded:
		return fmt.Sprintf("foto anexada (%d KB)", len(m.item.Image)/1024)
	case model.ImageURL:
		return m.item.Image
	default:
		return "sem imagem"
	}
}
