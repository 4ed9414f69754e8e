package components

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/compras/internal/currency"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StatsPanelModel renders the summary cards above the list. It always
// summarizes the whole collection, never the filtered view.
type StatsPanelModel struct {
	theme       themes.Theme
	progressBar progress.Model
	stats       model.Stats
	width       int
	compact     bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	prog := progress.New(progress.WithSolidFill(string(theme.Success)))
	prog.ShowPercentage = false
	prog.Width = 20

	return StatsPanelModel{
		theme:       theme,
		progressBar: prog,
	}
}

// SetStats replaces the figures shown.
func (m *StatsPanelModel) SetStats(s model.Stats) {
	m.stats = s
}

// Stats returns the figures shown.
func (m StatsPanelModel) Stats() model.Stats {
	return m.stats
}

// SetCompact sets compact mode.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize updates the component size.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = max(min(width-4, 40), 10)
}

// View renders the panel, or nothing for an empty collection.
func (m StatsPanelModel) View() string {
	if m.stats.Empty() {
		return ""
	}
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

func (m StatsPanelModel) renderCompact() string {
	s := m.stats
	line := fmt.Sprintf("Itens %d · Comprados %d/%d · %s · %s · %s",
		s.TotalItems,
		s.PurchasedCount, s.TotalItems,
		currency.SummaryYen(s.TotalYen),
		currency.SummaryReal(s.TotalReal),
		currency.SummaryDollar(s.TotalDollar),
	)
	return m.theme.Box.Render(m.theme.Normal.Render(line))
}

func (m StatsPanelModel) renderFull() string {
	s := m.stats

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("🛍️ Itens", strconv.Itoa(s.TotalItems), ""),
		m.card("✅ Comprados", fmt.Sprintf("%d/%d", s.PurchasedCount, s.TotalItems), m.progressBar.ViewAs(s.PurchasedRatio())),
	)

	var yenSpent, realSpent, dollarSpent string
	if s.PurchasedCount > 0 {
		yenSpent = currency.SummaryYen(s.PurchasedYen)
		realSpent = currency.SummaryReal(s.PurchasedReal)
		dollarSpent = currency.SummaryDollar(s.PurchasedDollar)
	}

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Yen", currency.SummaryYen(s.TotalYen), yenSpent),
		m.card("Real", currency.SummaryReal(s.TotalReal), realSpent),
		m.card("Dólar", currency.SummaryDollar(s.TotalDollar), dollarSpent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

// card renders a titled value with an optional footer line.
func (m StatsPanelModel) card(title, value, footer string) string {
	lines := []string{
		m.theme.CardLabel.Render(title),
		m.theme.CardValue.Render(value),
	}
	if footer != "" {
		lines = append(lines, m.theme.CardLabel.Render(footer))
	}
	return m.theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
