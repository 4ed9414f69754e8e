package components

import (
	"testing"

	"github.com/Veraticus/compras/internal/model"
	tuitesting "github.com/Veraticus/compras/internal/tui/testing"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func sampleStats() model.Stats {
	return model.Stats{
		TotalItems:      4,
		PurchasedCount:  1,
		PendingCount:    3,
		TotalYen:        12500,
		TotalReal:       425,
		TotalDollar:     81.73,
		PurchasedYen:    2000,
		PurchasedReal:   68,
		PurchasedDollar: 13.08,
	}
}

func TestNewStatsPanelModel(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)

	assert.Equal(t, themes.Default, m.theme)
	assert.False(t, m.progressBar.ShowPercentage)
	assert.True(t, m.Stats().Empty())
	assert.False(t, m.compact)
}

func TestStatsPanelModel_EmptyRendersNothing(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.Resize(100)

	assert.Empty(t, m.View())
}

func TestStatsPanelModel_Full(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.Resize(100)
	m.SetStats(sampleStats())

	view := tuitesting.StripANSI(m.View())

	assert.True(t, tuitesting.ContainsInOrder(view, "Itens", "4", "Comprados", "1/4"))
	assert.Contains(t, view, "¥ 13k")
	assert.Contains(t, view, "R$ 425")
	assert.Contains(t, view, "$ 82")
	assert.Contains(t, view, "¥ 2k")
	assert.Contains(t, view, "R$ 68")
}

func TestStatsPanelModel_NoSpentFooterWithoutPurchases(t *testing.T) {
	stats := sampleStats()
	stats.PurchasedCount = 0
	stats.PendingCount = 4
	stats.PurchasedYen, stats.PurchasedReal, stats.PurchasedDollar = 0, 0, 0

	m := NewStatsPanelModel(themes.Default)
	m.Resize(100)
	m.SetStats(stats)

	view := tuitesting.StripANSI(m.View())
	assert.Contains(t, view, "0/4")
	assert.NotContains(t, view, "¥ 0k")
	assert.NotContains(t, view, "R$ 0")
}

func TestStatsPanelModel_Compact(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.SetCompact(true)
	m.Resize(60)
	m.SetStats(sampleStats())

	view := tuitesting.NormalizeWhitespace(tuitesting.StripANSI(m.View()))
	assert.Contains(t, view, "Itens 4 · Comprados 1/4 · ¥ 13k · R$ 425 · $ 82")
}

func TestStatsPanelModel_Resize(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)

	m.Resize(200)
	assert.Equal(t, 40, m.progressBar.Width)

	m.Resize(8)
	assert.Equal(t, 10, m.progressBar.Width)
}
