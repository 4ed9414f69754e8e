package components

import (
	"testing"

	"github.com/Veraticus/compras/internal/filter"
	tuitesting "github.com/Veraticus/compras/internal/tui/testing"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterPanel_ApplyCriteria(t *testing.T) {
	m := NewFilterPanel(filter.Criteria{}, sampleItems(), themes.Default)

	m, _ = m.Update(tuitesting.KeyRight())
	assert.Equal(t, "Cosméticos", m.Criteria().Category)

	m, _ = m.Update(tuitesting.KeyTab())
	m, _ = m.Update(tuitesting.KeyRight())
	assert.Equal(t, "Tóquio", m.Criteria().City)

	m, _ = m.Update(tuitesting.KeyTab())
	for _, msg := range tuitesting.Type("shib") {
		m, _ = m.Update(msg)
	}

	_, cmd := m.Update(tuitesting.KeyEnter())
	require.NotNil(t, cmd)
	applied, ok := cmd().(FilterAppliedMsg)
	require.True(t, ok)
	assert.Equal(t, filter.Criteria{Category: "Cosméticos", City: "Tóquio", Region: "shib"}, applied.Criteria)
}

func TestFilterPanel_CitiesComeFromItems(t *testing.T) {
	m := NewFilterPanel(filter.Criteria{}, sampleItems(), themes.Default)
	assert.ElementsMatch(t, []string{"Tóquio", "Osaka"}, m.cities)

	m = NewFilterPanel(filter.Criteria{City: "Kyoto"}, sampleItems(), themes.Default)
	assert.Contains(t, m.cities, "Kyoto")
}

func TestFilterPanel_CancelAndClear(t *testing.T) {
	current := filter.Criteria{Category: "Comida", ForWhom: "ana"}
	m := NewFilterPanel(current, sampleItems(), themes.Default)
	assert.Equal(t, current, m.Criteria())

	_, cmd := m.Update(tuitesting.KeyEsc())
	require.NotNil(t, cmd)
	assert.IsType(t, FilterCancelledMsg{}, cmd())

	_, cmd = m.Update(tuitesting.KeyCtrlX())
	require.NotNil(t, cmd)
	cleared := cmd().(FilterAppliedMsg)
	assert.False(t, cleared.Criteria.Active())
}

func TestFilterPanel_View(t *testing.T) {
	m := NewFilterPanel(filter.Criteria{}, sampleItems(), themes.Default)
	m.Resize(80)

	view := tuitesting.StripANSI(m.View())
	assert.True(t, tuitesting.ContainsInOrder(view, "Filtros", "Categoria", "Todas as categorias", "Cidade", "Todas", "Região", "Para quem"))
}

func TestCycleOption(t *testing.T) {
	options := []string{"a", "b"}
	assert.Equal(t, "a", cycleOption(options, "", 1))
	assert.Equal(t, "", cycleOption(options, "b", 1))
	assert.Equal(t, "b", cycleOption(options, "", -1))
}
