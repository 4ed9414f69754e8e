package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/compras/internal/filter"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type filterField int

const (
	filterCategory filterField = iota
	filterCity
	filterRegion
	filterForWhom
	filterFieldCount
)

// FilterPanelModel edits filter criteria. Changes apply when the user
// confirms; esc discards them.
type FilterPanelModel struct {
	theme      themes.Theme
	criteria   filter.Criteria
	categories []string
	cities     []string
	region     textinput.Model
	forWhom    textinput.Model
	focus      filterField
	width      int
}

// NewFilterPanel opens the panel on the current criteria. City choices
// come from the items themselves.
func NewFilterPanel(current filter.Criteria, items []model.ShoppingItem, theme themes.Theme) FilterPanelModel {
	region := textinput.New()
	region.Prompt = ""
	region.Placeholder = "Digite a região..."
	region.SetValue(current.Region)

	forWhom := textinput.New()
	forWhom.Prompt = ""
	forWhom.Placeholder = "Digite para quem é..."
	forWhom.SetValue(current.ForWhom)

	return FilterPanelModel{
		theme:      theme,
		criteria:   current,
		categories: model.CategoryNames(),
		cities:     withValue(filter.Cities(items), current.City),
		region:     region,
		forWhom:    forWhom,
		width:      60,
	}
}

// Criteria returns the criteria as currently edited.
func (m FilterPanelModel) Criteria() filter.Criteria {
	c := m.criteria
	c.Region = m.region.Value()
	c.ForWhom = m.forWhom.Value()
	return c
}

// Resize updates the component width.
func (m *FilterPanelModel) Resize(width int) {
	m.width = width
	m.region.Width = max(min(width-24, 40), 10)
	m.forWhom.Width = m.region.Width
}

// Update handles messages.
func (m FilterPanelModel) Update(msg tea.Msg) (FilterPanelModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return FilterCancelledMsg{} }
	case "enter":
		c := m.Criteria()
		return m, func() tea.Msg { return FilterAppliedMsg{Criteria: c} }
	case "ctrl+x":
		c := filter.Criteria{}
		return m, func() tea.Msg { return FilterAppliedMsg{Criteria: c} }
	case "tab", "down":
		return m, m.focusField((m.focus + 1) % filterFieldCount)
	case "shift+tab", "up":
		return m, m.focusField((m.focus + filterFieldCount - 1) % filterFieldCount)
	case "left", "right":
		delta := 1
		if keyMsg.String() == "left" {
			delta = -1
		}
		switch m.focus {
		case filterCategory:
			m.criteria.Category = cycleOption(m.categories, m.criteria.Category, delta)
			return m, nil
		case filterCity:
			m.criteria.City = cycleOption(m.cities, m.criteria.City, delta)
			return m, nil
		}
	}

	return m.updateInput(msg)
}

func (m FilterPanelModel) updateInput(msg tea.Msg) (FilterPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case filterRegion:
		m.region, cmd = m.region.Update(msg)
	case filterForWhom:
		m.forWhom, cmd = m.forWhom.Update(msg)
	}
	return m, cmd
}

func (m *FilterPanelModel) focusField(f filterField) tea.Cmd {
	m.region.Blur()
	m.forWhom.Blur()
	m.focus = f
	switch f {
	case filterRegion:
		return m.region.Focus()
	case filterForWhom:
		return m.forWhom.Focus()
	}
	return nil
}

// cycleOption steps through "" followed by options.
func cycleOption(options []string, current string, delta int) string {
	all := append([]string{""}, options...)
	idx := 0
	for i, o := range all {
		if o == current {
			idx = i
		}
	}
	return all[(idx+delta+len(all))%len(all)]
}

// View renders the panel.
func (m FilterPanelModel) View() string {
	category := m.criteria.Category
	if category == "" {
		category = "Todas as categorias"
	} else {
		category = model.CategoryIcon(category) + " " + category
	}
	city := m.criteria.City
	if city == "" {
		city = "Todas"
	}

	rows := []struct {
		label string
		value string
		field filterField
	}{
		{"Categoria", "‹ " + category + " ›", filterCategory},
		{"Cidade", "‹ " + city + " ›", filterCity},
		{"Região", m.region.View(), filterRegion},
		{"Para quem", m.forWhom.View(), filterForWhom},
	}

	lines := []string{m.theme.Title.Render("Filtros"), ""}
	for _, r := range rows {
		cursor := "  "
		style := m.theme.Field
		if r.field == m.focus {
			cursor = "› "
			style = m.theme.FocusedField
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", cursor, style.Render(fmt.Sprintf("%-10s", r.label)), r.value))
	}
	lines = append(lines, "", m.theme.Faint.Render(strings.Join([]string{
		"enter aplicar", "←/→ escolher", "ctrl+x limpar", "esc cancelar",
	}, " · ")))

	return m.theme.BorderedBox.
		Width(min(max(m.width, 40), 80)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
