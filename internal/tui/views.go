package tui

import (
	"strings"

	"github.com/Veraticus/compras/internal/list"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case ScreenHelp:
		return m.renderHelp()
	case ScreenForm:
		body = m.form.View()
	case ScreenFilter:
		body = m.filterPanel.View()
	case ScreenDetail:
		body = m.detail.View()
	default:
		body = m.renderList()
	}

	parts := []string{m.renderHeader()}
	if stats := m.statsPanel.View(); stats != "" && m.screen == ScreenList {
		parts = append(parts, stats)
	}
	parts = append(parts, body)
	if toast := m.renderToast(); toast != "" {
		parts = append(parts, toast)
	}
	parts = append(parts, m.renderStatusBar())

	return m.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Lista de Compras - Japão 🇯🇵")
	subtitle := m.theme.Faint.Render("Gerencie seus itens com conversão Real/Yen/Dólar")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderList picks the loading, failure, empty or tabbed list screen.
func (m Model) renderList() string {
	state := m.controller.State()
	items := m.controller.Items()

	switch {
	case state == list.StateLoadFailed:
		return m.renderLoadFailed()
	case state != list.StateLoaded && len(items) == 0:
		return m.renderLoading()
	case len(items) == 0:
		return m.renderEmpty()
	}

	lines := []string{m.renderActions()}
	if state == list.StateLoading {
		lines = append(lines, m.spinner.View()+" "+m.theme.Faint.Render("Carregando itens..."))
	}
	if m.controller.Creating() {
		lines = append(lines, m.spinner.View()+" "+m.theme.StatusPending.Render("Adicionando item..."))
	}
	lines = append(lines, m.itemList.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderActions() string {
	filters := "Filtros"
	if m.criteria.Active() {
		filters += " (ativo)"
	}
	parts := []string{
		m.theme.Bold.Render("a") + " " + m.theme.Normal.Render("Adicionar Novo Item"),
		m.theme.Bold.Render("f") + " " + m.theme.Normal.Render(filters),
	}
	if m.criteria.Active() {
		parts = append(parts, m.theme.Bold.Render("X")+" "+m.theme.Normal.Render("Limpar filtros"))
	}
	return strings.Join(parts, m.theme.Faint.Render("  ·  ")) + "\n"
}

// renderLoading renders the first-load screen.
func (m Model) renderLoading() string {
	return lipgloss.Place(
		max(m.width-4, 20),
		max(m.height-8, 3),
		lipgloss.Center,
		lipgloss.Center,
		m.spinner.View()+" "+m.theme.Faint.Render("Carregando itens..."),
	)
}

// renderLoadFailed blocks the list until a retry succeeds.
func (m Model) renderLoadFailed() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.StatusError.Render("⚠ Não foi possível carregar os itens"),
		m.theme.Faint.Render("Verifique sua conexão e tente novamente."),
		"",
		m.theme.Bold.Render("r")+" "+m.theme.Normal.Render("Tentar novamente"),
	)
	return lipgloss.Place(max(m.width-4, 20), max(m.height-8, 7), lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderEmpty() string {
	lines := []string{
		"🛍️",
		m.theme.Bold.Render("Sua lista está vazia"),
		m.theme.Faint.Render("Adicione seu primeiro item de compra"),
		"",
		m.theme.Bold.Render("a") + " " + m.theme.Normal.Render("Adicionar Primeiro Item"),
	}
	if m.controller.Creating() {
		lines = append(lines, "", m.spinner.View()+" "+m.theme.StatusPending.Render("Adicionando item..."))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(max(m.width-4, 20), max(m.height-8, 7), lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	if m.toast.Kind == list.NoticeError {
		return m.theme.StatusError.Render("✗ " + m.toast.Message)
	}
	return m.theme.StatusSuccess.Render("✓ " + m.toast.Message)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Atalhos"),
		"",
		h.View(m.keymap),
		"",
		m.theme.Faint.Render("No formulário: tab muda de campo, ←/→ escolhe, ctrl+s salva, esc cancela."),
		m.theme.Faint.Render("Pressione ? ou esc para fechar"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.theme.BorderedBox.Render(content))
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	var left string
	switch m.screen {
	case ScreenForm:
		left = "Formulário"
	case ScreenFilter:
		left = "Filtros"
	case ScreenDetail:
		left = "Detalhes"
	default:
		left = "Lista"
	}

	right := m.help.ShortHelpView(m.keymap.ShortHelp())
	width := max(m.width-4, 20)
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)

	return m.theme.StatusBar.
		Width(width).
		MaxWidth(width).
		Render(" " + m.theme.StatusInfo.Render(left) + strings.Repeat(" ", gap) + right)
}
