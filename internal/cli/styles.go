// Package cli provides styled terminal output and line prompts for the
// non-interactive commands.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/compras/internal/currency"
	"github.com/Veraticus/compras/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#E8505B")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// PurchasedStyle marks bought items.
	PurchasedStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Strikethrough(true)

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	CartIcon    = "🛒"
	ChartIcon   = "📊"
	PendingIcon = "○"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the cart icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CartIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}

// FormatItemLine renders one item as a single list line.
func FormatItemLine(item model.ShoppingItem) string {
	status := PendingIcon
	name := item.ItemName
	if item.Purchased {
		status = SuccessStyle.Render(SuccessIcon)
		name = PurchasedStyle.Render(name)
	}

	line := fmt.Sprintf("%s %4d  %s %s  %s",
		status, item.ID, model.CategoryIcon(item.Category), name,
		SubtleStyle.Render(fmt.Sprintf("%s · %s, %s · %s", item.StoreName, item.City, item.Region, item.ForWhom)),
	)
	if hasPrice(item) {
		line += "  " + BoldStyle.Render(currency.FormatYen(item.PriceYen))
	}
	return line
}

// FormatItemDetails renders every field of an item for a details box.
func FormatItemDetails(item model.ShoppingItem) string {
	rows := [][2]string{
		{"ID", fmt.Sprint(item.ID)},
		{"Categoria", item.Category},
		{"Loja", item.StoreName},
		{"Cidade", item.City},
		{"Região", item.Region},
		{"Para", item.ForWhom},
	}
	status := "pendente"
	if item.Purchased {
		status = "comprado"
	}
	rows = append(rows, [2]string{"Status", status})
	if hasPrice(item) {
		rows = append(rows,
			[2]string{"Yen", currency.FormatYen(item.PriceYen)},
			[2]string{"Real", currency.FormatReal(item.PriceReal)},
			[2]string{"Dólar", currency.FormatDollar(item.PriceDollar)},
		)
	}
	switch item.ImageKind() {
	case model.ImageURL:
		rows = append(rows, [2]string{"Imagem", item.Image})
	case model.ImageEmbedded:
		rows = append(rows, [2]string{"Imagem", fmt.Sprintf("foto anexada (%d KB)", len(item.Image)/1024)})
	}
	if !item.CreatedAt.IsZero() {
		rows = append(rows, [2]string{"Criado em", item.CreatedAt.In(time.Local).Format("02/01/2006 15:04")})
	}
	if item.UpdatedAt != nil {
		rows = append(rows, [2]string{"Atualizado em", item.UpdatedAt.In(time.Local).Format("02/01/2006 15:04")})
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, SubtleStyle.Render(fmt.Sprintf("%-14s", r[0]))+r[1])
	}
	return strings.Join(lines, "\n")
}

// FormatStats renders collection totals and, once something was bought,
// how much was spent.
func FormatStats(s model.Stats) string {
	out := FormatTotals(s)
	if s.PurchasedCount > 0 {
		out += "\n\n" + strings.Join([]string{
			fmt.Sprintf("%-12s %s", "Gasto ¥", currency.FormatYen(s.PurchasedYen)),
			fmt.Sprintf("%-12s %s", "Gasto R$", currency.FormatReal(s.PurchasedReal)),
			fmt.Sprintf("%-12s %s", "Gasto $", currency.FormatDollar(s.PurchasedDollar)),
		}, "\n")
	}
	return out
}

// FormatTotals renders counts and price totals only.
func FormatTotals(s model.Stats) string {
	return strings.Join([]string{
		fmt.Sprintf("%-12s %d", "Itens", s.TotalItems),
		fmt.Sprintf("%-12s %d/%d", "Comprados", s.PurchasedCount, s.TotalItems),
		fmt.Sprintf("%-12s %d", "Pendentes", s.PendingCount),
		"",
		fmt.Sprintf("%-12s %s", "Total ¥", currency.FormatYen(s.TotalYen)),
		fmt.Sprintf("%-12s %s", "Total R$", currency.FormatReal(s.TotalReal)),
		fmt.Sprintf("%-12s %s", "Total $", currency.FormatDollar(s.TotalDollar)),
	}, "\n")
}

func hasPrice(item model.ShoppingItem) bool {
	return item.PriceYen > 0 || item.PriceReal > 0 || item.PriceDollar > 0
}
