// Package themes holds the color palettes of the interactive list.
package themes

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Bold         lipgloss.Style
	Faint        lipgloss.Style
	Selected     lipgloss.Style
	Purchased    lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Card         lipgloss.Style
	CardLabel    lipgloss.Style
	CardValue    lipgloss.Style
	Box          lipgloss.Style
	BorderedBox  lipgloss.Style
	Field        lipgloss.Style
	FocusedField lipgloss.Style
	StatusBar    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style

	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Foreground lipgloss.Color
	Background lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
}

type palette struct {
	primary, secondary, success, warning, errc, info lipgloss.Color
	fg, bg, border, muted, surface                   lipgloss.Color
}

func build(p palette) Theme {
	return Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.errc,
		Info:       p.info,
		Foreground: p.fg,
		Background: p.bg,
		Border:     p.border,
		Muted:      p.muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.secondary),
		Normal: lipgloss.NewStyle().
			Foreground(p.fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.fg),
		Faint: lipgloss.NewStyle().
			Foreground(p.muted),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.bg).
			Bold(true),
		Purchased: lipgloss.NewStyle().
			Foreground(p.muted).
			Strikethrough(true),
		Tab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.bg).
			Background(p.primary).
			Bold(true).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		CardLabel: lipgloss.NewStyle().
			Foreground(p.muted),
		CardValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.fg),
		Box: lipgloss.NewStyle().
			Padding(0, 1),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
		Field: lipgloss.NewStyle().
			Foreground(p.muted),
		FocusedField: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.surface),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errc).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:   lipgloss.Color("#e11d74"),
	secondary: lipgloss.Color("#f9a8d4"),
	success:   lipgloss.Color("#10b981"),
	warning:   lipgloss.Color("#f59e0b"),
	errc:      lipgloss.Color("#ef4444"),
	info:      lipgloss.Color("#3b82f6"),
	fg:        lipgloss.Color("#fafafa"),
	bg:        lipgloss.Color("#1a1a1a"),
	border:    lipgloss.Color("#404040"),
	muted:     lipgloss.Color("#737373"),
	surface:   lipgloss.Color("#262626"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:   lipgloss.Color("#cba6f7"),
	secondary: lipgloss.Color("#f5c2e7"),
	success:   lipgloss.Color("#a6e3a1"),
	warning:   lipgloss.Color("#f9e2af"),
	errc:      lipgloss.Color("#f38ba8"),
	info:      lipgloss.Color("#89dceb"),
	fg:        lipgloss.Color("#cdd6f4"),
	bg:        lipgloss.Color("#1e1e2e"),
	border:    lipgloss.Color("#45475a"),
	muted:     lipgloss.Color("#6c7086"),
	surface:   lipgloss.Color("#313244"),
})

var registry = map[string]Theme{
	"default":          Default,
	"catppuccin-mocha": CatppuccinMocha,
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return Default
}

// IsKnown reports whether name is a registered theme.
func IsKnown(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names lists the registered themes.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
