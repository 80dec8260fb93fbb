package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// ToastKind selects the toast color.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast is a transient status-bar message.
type Toast struct {
	Text string
	Kind ToastKind
}

// StatusInfo is everything the status bar shows besides key hints.
type StatusInfo struct {
	Toast       *Toast
	Refreshing  bool
	AutoRefresh bool
	DataAge     string
}

// RenderStatusBar renders the bottom status bar. A toast replaces the key
// hints while it is visible.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	left := base.Render(" [?]help  [r]efresh  [q]uit")
	if info.Toast != nil && info.Toast.Text != "" {
		color := t.Green
		icon := "✓ "
		if info.Toast.Kind == ToastError {
			color, icon = t.Red, "✗ "
		}
		left = lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).
			Render(" " + icon + info.Toast.Text)
	}

	var right []string
	if info.Refreshing {
		right = append(right, accent.Render("↻ refreshing"))
	} else if info.AutoRefresh {
		right = append(right, accent.Render("auto"))
	}
	if info.DataAge != "" {
		right = append(right, base.Render("Updated "+info.DataAge))
	}
	rightStr := strings.Join(right, base.Render("  ")) + base.Render(" ")

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(rightStr), 0)
	bar := left + base.Render(strings.Repeat(" ", padding)) + rightStr

	return lipgloss.NewStyle().Background(t.Surface).MaxWidth(width).Render(bar)
}
