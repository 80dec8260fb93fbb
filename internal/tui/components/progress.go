package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// BudgetBar renders a comparison as a status-colored bar followed by its
// uncapped percentage. The bar itself never fills past 100%.
func BudgetBar(c model.Comparison, width int) string {
	t := theme.Active
	color := t.Status(c.Status)

	label := fmt.Sprintf("%d%%", c.Percentage)
	barW := max(width-lipgloss.Width(label)-1, 4)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return bar.ViewAs(float64(c.BarPercent())/100) + space + pctStyle.Render(label)
}

// ShareBar renders a horizontal bar of width cells filled to share percent.
func ShareBar(share float64, width int, color lipgloss.Color) string {
	t := theme.Active
	if width <= 0 {
		return ""
	}
	filled := int(share / 100 * float64(width))
	filled = min(max(filled, 0), width)

	filledStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.SurfaceBright).Background(t.Surface)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled))
}
