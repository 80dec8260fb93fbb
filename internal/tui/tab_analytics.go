package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// noAnalyticsText is shown when neither series has data.
const noAnalyticsText = "No data available for analytics"

func (a App) renderAnalyticsTab(cw int) string {
	if s, ok := a.renderLoadState("Analytics", a.analytics.loaded, a.analytics.err, "load analytics", cw); ok {
		return s
	}
	t := theme.Active
	v := a.analytics.view
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if v.Empty() {
		return components.ContentCard("Analytics", muted.Render(noAnalyticsText), cw)
	}

	var b strings.Builder

	if len(v.Monthly) > 0 {
		var total float64
		for _, m := range v.Monthly {
			total += m.Total
		}
		metrics := []components.Metric{
			{Label: "Months Tracked", Value: cli.FormatNumber(int64(len(v.Monthly)))},
			{Label: "Total Spent", Value: cli.FormatMoney(total), Color: t.Red},
			{Label: "Monthly Average", Value: cli.FormatMoney(total / float64(len(v.Monthly)))},
		}
		if v.Peak != nil {
			metrics = append(metrics, components.Metric{
				Label: "Peak Month", Value: v.Peak.Month, Note: cli.FormatMoney(v.Peak.Total), Color: t.Orange,
			})
		}
		b.WriteString(components.MetricCardRow(metrics, cw))
		b.WriteString("\n")

		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		chart := components.BarChart(v.MonthlyValues(), v.MonthlyLabels(), t.Blue, components.CardInnerWidth(cw), chartH)
		b.WriteString(components.ContentCard("Monthly Spending", chart, cw))
		b.WriteString("\n")
	}

	if len(v.Categories) > 0 {
		maxTotal := 0.0
		for _, c := range v.Categories {
			maxTotal = max(maxTotal, c.Total)
		}
		inner := components.CardInnerWidth(cw)
		barW := max(inner-12-12-8, 6)
		value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		space := lipgloss.NewStyle().Background(t.Surface)

		lines := make([]string, 0, len(v.Categories))
		for _, c := range v.Categories {
			// Bars scale to the largest category so small shares stay visible.
			rel := 0.0
			if maxTotal > 0 {
				rel = c.Total / maxTotal * 100
			}
			lines = append(lines,
				muted.Render(fmt.Sprintf("%-11s ", cli.Truncate(c.Category, 11)))+
					components.ShareBar(rel, barW, t.Accent)+
					space.Render(" ")+
					value.Render(fmt.Sprintf("%11s", cli.FormatMoney(c.Total)))+
					muted.Render(fmt.Sprintf(" %6s", cli.FormatShare(c.SharePercent))))
		}
		b.WriteString(components.ContentCard("Category Breakdown", strings.Join(lines, "\n"), cw))
	}

	return b.String()
}
