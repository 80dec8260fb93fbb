package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/report"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderDashboardTab(cw int) string {
	if s, ok := a.renderLoadState("Dashboard", a.dash.loaded, a.dash.err, "load dashboard", cw); ok {
		return s
	}
	t := theme.Active
	v := a.dash.view
	var b strings.Builder

	top := components.Metric{Label: "Top Category", Value: "None"}
	if v.TopCategory != nil {
		top.Value = v.TopCategory.Category
		top.Note = cli.FormatShare(v.TopCategory.SharePercent) + " of spending"
		top.Color = t.Orange
	}
	income, expense := report.IncomeExpense(v.Recent)
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total Expense", Value: cli.FormatMoney(v.TotalExpense), Color: t.Red},
		top,
		{Label: "Recent Activity", Value: cli.FormatNumber(int64(len(v.Recent))),
			Note: fmt.Sprintf("+%s / -%s", cli.FormatMoney(income), cli.FormatMoney(expense))},
	}, cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Spending by Category", a.renderCategoryShares(v.Categories, cw), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Recent Transactions", a.renderRecentList(cw), cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Spending by Category", a.renderCategoryShares(v.Categories, halves[0]), halves[0]),
		components.ContentCard("Recent Transactions", a.renderRecentList(halves[1]), halves[1]),
	}))
	return b.String()
}

// renderCategoryShares lists categories with a share bar sized to the card.
func (a App) renderCategoryShares(shares []report.CategoryShare, cardW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(shares) == 0 {
		return muted.Render("No expenses recorded yet")
	}

	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)
	inner := components.CardInnerWidth(cardW)
	barW := max(inner-12-12-8, 6)

	lines := make([]string, 0, len(shares))
	for _, s := range shares {
		lines = append(lines,
			muted.Render(fmt.Sprintf("%-11s ", cli.Truncate(s.Category, 11)))+
				components.ShareBar(s.SharePercent, barW, t.Blue)+
				space.Render(" ")+
				value.Render(fmt.Sprintf("%11s", cli.FormatMoney(s.Total)))+
				muted.Render(fmt.Sprintf(" %6s", cli.FormatShare(s.SharePercent))))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderRecentList(cardW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	recent := a.dash.view.Recent
	if len(recent) == 0 {
		return muted.Render("No transactions yet")
	}

	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	descW := max(components.CardInnerWidth(cardW)-10-1-12-1, 8)

	lines := make([]string, 0, len(recent))
	for _, tx := range recent {
		amount := lipgloss.NewStyle().Foreground(t.Income(tx.IsIncome())).Background(t.Surface).
			Render(fmt.Sprintf("%12s", cli.FormatSignedMoney(tx.Amount, tx.IsIncome())))
		lines = append(lines,
			muted.Render(tx.Date.String()+" ")+
				text.Render(fmt.Sprintf("%-*s ", descW, cli.Truncate(tx.Description, descW)))+
				amount)
	}
	return strings.Join(lines, "\n")
}
