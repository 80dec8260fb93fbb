package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/reconcile"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderBudgetTab(cw int) string {
	title := "Budget · " + a.budget.month.String()
	if s, ok := a.renderLoadState(title, a.budget.loaded, a.budget.err, "load budget data", cw); ok {
		return s
	}
	t := theme.Active
	v := a.budget.view
	var b strings.Builder

	budgeted, spent := v.Totals()
	counts := v.CountByStatus()
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Budgeted", Value: cli.FormatMoney(budgeted)},
		{Label: "Spent", Value: cli.FormatMoney(spent), Note: cli.FormatRemaining(budgeted - spent)},
		{Label: "On Track", Value: fmt.Sprint(counts[model.StatusGood]), Color: t.Status(model.StatusGood)},
		{Label: "Warning", Value: fmt.Sprint(counts[model.StatusWarning]), Color: t.Status(model.StatusWarning)},
		{Label: "Over", Value: fmt.Sprint(counts[model.StatusOver]), Color: t.Status(model.StatusOver)},
	}, cw))
	b.WriteString("\n")

	if len(v.Comparisons) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard("Budget vs Actual",
			muted.Render(fmt.Sprintf("No budgets for %s. Press n to add one.", v.Month)), cw))
	} else {
		b.WriteString(a.renderComparisonCards(v.Comparisons, cw))
	}
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Insights", renderInsights(v), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("All Budgets", a.renderBudgetList(cw), cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Insights", renderInsights(v), halves[0]),
		components.ContentCard("All Budgets", a.renderBudgetList(halves[1]), halves[1]),
	}))
	return b.String()
}

// renderComparisonCards lays out one card per comparison, several per row.
func (a App) renderComparisonCards(comparisons []model.Comparison, cw int) string {
	t := theme.Active
	perRow := 3
	if a.isCompactLayout() {
		perRow = 2
	}

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var rows []string
	for start := 0; start < len(comparisons); start += perRow {
		chunk := comparisons[start:min(start+perRow, len(comparisons))]
		widths := components.LayoutRow(cw, perRow)
		cards := make([]string, len(chunk))
		for i, c := range chunk {
			inner := components.CardInnerWidth(widths[i])
			status := lipgloss.NewStyle().Foreground(t.Status(c.Status)).Background(t.Surface)
			body := value.Render(cli.FormatMoney(c.Actual)) + muted.Render(" of "+cli.FormatMoney(c.Budget)) + "\n" +
				components.BudgetBar(c, inner) + "\n" +
				status.Render(cli.FormatRemaining(c.Remaining()))
			title := string(c.Category)
			if c.Over() {
				title += " ⚠"
			}
			cards[i] = components.ContentCard(title, body, widths[i])
		}
		rows = append(rows, components.CardRow(cards))
	}
	return strings.Join(rows, "\n")
}

// renderInsights lists the insights, or the fallback line when none apply.
func renderInsights(v reconcile.View) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if !v.HasInsights() {
		return muted.Render(reconcile.FallbackInsight)
	}

	lines := make([]string, 0, len(v.Insights)*2)
	for _, in := range v.Insights {
		title := lipgloss.NewStyle().Foreground(t.Insight(in.Type)).Background(t.Surface).Bold(true)
		lines = append(lines, title.Render(insightIcon(in.Type)+" "+in.Title), muted.Render("  "+in.Description))
	}
	return strings.Join(lines, "\n")
}

func insightIcon(k model.InsightType) string {
	switch k {
	case model.InsightWarning:
		return "!"
	case model.InsightSuccess:
		return "✓"
	default:
		return "i"
	}
}

// renderBudgetList shows every budget entry. Entries for other months are
// dimmed; the cursor row is highlighted.
func (a App) renderBudgetList(cardW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	budgets := a.budget.view.Budgets
	if len(budgets) == 0 {
		return muted.Render("No budgets yet. Press n to add one.")
	}

	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	other := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selected := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	inner := components.CardInnerWidth(cardW)
	catW := max(inner-10-1-12, 8)

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-*s %-10s%12s", catW, "Category", "Month", "Amount")))
	for i, e := range budgets {
		style := row
		switch {
		case i == a.budget.cursor:
			style = selected
		case e.Month != a.budget.month:
			style = other
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%-*s %-10s%12s",
			catW, cli.Truncate(string(e.Category), catW), e.Month, cli.FormatMoney(e.TotalBudget))))
	}
	b.WriteString("\n")
	b.WriteString(muted.Render("[n] new  [e] edit  [D] delete  [ ] month"))
	return b.String()
}
