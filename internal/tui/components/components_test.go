package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	for i, line := range lines {
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Errorf("line %d has no ANSI codes, padding is unstyled: %q", i, line)
		}
		if got := lipgloss.Width(line); got != 44 {
			t.Errorf("line %d width = %d, want 44", i, got)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, total := range []int{80, 81, 119, 120} {
		for n := 1; n <= 5; n++ {
			sum := 0
			for _, w := range LayoutRow(total, n) {
				sum += w
			}
			if sum != total {
				t.Fatalf("LayoutRow(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Total Expense", Value: "$1,200.00"},
		{Label: "Top Category", Value: "Food", Note: "62.5% of spending"},
		{Label: "Transactions", Value: "5"},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if got := lipgloss.Width(line); got != 90 {
			t.Fatalf("line %d width = %d, want 90", i, got)
		}
	}
}

func TestTabVisualWidth(t *testing.T) {
	for i, tab := range Tabs {
		active := TabVisualWidth(tab, true)
		if active != len(tab.Name)+2 {
			t.Errorf("tab %d active width = %d, want %d", i, active, len(tab.Name)+2)
		}
		inactive := TabVisualWidth(tab, false)
		want := len(tab.Name) + 2
		if tab.KeyPos < 0 {
			want += 3
		}
		if inactive != want {
			t.Errorf("tab %d inactive width = %d, want %d", i, inactive, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('b'); got != TabBudget {
		t.Fatalf("TabIdxByKey('b') = %d, want %d", got, TabBudget)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestBudgetBarWidthAndLabel(t *testing.T) {
	c := model.Comparison{Category: "Food", Budget: 100, Actual: 150, Percentage: 150, Status: model.StatusOver}
	bar := BudgetBar(c, 30)

	if got := lipgloss.Width(bar); got != 30 {
		t.Fatalf("bar width = %d, want 30", got)
	}
	if !strings.Contains(bar, "150%") {
		t.Fatalf("bar should show the uncapped percentage: %q", bar)
	}
}

func TestShareBar(t *testing.T) {
	if got := lipgloss.Width(ShareBar(62.5, 20, theme.Active.Blue)); got != 20 {
		t.Fatalf("share bar width = %d, want 20", got)
	}
	if ShareBar(10, 0, theme.Active.Blue) != "" {
		t.Fatal("zero-width share bar should be empty")
	}
}

func TestFormatMoneyTick(t *testing.T) {
	tests := map[float64]string{
		0.5:     "$0.50",
		200:     "$200",
		1000:    "$1k",
		1500:    "$1.5k",
		2000000: "$2M",
	}
	for in, want := range tests {
		if got := formatMoneyTick(in); got != want {
			t.Errorf("formatMoneyTick(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, theme.Active.Accent, 10, 2)
	if strings.Contains(out, "\n") {
		t.Fatalf("tiny chart should be a single-line sparkline, got %q", out)
	}
	if BarChart(nil, nil, theme.Active.Accent, 80, 10) != "" {
		t.Fatal("empty chart should render nothing")
	}
}
