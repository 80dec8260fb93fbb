package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{1234.5, "$1,234.50"},
		{1000000, "$1,000,000.00"},
		{-20, "-$20.00"},
		{0.125, "$0.13"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in), "FormatMoney(%v)", tt.in)
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "Remaining: $50.00", FormatRemaining(50))
	assert.Equal(t, "Remaining: $0.00", FormatRemaining(0))
	assert.Equal(t, "Over by $20.00", FormatRemaining(-20))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
	assert.Equal(t, "120%", FormatPercent(120))
	assert.Equal(t, "75.0%", FormatShare(75))
	assert.Equal(t, "+$10.00", FormatSignedMoney(10, true))
	assert.Equal(t, "-$10.00", FormatSignedMoney(10, false))
	assert.Equal(t, "Groc…", Truncate("Groceries", 5))
	assert.Equal(t, "Rent", Truncate("Rent", 5))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Budgets",
		Headers: []string{"Category", "Budget"},
		Rows: [][]string{
			{"Food", "$500.00"},
			{"---"},
			{"Total", "$500.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "Budgets")
	assert.True(t, strings.HasPrefix(lines[1], "╭"))
	assert.Contains(t, lines[2], "Category")
	assert.Contains(t, lines[4], "Food")
	assert.True(t, strings.HasPrefix(lines[5], "├"))
	assert.True(t, strings.HasPrefix(lines[7], "╰"))

	for _, l := range lines[1:] {
		assert.Equal(t, lipgloss.Width(lines[1]), lipgloss.Width(l), "ragged row %q", l)
	}
}

func TestRenderBudgetBarCaps(t *testing.T) {
	bar := RenderBudgetBar(model.Comparison{Percentage: 150, Status: model.StatusOver}, 10)
	assert.Equal(t, strings.Repeat("█", 10)+" 150%", bar)

	bar = RenderBudgetBar(model.Comparison{Percentage: 50, Status: model.StatusGood}, 10)
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5)+" 50%", bar)
}

func TestEncode(t *testing.T) {
	v := model.Comparison{Category: "Food", Budget: 500, Actual: 450, Percentage: 90, Status: model.StatusWarning}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, v))
	assert.Contains(t, buf.String(), `"percentage": 90`)

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatYAML, v))
	assert.Contains(t, buf.String(), "status: warning")

	assert.Error(t, Encode(&buf, FormatTable, v))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	f, err = ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
