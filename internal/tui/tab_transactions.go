package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// Transactions view modes. Split is the zero value so it is the default.
const (
	txViewSplit = iota
	txViewDetail
)

type transactionsState struct {
	items    []model.Transaction
	loaded   bool
	err      error
	cursor   int
	viewMode int
}

func (s *transactionsState) move(delta int) {
	s.cursor = min(max(s.cursor+delta, 0), max(len(s.items)-1, 0))
}

func (s *transactionsState) clamp() {
	s.move(0)
}

func (s transactionsState) selected() (model.Transaction, bool) {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return model.Transaction{}, false
	}
	return s.items[s.cursor], true
}

func (a App) updateTransactionsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.txs.move(1)
	case "k", "up":
		a.txs.move(-1)
	case "g":
		a.txs.cursor = 0
	case "G":
		a.txs.cursor = max(len(a.txs.items)-1, 0)
	case "enter":
		if a.txs.viewMode == txViewSplit {
			a.txs.viewMode = txViewDetail
		} else {
			a.txs.viewMode = txViewSplit
		}
	case "esc":
		a.txs.viewMode = txViewSplit
	case "n":
		m, cmd := a.openAddTransaction()
		return m, cmd, true
	case "e":
		if tx, ok := a.txs.selected(); ok {
			m, cmd := a.openEditTransaction(tx)
			return m, cmd, true
		}
	case "D", "delete":
		if tx, ok := a.txs.selected(); ok {
			m, cmd := a.openDeleteTransaction(tx)
			return m, cmd, true
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderTransactionsTab(cw, h int) string {
	if s, ok := a.renderLoadState("Transactions", a.txs.loaded, a.txs.err, "load transactions", cw); ok {
		return s
	}
	t := theme.Active
	if len(a.txs.items) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No transactions yet. Press n to add one.")
		return components.ContentCard("Transactions", hint, cw)
	}

	sel, _ := a.txs.selected()
	if a.txs.viewMode == txViewDetail {
		return components.FocusCard("Transaction", a.renderTransactionDetail(sel, cw), cw)
	}
	if a.isCompactLayout() {
		return components.ContentCard(a.transactionsTitle(), a.renderTransactionList(cw, h), cw)
	}

	leftW := max(cw*3/5, 50)
	rightW := cw - leftW
	return components.CardRow([]string{
		components.ContentCard(a.transactionsTitle(), a.renderTransactionList(leftW, h), leftW),
		components.ContentCard("Details", a.renderTransactionDetail(sel, rightW), rightW),
	})
}

func (a App) transactionsTitle() string {
	return fmt.Sprintf("Transactions [%d]", len(a.txs.items))
}

// renderTransactionList renders the rows that fit in h, scrolled so the
// cursor stays visible.
func (a App) renderTransactionList(cardW, h int) string {
	t := theme.Active
	s := a.txs

	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selected := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	inner := components.CardInnerWidth(cardW)
	descW := max(inner-10-1-9-1-12-1, 8)

	visible := max(h-6, 3) // border, title, header, footer hint
	offset := 0
	if s.cursor >= visible {
		offset = s.cursor - visible + 1
	}
	end := min(offset+visible, len(s.items))

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-10s %-*s %-9s %12s", "Date", descW, "Description", "Category", "Amount")))
	b.WriteString("\n")
	for i := offset; i < end; i++ {
		tx := s.items[i]
		style := row
		if i == s.cursor {
			style = selected
		}
		line := fmt.Sprintf("%-10s %-*s %-9s ",
			tx.Date.String(),
			descW, cli.Truncate(tx.Description, descW),
			cli.Truncate(string(tx.Category), 9))
		amount := lipgloss.NewStyle().Foreground(t.Income(tx.IsIncome())).Background(style.GetBackground()).
			Render(fmt.Sprintf("%12s", cli.FormatSignedMoney(tx.Amount, tx.IsIncome())))
		b.WriteString(style.Render(line) + amount)
		b.WriteString("\n")
	}
	b.WriteString(muted.Render("[n] new  [e] edit  [D] delete  [Enter] details"))
	return b.String()
}

func (a App) renderTransactionDetail(tx model.Transaction, cardW int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	typ := tx.Type
	if typ == "" {
		typ = model.TypeExpense
	}
	amount := lipgloss.NewStyle().Foreground(t.Income(tx.IsIncome())).Background(t.Surface).Bold(true).
		Render(cli.FormatSignedMoney(tx.Amount, tx.IsIncome()))

	fields := []struct{ k, v string }{
		{"Description", value.Render(tx.Description)},
		{"Amount", amount},
		{"Date", value.Render(tx.Date.String())},
		{"Category", value.Render(string(tx.Category))},
		{"Type", value.Render(string(typ))},
		{"ID", muted.Render(tx.ID)},
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(label.Render(fmt.Sprintf("%-12s ", f.k+":")))
		b.WriteString(f.v)
		b.WriteString("\n")
	}
	b.WriteString(muted.Render(strings.Repeat("─", components.CardInnerWidth(cardW))))
	return b.String()
}
