package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/fintrack/internal/api"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/reconcile"
	"github.com/theirongolddev/fintrack/internal/report"
)

// Backend is the subset of the API client the TUI drives.
type Backend interface {
	FetchDashboard(ctx context.Context) (report.DashboardView, error)
	FetchAnalytics(ctx context.Context) (report.AnalyticsView, error)
	FetchBudgetInputs(ctx context.Context) (reconcile.Inputs, error)
	RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error)

	AddBudget(ctx context.Context, in model.BudgetInput) error
	EditBudget(ctx context.Context, id string, in model.BudgetInput) error
	DeleteBudget(ctx context.Context, id string) error
	AddTransaction(ctx context.Context, in model.TransactionInput) error
	EditTransaction(ctx context.Context, id string, in model.TransactionInput) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

var _ Backend = (*api.Client)(nil)

// fetchTimeout bounds one load command, covering all of its concurrent requests.
const fetchTimeout = 30 * time.Second

// DashboardLoadedMsg carries the summary screen data.
type DashboardLoadedMsg struct {
	View report.DashboardView
	Err  error
}

// TransactionsLoadedMsg carries the recent transaction list.
type TransactionsLoadedMsg struct {
	Transactions []model.Transaction
	Err          error
}

// AnalyticsLoadedMsg carries the analytics screen data.
type AnalyticsLoadedMsg struct {
	View report.AnalyticsView
	Err  error
}

// BudgetLoadedMsg carries a reconciled view for Month. It is dropped when
// Month is no longer the selected month.
type BudgetLoadedMsg struct {
	Month model.Month
	View  reconcile.View
	Err   error
}

// MutationDoneMsg reports the outcome of an add, edit or delete.
type MutationDoneMsg struct {
	Action  string // completes "Failed to ..."
	Success string // toast on success
	Err     error
}

func loadDashboardCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		v, err := b.FetchDashboard(ctx)
		return DashboardLoadedMsg{View: v, Err: err}
	}
}

func loadTransactionsCmd(b Backend, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		txs, err := b.RecentTransactions(ctx, limit)
		return TransactionsLoadedMsg{Transactions: txs, Err: err}
	}
}

func loadAnalyticsCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		v, err := b.FetchAnalytics(ctx)
		return AnalyticsLoadedMsg{View: v, Err: err}
	}
}

// loadBudgetCmd fetches the three budget inputs and reconciles them for
// month. Nothing is reconciled unless all three fetches succeed.
func loadBudgetCmd(b Backend, month model.Month) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		in, err := b.FetchBudgetInputs(ctx)
		if err != nil {
			return BudgetLoadedMsg{Month: month, Err: err}
		}
		return BudgetLoadedMsg{Month: month, View: reconcile.Build(in, month)}
	}
}

func mutateCmd(action, success string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return MutationDoneMsg{Action: action, Success: success, Err: fn(ctx)}
	}
}
