package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/reconcile"
	"github.com/theirongolddev/fintrack/internal/report"
)

// FetchBudgetInputs loads budgets, category totals and over-budget flags
// concurrently. Any failure cancels the others and no data is returned.
func (c *Client) FetchBudgetInputs(ctx context.Context) (reconcile.Inputs, error) {
	var in reconcile.Inputs
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		in.Budgets, err = c.ListBudgets(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Expenses, err = c.CategoryWiseExpense(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Flags, err = c.OverBudgetCategories(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return reconcile.Inputs{}, err
	}
	return in, nil
}

// FetchBudgetView fetches the inputs and reconciles them for month.
func (c *Client) FetchBudgetView(ctx context.Context, month model.Month) (reconcile.View, error) {
	in, err := c.FetchBudgetInputs(ctx)
	if err != nil {
		return reconcile.View{}, err
	}
	return reconcile.Build(in, month), nil
}

// FetchDashboard loads total expense, category totals and the newest
// transactions concurrently, all or nothing.
func (c *Client) FetchDashboard(ctx context.Context) (report.DashboardView, error) {
	var (
		total    float64
		expenses []model.CategoryExpense
		recent   []model.Transaction
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		total, err = c.TotalExpense(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = c.CategoryWiseExpense(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = c.RecentTransactions(ctx, report.DashboardRecentLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.DashboardView{}, err
	}
	return report.Dashboard(total, expenses, recent), nil
}

// FetchAnalytics loads the monthly series and category totals concurrently,
// all or nothing.
func (c *Client) FetchAnalytics(ctx context.Context) (report.AnalyticsView, error) {
	var (
		monthly  []model.MonthlyTotal
		expenses []model.CategoryExpense
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		monthly, err = c.MonthlyTransactions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = c.CategoryWiseExpense(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.AnalyticsView{}, err
	}
	return report.Analytics(monthly, expenses), nil
}
