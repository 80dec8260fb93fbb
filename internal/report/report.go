// Package report derives dashboard and analytics view models from API data.
package report

import (
	"math"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/reconcile"
)

// DashboardRecentLimit is how many recent transactions the dashboard shows.
const DashboardRecentLimit = 5

// CategoryShare is one category's total and its share of all expenses.
type CategoryShare struct {
	Category     string  `json:"category" yaml:"category"`
	Total        float64 `json:"total" yaml:"total"`
	SharePercent float64 `json:"sharePercent" yaml:"share_percent"`
}

// DashboardView is the summary screen.
type DashboardView struct {
	TotalExpense float64             `json:"totalExpense" yaml:"total_expense"`
	TopCategory  *CategoryShare      `json:"topCategory,omitempty" yaml:"top_category,omitempty"`
	Categories   []CategoryShare     `json:"categories" yaml:"categories"`
	Recent       []model.Transaction `json:"recent" yaml:"recent"`
}

// Dashboard builds the summary view. Shares are relative to total and
// rounded to one decimal; they are zero when total is not positive.
func Dashboard(total float64, expenses []model.CategoryExpense, recent []model.Transaction) DashboardView {
	v := DashboardView{
		TotalExpense: total,
		Categories:   Shares(expenses, total),
		Recent:       recent,
	}
	if len(v.Recent) > DashboardRecentLimit {
		v.Recent = v.Recent[:DashboardRecentLimit]
	}
	if top, ok := reconcile.TopCategory(expenses); ok {
		share := CategoryShare{
			Category:     top.Category,
			Total:        top.Total,
			SharePercent: SharePercent(top.Total, total),
		}
		v.TopCategory = &share
	}
	return v
}

// Shares converts expenses to shares of total, preserving order.
func Shares(expenses []model.CategoryExpense, total float64) []CategoryShare {
	out := make([]CategoryShare, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, CategoryShare{
			Category:     e.Category,
			Total:        e.Total,
			SharePercent: SharePercent(e.Total, total),
		})
	}
	return out
}

// SharePercent returns part/total*100 rounded to one decimal.
func SharePercent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(part/total*1000) / 10
}

// AnalyticsView holds the monthly series and the category breakdown.
type AnalyticsView struct {
	Monthly    []model.MonthlyTotal `json:"monthly" yaml:"monthly"`
	Categories []CategoryShare      `json:"categories" yaml:"categories"`
	Peak       *model.MonthlyTotal  `json:"peak,omitempty" yaml:"peak,omitempty"`
}

// Analytics builds the analytics view. Category shares are relative to
// the sum of category totals.
func Analytics(monthly []model.MonthlyTotal, expenses []model.CategoryExpense) AnalyticsView {
	var sum float64
	for _, e := range expenses {
		sum += e.Total
	}
	v := AnalyticsView{
		Monthly:    monthly,
		Categories: Shares(expenses, sum),
	}
	for i := range monthly {
		if v.Peak == nil || monthly[i].Total > v.Peak.Total {
			p := monthly[i]
			v.Peak = &p
		}
	}
	return v
}

// Empty reports whether there is nothing to chart.
func (v AnalyticsView) Empty() bool {
	return len(v.Monthly) == 0 && len(v.Categories) == 0
}

// MonthlyValues returns the totals of the monthly series in order.
func (v AnalyticsView) MonthlyValues() []float64 {
	vals := make([]float64, len(v.Monthly))
	for i, m := range v.Monthly {
		vals[i] = m.Total
	}
	return vals
}

// MonthlyLabels returns the month labels of the monthly series in order.
func (v AnalyticsView) MonthlyLabels() []string {
	labels := make([]string, len(v.Monthly))
	for i, m := range v.Monthly {
		labels[i] = m.Month
	}
	return labels
}

// IncomeExpense splits transactions into income and expense totals.
func IncomeExpense(txs []model.Transaction) (income, expense float64) {
	for _, t := range txs {
		if t.IsIncome() {
			income += t.Amount
		} else {
			expense += t.Amount
		}
	}
	return income, expense
}
