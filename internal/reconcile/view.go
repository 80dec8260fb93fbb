package reconcile

import (
	"time"

	"github.com/theirongolddev/fintrack/internal/model"
)

// Inputs are the three server collections the engine consumes.
type Inputs struct {
	Budgets  []model.BudgetEntry     `json:"budgets"`
	Expenses []model.CategoryExpense `json:"expenses"`
	Flags    []model.OverBudgetFlag  `json:"overBudget"`
}

// View is a freshly reconciled budget screen for one month.
type View struct {
	Month       model.Month         `json:"month" yaml:"month"`
	Comparisons []model.Comparison  `json:"comparisons" yaml:"comparisons"`
	Insights    []model.Insight     `json:"insights" yaml:"insights"`
	Budgets     []model.BudgetEntry `json:"budgets" yaml:"budgets"`
	BuiltAt     time.Time           `json:"builtAt" yaml:"built_at"`
}

// Build reconciles in for month. The Budgets field keeps every budget, not
// only the selected month's, so the list view can show them all.
func Build(in Inputs, month model.Month) View {
	comparisons, insights := Reconcile(in.Budgets, in.Expenses, in.Flags, month)
	return View{
		Month:       month,
		Comparisons: comparisons,
		Insights:    insights,
		Budgets:     in.Budgets,
		BuiltAt:     time.Now(),
	}
}

// Totals sums budget and actual over the comparisons.
func (v View) Totals() (budget, actual float64) {
	for _, c := range v.Comparisons {
		budget += c.Budget
		actual += c.Actual
	}
	return budget, actual
}

// CountByStatus tallies comparisons per status.
func (v View) CountByStatus() map[model.Status]int {
	counts := make(map[model.Status]int, 3)
	for _, c := range v.Comparisons {
		counts[c.Status]++
	}
	return counts
}

// MonthBudgets returns the budgets of the view's month in input order.
func (v View) MonthBudgets() []model.BudgetEntry {
	var out []model.BudgetEntry
	for _, b := range v.Budgets {
		if b.Month == v.Month {
			out = append(out, b)
		}
	}
	return out
}

// HasInsights reports whether anything other than the fallback should show.
func (v View) HasInsights() bool { return len(v.Insights) > 0 }
