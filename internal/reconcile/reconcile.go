// Package reconcile joins budgets to actual spending and derives insights.
// Every function here is pure: no I/O, no shared state.
package reconcile

import (
	"fmt"
	"math"

	"github.com/theirongolddev/fintrack/internal/model"
)

// Classification thresholds, in percent of budget. Both are strict.
const (
	WarningThreshold = 80
	OverThreshold    = 100
)

// FallbackInsight is shown when no insight applies.
const FallbackInsight = "Add some budgets and transactions to see spending insights!"

// Reconcile filters budgets to month, compares them with expenses and
// generates insights.
func Reconcile(
	budgets []model.BudgetEntry,
	expenses []model.CategoryExpense,
	flags []model.OverBudgetFlag,
	month model.Month,
) ([]model.Comparison, []model.Insight) {
	comparisons := Compare(budgets, expenses, month)
	return comparisons, GenerateInsights(comparisons, expenses, flags)
}

// Compare builds one comparison per budget in month, preserving input order.
// Expenses are not filtered by month.
func Compare(budgets []model.BudgetEntry, expenses []model.CategoryExpense, month model.Month) []model.Comparison {
	out := make([]model.Comparison, 0, len(budgets))
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		actual := actualFor(expenses, string(b.Category))
		pct := Percentage(actual, b.TotalBudget)
		out = append(out, model.Comparison{
			Category:   b.Category,
			Budget:     b.TotalBudget,
			Actual:     actual,
			Percentage: pct,
			Status:     Classify(pct),
		})
	}
	return out
}

// actualFor is a linear scan; the category set is small and fixed.
func actualFor(expenses []model.CategoryExpense, category string) float64 {
	for _, e := range expenses {
		if e.Category == category {
			return e.Total
		}
	}
	return 0
}

// Percentage returns round(actual/budget*100), or 0 when budget is not positive.
func Percentage(actual, budget float64) int {
	if budget <= 0 {
		return 0
	}
	p := actual / budget * 100
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return int(math.Round(p))
}

// Classify maps a percentage to a status.
func Classify(pct int) model.Status {
	switch {
	case pct > OverThreshold:
		return model.StatusOver
	case pct > WarningThreshold:
		return model.StatusWarning
	default:
		return model.StatusGood
	}
}

// GenerateInsights emits, in order and at most once each: an over-budget
// warning from the server flags, a success count of good comparisons, and the
// top spending category.
//
// The over-budget count comes from flags, not comparisons. The two can cover
// different months and are deliberately not reconciled with each other.
func GenerateInsights(comparisons []model.Comparison, expenses []model.CategoryExpense, flags []model.OverBudgetFlag) []model.Insight {
	var insights []model.Insight

	over := 0
	for _, f := range flags {
		if f.Exceeded() {
			over++
		}
	}
	if over > 0 {
		insights = append(insights, model.Insight{
			Type:        model.InsightWarning,
			Title:       "Over Budget Alert",
			Description: fmt.Sprintf("You're over budget in %d %s this month", over, Pluralize(over, "category", "categories")),
		})
	}

	good := 0
	for _, c := range comparisons {
		if c.Status == model.StatusGood {
			good++
		}
	}
	if good > 0 {
		insights = append(insights, model.Insight{
			Type:        model.InsightSuccess,
			Title:       "Great Job!",
			Description: fmt.Sprintf("You're staying within budget for %d %s", good, Pluralize(good, "category", "categories")),
		})
	}

	if top, ok := TopCategory(expenses); ok {
		insights = append(insights, model.Insight{
			Type:        model.InsightInfo,
			Title:       "Top Spending Category",
			Description: fmt.Sprintf("%s accounts for $%.2f of your expenses", top.Category, top.Total),
		})
	}

	return insights
}

// TopCategory returns the expense with the largest total. Ties go to the
// first one encountered.
func TopCategory(expenses []model.CategoryExpense) (model.CategoryExpense, bool) {
	if len(expenses) == 0 {
		return model.CategoryExpense{}, false
	}
	top := expenses[0]
	for _, e := range expenses[1:] {
		if e.Total > top.Total {
			top = e
		}
	}
	return top, true
}

// Pluralize picks singular when n is exactly one.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
