package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

func budget(cat model.Category, month model.Month, total float64) model.BudgetEntry {
	return model.BudgetEntry{ID: string(cat) + "-" + string(month), Category: cat, Month: month, TotalBudget: total}
}

func TestCompareExamples(t *testing.T) {
	tests := []struct {
		name    string
		spent   float64
		budget  float64
		wantPct int
		want    model.Status
	}{
		{"over", 250, 200, 125, model.StatusOver},
		{"good", 150, 200, 75, model.StatusGood},
		{"warning", 90, 100, 90, model.StatusWarning},
		{"exactly full is warning", 100, 100, 100, model.StatusWarning},
		{"exactly eighty is good", 80, 100, 80, model.StatusGood},
		{"rounds half up", 1, 8, 13, model.StatusGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(
				[]model.BudgetEntry{budget(model.CategoryFood, "June", tt.budget)},
				[]model.CategoryExpense{{Category: "Food", Total: tt.spent}},
				"June",
			)
			require.Len(t, got, 1)
			assert.Equal(t, model.Comparison{
				Category:   model.CategoryFood,
				Budget:     tt.budget,
				Actual:     tt.spent,
				Percentage: tt.wantPct,
				Status:     tt.want,
			}, got[0])
		})
	}
}

func TestCompareZeroBudget(t *testing.T) {
	got := Compare(
		[]model.BudgetEntry{budget(model.CategoryRent, "May", 0)},
		[]model.CategoryExpense{{Category: "Rent", Total: 900}},
		"May",
	)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Percentage)
	assert.Equal(t, model.StatusGood, got[0].Status)
}

func TestCompareMissingExpenseIsZero(t *testing.T) {
	got := Compare([]model.BudgetEntry{budget(model.CategoryTravel, "May", 300)}, nil, "May")
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Actual)
	assert.Equal(t, 0, got[0].Percentage)
	assert.Equal(t, model.StatusGood, got[0].Status)
}

func TestCompareFiltersByMonthAndKeepsOrder(t *testing.T) {
	budgets := []model.BudgetEntry{
		budget(model.CategoryShopping, "June", 100),
		budget(model.CategoryFood, "May", 100),
		budget(model.CategoryBills, "June", 50),
		budget(model.CategoryFood, "June", 200),
	}
	expenses := []model.CategoryExpense{
		{Category: "Food", Total: 10},
		{Category: "Bills", Total: 60},
		{Category: "Other", Total: 5},
	}

	got := Compare(budgets, expenses, "June")
	require.Len(t, got, 3)
	assert.Equal(t, model.CategoryShopping, got[0].Category)
	assert.Equal(t, model.CategoryBills, got[1].Category)
	assert.Equal(t, model.CategoryFood, got[2].Category)
	assert.Equal(t, model.StatusOver, got[1].Status)

	assert.Empty(t, Compare(budgets, expenses, "January"))
}

func TestReconcileEmpty(t *testing.T) {
	comparisons, insights := Reconcile(nil, nil, nil, "June")
	assert.Empty(t, comparisons)
	assert.Empty(t, insights)
}

func TestClassifyIsTotalOverPercentages(t *testing.T) {
	for p := -10; p <= 300; p++ {
		got := Classify(p)
		switch {
		case p > 100:
			assert.Equal(t, model.StatusOver, got, "p=%d", p)
		case p > 80:
			assert.Equal(t, model.StatusWarning, got, "p=%d", p)
		default:
			assert.Equal(t, model.StatusGood, got, "p=%d", p)
		}
	}
}

func TestPercentageNeverNaN(t *testing.T) {
	assert.Equal(t, 0, Percentage(10, 0))
	assert.Equal(t, 0, Percentage(10, -5))
	assert.Equal(t, 0, Percentage(0, 100))
	assert.Equal(t, 50, Percentage(0.5, 1))
}

func TestGenerateInsightsOrderAndText(t *testing.T) {
	comparisons := []model.Comparison{
		{Category: model.CategoryFood, Status: model.StatusGood},
		{Category: model.CategoryRent, Status: model.StatusOver},
		{Category: model.CategoryBills, Status: model.StatusGood},
	}
	expenses := []model.CategoryExpense{
		{Category: "Food", Total: 120.5},
		{Category: "Rent", Total: 900},
	}
	flags := []model.OverBudgetFlag{
		{Category: "Rent", TotalSpent: 900, BudgetAmount: 800},
		{Category: "Travel", TotalSpent: 10, BudgetAmount: 0},
		{Category: "Food", TotalSpent: 50, BudgetAmount: 100},
	}

	got := GenerateInsights(comparisons, expenses, flags)
	require.Len(t, got, 3)

	assert.Equal(t, model.Insight{
		Type:        model.InsightWarning,
		Title:       "Over Budget Alert",
		Description: "You're over budget in 1 category this month",
	}, got[0])
	assert.Equal(t, model.Insight{
		Type:        model.InsightSuccess,
		Title:       "Great Job!",
		Description: "You're staying within budget for 2 categories",
	}, got[1])
	assert.Equal(t, model.Insight{
		Type:        model.InsightInfo,
		Title:       "Top Spending Category",
		Description: "Rent accounts for $900.00 of your expenses",
	}, got[2])
}

func TestGenerateInsightsPluralOverBudget(t *testing.T) {
	flags := []model.OverBudgetFlag{
		{Category: "Rent", TotalSpent: 900, BudgetAmount: 800},
		{Category: "Food", TotalSpent: 300, BudgetAmount: 200},
	}
	got := GenerateInsights(nil, nil, flags)
	require.Len(t, got, 1)
	assert.Equal(t, "You're over budget in 2 categories this month", got[0].Description)
}

func TestGenerateInsightsUsesFlagsNotComparisons(t *testing.T) {
	// An over comparison with no server flag produces no warning.
	comparisons := []model.Comparison{{Category: model.CategoryFood, Status: model.StatusOver}}
	assert.Empty(t, GenerateInsights(comparisons, nil, nil))

	// A flag for a category absent from comparisons still warns.
	flags := []model.OverBudgetFlag{{Category: "Travel", TotalSpent: 20, BudgetAmount: 10}}
	got := GenerateInsights(nil, nil, flags)
	require.Len(t, got, 1)
	assert.Equal(t, model.InsightWarning, got[0].Type)
}

func TestGenerateInsightsSingularGood(t *testing.T) {
	got := GenerateInsights([]model.Comparison{{Status: model.StatusGood}}, nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "You're staying within budget for 1 category", got[0].Description)
}

func TestTopCategoryTieGoesToFirst(t *testing.T) {
	top, ok := TopCategory([]model.CategoryExpense{
		{Category: "A", Total: 100},
		{Category: "B", Total: 100},
	})
	require.True(t, ok)
	assert.Equal(t, "A", top.Category)

	_, ok = TopCategory(nil)
	assert.False(t, ok)

	got := GenerateInsights(nil, []model.CategoryExpense{{Category: "A", Total: 100}, {Category: "B", Total: 100}}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "A accounts for $100.00 of your expenses", got[0].Description)
}

func TestInsightsAtMostThree(t *testing.T) {
	comparisons := make([]model.Comparison, 10)
	for i := range comparisons {
		comparisons[i].Status = model.StatusGood
	}
	flags := make([]model.OverBudgetFlag, 10)
	for i := range flags {
		flags[i] = model.OverBudgetFlag{TotalSpent: 2, BudgetAmount: 1}
	}
	expenses := []model.CategoryExpense{{Category: "Food", Total: 1}, {Category: "Rent", Total: 2}}
	assert.Len(t, GenerateInsights(comparisons, expenses, flags), 3)
}

func TestBuildView(t *testing.T) {
	in := Inputs{
		Budgets: []model.BudgetEntry{
			budget(model.CategoryFood, "June", 200),
			budget(model.CategoryRent, "July", 1000),
		},
		Expenses: []model.CategoryExpense{{Category: "Food", Total: 250}},
	}
	v := Build(in, "June")
	assert.Equal(t, model.Month("June"), v.Month)
	require.Len(t, v.Comparisons, 1)
	assert.Len(t, v.Budgets, 2)
	require.Len(t, v.MonthBudgets(), 1)
	assert.Equal(t, model.CategoryFood, v.MonthBudgets()[0].Category)
	assert.Equal(t, 1, v.CountByStatus()[model.StatusOver])

	b, a := v.Totals()
	assert.Equal(t, 200.0, b)
	assert.Equal(t, 250.0, a)
	assert.True(t, v.HasInsights())

	empty := Build(Inputs{}, "June")
	assert.False(t, empty.HasInsights())
}
