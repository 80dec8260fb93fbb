package model

import "strings"

// BudgetEntry is a spending ceiling for one category in one month.
type BudgetEntry struct {
	ID          string   `json:"_id" yaml:"id"`
	Category    Category `json:"category" yaml:"category"`
	Month       Month    `json:"month" yaml:"month"`
	TotalBudget float64  `json:"totalBudget" yaml:"total_budget"`
}

// CategoryExpense is the server-side sum of expenses for one category.
type CategoryExpense struct {
	Category string  `json:"category" yaml:"category"`
	Total    float64 `json:"total" yaml:"total"`
}

// OverBudgetFlag is the server's precomputed over-budget indicator.
type OverBudgetFlag struct {
	Category     string  `json:"category" yaml:"category"`
	TotalSpent   float64 `json:"totalSpent" yaml:"total_spent"`
	BudgetAmount float64 `json:"budgetAmount" yaml:"budget_amount"`
}

// Exceeded reports whether the flag describes real overspending against a
// non-zero budget.
func (f OverBudgetFlag) Exceeded() bool {
	return f.TotalSpent > f.BudgetAmount && f.BudgetAmount > 0
}

// BudgetInput is the body of add/edit budget requests.
type BudgetInput struct {
	Category    Category `json:"category" yaml:"category"`
	Month       Month    `json:"month" yaml:"month"`
	TotalBudget float64  `json:"totalBudget" yaml:"total_budget"`
}

// NewBudgetInput validates raw form values.
func NewBudgetInput(category, month, amount string) (BudgetInput, error) {
	if strings.TrimSpace(category) == "" || strings.TrimSpace(month) == "" || strings.TrimSpace(amount) == "" {
		return BudgetInput{}, &ValidationError{Message: MsgAllFieldsRequired}
	}
	c, err := ParseCategory(category)
	if err != nil {
		return BudgetInput{}, err
	}
	m, err := ParseMonth(month)
	if err != nil {
		return BudgetInput{}, err
	}
	total, err := ParseAmount(amount, MsgBudgetAmountPositive)
	if err != nil {
		return BudgetInput{}, err
	}
	return BudgetInput{Category: c, Month: m, TotalBudget: total}, nil
}

// Validate checks an already-typed input.
func (in BudgetInput) Validate() error {
	if in.Category == "" || in.Month == "" {
		return &ValidationError{Message: MsgAllFieldsRequired}
	}
	if !in.Category.Valid() {
		return &ValidationError{Field: "category", Message: "Unknown category " + string(in.Category)}
	}
	if !in.Month.Valid() {
		return &ValidationError{Field: "month", Message: "Unknown month " + string(in.Month)}
	}
	if in.TotalBudget <= 0 {
		return &ValidationError{Field: "totalBudget", Message: MsgBudgetAmountPositive}
	}
	return nil
}

// InputFor returns the editable fields of an existing entry.
func (b BudgetEntry) InputFor() BudgetInput {
	return BudgetInput{Category: b.Category, Month: b.Month, TotalBudget: b.TotalBudget}
}
