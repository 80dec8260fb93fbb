package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/theirongolddev/fintrack/internal/model"
)

const (
	pathGetBudgets     = "/api/budget/getBudgets"
	pathOverBudget     = "/api/budget/overBudgetCategories"
	pathAddBudget      = "/api/budget/addBudget"
	pathEditBudget     = "/api/budget/editBudget/"
	pathDeleteBudget   = "/api/budget/deleteBudget/"
	pathCategoryTotals = "/api/transaction/categoryWiseExpense"
)

// ListBudgets returns every budget entry, all months.
func (c *Client) ListBudgets(ctx context.Context) ([]model.BudgetEntry, error) {
	var out []model.BudgetEntry
	if err := c.get(ctx, pathGetBudgets, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OverBudgetCategories returns the server's over-budget flags.
func (c *Client) OverBudgetCategories(ctx context.Context) ([]model.OverBudgetFlag, error) {
	var out []model.OverBudgetFlag
	if err := c.get(ctx, pathOverBudget, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryWiseExpense returns per-category expense totals.
func (c *Client) CategoryWiseExpense(ctx context.Context) ([]model.CategoryExpense, error) {
	var out []model.CategoryExpense
	if err := c.get(ctx, pathCategoryTotals, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddBudget creates a budget entry after validating in.
func (c *Client) AddBudget(ctx context.Context, in model.BudgetInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, pathAddBudget, in, nil)
}

// EditBudget replaces the fields of budget id.
func (c *Client) EditBudget(ctx context.Context, id string, in model.BudgetInput) error {
	if id == "" {
		return &model.ValidationError{Field: "id", Message: "Budget id is required"}
	}
	if err := in.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, pathEditBudget+url.PathEscape(id), in, nil)
}

// DeleteBudget removes budget id.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	if id == "" {
		return &model.ValidationError{Field: "id", Message: "Budget id is required"}
	}
	return c.do(ctx, http.MethodDelete, pathDeleteBudget+url.PathEscape(id), nil, nil)
}
