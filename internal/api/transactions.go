package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/theirongolddev/fintrack/internal/model"
)

const (
	pathAddTransaction    = "/api/transaction/addTransaction"
	pathEditTransaction   = "/api/transaction/editTransaction/"
	pathDeleteTransaction = "/api/transaction/deleteTransaction/"
	pathRecent            = "/api/transaction/recentTransactions"
	pathTotalExpense      = "/api/transaction/totalExpense"
	pathMonthly           = "/api/transaction/monthlyTransactions"

	// DefaultLookupLimit is how far back FindTransaction searches.
	DefaultLookupLimit = 10
)

// RecentTransactions returns up to limit of the newest transactions.
func (c *Client) RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	path := pathRecent
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []model.Transaction
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindTransaction looks id up among the newest limit transactions.
func (c *Client) FindTransaction(ctx context.Context, id string, limit int) (model.Transaction, error) {
	if limit <= 0 {
		limit = DefaultLookupLimit
	}
	txs, err := c.RecentTransactions(ctx, limit)
	if err != nil {
		return model.Transaction{}, err
	}
	for _, t := range txs {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Transaction{}, ErrNotFound
}

// TotalExpense returns the sum of all expenses.
func (c *Client) TotalExpense(ctx context.Context) (float64, error) {
	var out struct {
		TotalExpense float64 `json:"totalExpense"`
	}
	if err := c.get(ctx, pathTotalExpense, &out); err != nil {
		return 0, err
	}
	return out.TotalExpense, nil
}

// MonthlyTransactions returns expense totals per month.
func (c *Client) MonthlyTransactions(ctx context.Context) ([]model.MonthlyTotal, error) {
	var out []model.MonthlyTotal
	if err := c.get(ctx, pathMonthly, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddTransaction records a transaction after validating in.
func (c *Client) AddTransaction(ctx context.Context, in model.TransactionInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, pathAddTransaction, in, nil)
}

// EditTransaction updates transaction id and returns the stored record.
func (c *Client) EditTransaction(ctx context.Context, id string, in model.TransactionInput) (model.Transaction, error) {
	if id == "" {
		return model.Transaction{}, &model.ValidationError{Field: "id", Message: "Transaction id is required"}
	}
	if err := in.Validate(); err != nil {
		return model.Transaction{}, err
	}
	var out struct {
		Transaction model.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodPut, pathEditTransaction+url.PathEscape(id), in, &out); err != nil {
		return model.Transaction{}, err
	}
	return out.Transaction, nil
}

// DeleteTransaction removes transaction id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	if id == "" {
		return &model.ValidationError{Field: "id", Message: "Transaction id is required"}
	}
	return c.do(ctx, http.MethodDelete, pathDeleteTransaction+url.PathEscape(id), nil, nil)
}
