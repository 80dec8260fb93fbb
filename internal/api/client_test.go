package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "ftp://host", "http://"} {
		_, err := NewClient(raw)
		assert.ErrorIs(t, err, ErrInvalidBaseURL, raw)
	}

	c, err := NewClient("http://localhost:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestFetchBudgetInputs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/budget/getBudgets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "b1", "category": "Food", "month": "March", "totalBudget": 500},
		})
	})
	mux.HandleFunc("GET /api/transaction/categoryWiseExpense", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"category": "Food", "total": 450}})
	})
	mux.HandleFunc("GET /api/budget/overBudgetCategories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	c := newTestClient(t, mux)

	in, err := c.FetchBudgetInputs(context.Background())
	require.NoError(t, err)
	require.Len(t, in.Budgets, 1)
	assert.Equal(t, "b1", in.Budgets[0].ID)
	assert.Equal(t, model.Category("Food"), in.Budgets[0].Category)
	assert.Equal(t, 500.0, in.Budgets[0].TotalBudget)
	require.Len(t, in.Expenses, 1)
	assert.Equal(t, 450.0, in.Expenses[0].Total)
	assert.Empty(t, in.Flags)

	view, err := c.FetchBudgetView(context.Background(), model.Month("March"))
	require.NoError(t, err)
	require.Len(t, view.Comparisons, 1)
	assert.Equal(t, 90, view.Comparisons[0].Percentage)
	assert.Equal(t, model.StatusWarning, view.Comparisons[0].Status)
}

func TestFetchBudgetInputsAllOrNothing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/budget/getBudgets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "b1", "category": "Food", "month": "March", "totalBudget": 500},
		})
	})
	mux.HandleFunc("GET /api/transaction/categoryWiseExpense", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})
	mux.HandleFunc("GET /api/budget/overBudgetCategories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	c := newTestClient(t, mux)

	in, err := c.FetchBudgetInputs(context.Background())
	require.Error(t, err)
	assert.Nil(t, in.Budgets)
	assert.Nil(t, in.Expenses)
	assert.Nil(t, in.Flags)

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.Equal(t, "boom", ae.Message)
}

func TestNetworkErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = c.FetchBudgetInputs(context.Background())
	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t,
		"Failed to fetch budget data. Please check if the server is running.",
		UserMessage(err, "fetch budget data"))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &model.ValidationError{Message: model.MsgAllFieldsRequired}, "All fields are required"},
		{"server message", &APIError{Status: 400, Message: "Budget already exists"}, "Budget already exists"},
		{"server no message", &APIError{Status: 500}, "Failed to delete budget"},
		{"not found", ErrNotFound, "Transaction not found"},
		{"other", errors.New("weird"), "Failed to delete budget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "delete budget"))
		})
	}
}

func TestAddBudgetValidatesBeforeSending(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.AddBudget(context.Background(), model.BudgetInput{Category: "Food", Month: "March"})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, model.MsgBudgetAmountPositive, ve.Message)
	assert.Zero(t, hits.Load())

	err = c.DeleteTransaction(context.Background(), "")
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, hits.Load())
}

func TestAddBudgetSendsBody(t *testing.T) {
	var got model.BudgetInput
	var reqID string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/budget/addBudget", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		reqID = r.Header.Get("X-Request-ID")
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		writeJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
	}))

	in := model.BudgetInput{Category: "Food", Month: "March", TotalBudget: 500}
	require.NoError(t, c.AddBudget(context.Background(), in))
	assert.Equal(t, in, got)
	assert.NotEmpty(t, reqID)
}

func TestDeleteBudgetServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/budget/deleteBudget/abc%2F1", r.URL.EscapedPath())
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Budget not found"})
	}))

	err := c.DeleteBudget(context.Background(), "abc/1")
	require.Error(t, err)
	assert.Equal(t, "Budget not found", UserMessage(err, "delete budget"))
}

func TestEditTransactionReturnsRecord(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/transaction/editTransaction/t1", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "updated",
			"transaction": map[string]any{
				"_id": "t1", "amount": 42.5, "date": "2024-03-05T00:00:00.000Z",
				"description": "Lunch", "category": "Food", "type": "expense",
			},
		})
	}))

	in, err := model.NewTransactionInput("42.50", "2024-03-05", "Lunch", "Food", "")
	require.NoError(t, err)

	tx, err := c.EditTransaction(context.Background(), "t1", in)
	require.NoError(t, err)
	assert.Equal(t, "t1", tx.ID)
	assert.Equal(t, 42.5, tx.Amount)
	assert.Equal(t, "2024-03-05", tx.Date.String())
}

func TestRecentTransactionsLimitAndFind(t *testing.T) {
	var gotLimit string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transaction/recentTransactions", r.URL.Path)
		gotLimit = r.URL.Query().Get("limit")
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "t1", "amount": 10, "date": "2024-03-01", "description": "a", "category": "Food", "type": "expense"},
			{"_id": "t2", "amount": 20, "date": "2024-03-02", "description": "b", "category": "Bills", "type": "income"},
		})
	}))

	txs, err := c.RecentTransactions(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, "50", gotLimit)
	assert.Len(t, txs, 2)

	tx, err := c.FindTransaction(context.Background(), "t2", 0)
	require.NoError(t, err)
	assert.Equal(t, "10", gotLimit)
	assert.True(t, tx.IsIncome())

	_, err = c.FindTransaction(context.Background(), "missing", 0)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Transaction not found", UserMessage(err, "load transaction"))
}

func TestFetchDashboard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transaction/totalExpense", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"totalExpense": 200})
	})
	mux.HandleFunc("GET /api/transaction/categoryWiseExpense", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"category": "Food", "total": 150},
			{"category": "Bills", "total": 50},
		})
	})
	mux.HandleFunc("GET /api/transaction/recentTransactions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	c := newTestClient(t, mux)

	v, err := c.FetchDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200.0, v.TotalExpense)
	require.NotNil(t, v.TopCategory)
	assert.Equal(t, "Food", v.TopCategory.Category)
	assert.Equal(t, 75.0, v.TopCategory.SharePercent)
}

func TestFetchAnalyticsFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transaction/monthlyTransactions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, map[string]string{})
	})
	mux.HandleFunc("GET /api/transaction/categoryWiseExpense", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	c := newTestClient(t, mux)

	v, err := c.FetchAnalytics(context.Background())
	require.Error(t, err)
	assert.True(t, v.Empty())
	assert.Equal(t, "Failed to fetch analytics data", UserMessage(err, "fetch analytics data"))
}
