package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr string
	}{
		{"Food", CategoryFood, ""},
		{"  shopping ", CategoryShopping, ""},
		{"BILLS", CategoryBills, ""},
		{"", "", MsgAllFieldsRequired},
		{"Groceries", "", `Unknown category "Groceries"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				var ve *ValidationError
				assert.True(t, errors.As(err, &ve))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{"June", "June", false},
		{"june", "June", false},
		{"Sep", "September", false},
		{"12", "December", false},
		{"1", "January", false},
		{"13", "", true},
		{"Juneteenth", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMonth(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthNavigationWraps(t *testing.T) {
	assert.Equal(t, Month("January"), Month("December").Next())
	assert.Equal(t, Month("December"), Month("January").Prev())
	assert.Equal(t, Month("July"), Month("June").Next())
	assert.Equal(t, Month("Smarch"), Month("Smarch").Next())
	assert.Equal(t, Month("March"), MonthOf(time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)))
}

func TestNewBudgetInput(t *testing.T) {
	in, err := NewBudgetInput("food", "jun", "250.50")
	require.NoError(t, err)
	assert.Equal(t, BudgetInput{Category: CategoryFood, Month: "June", TotalBudget: 250.5}, in)
	assert.NoError(t, in.Validate())

	_, err = NewBudgetInput("Food", "", "100")
	require.Error(t, err)
	assert.Equal(t, MsgAllFieldsRequired, err.Error())

	_, err = NewBudgetInput("Food", "June", "0")
	require.Error(t, err)
	assert.Equal(t, MsgBudgetAmountPositive, err.Error())

	_, err = NewBudgetInput("Food", "June", "-5")
	require.Error(t, err)
	assert.Equal(t, MsgBudgetAmountPositive, err.Error())

	_, err = NewBudgetInput("Food", "June", "lots")
	require.Error(t, err)
	assert.Equal(t, MsgAmountNotNumber, err.Error())
}

func TestBudgetInputValidate(t *testing.T) {
	assert.EqualError(t, BudgetInput{Category: CategoryRent, Month: "May"}.Validate(), MsgBudgetAmountPositive)
	assert.EqualError(t, BudgetInput{Month: "May", TotalBudget: 10}.Validate(), MsgAllFieldsRequired)
	assert.Error(t, BudgetInput{Category: "Pets", Month: "May", TotalBudget: 10}.Validate())
}

func TestNewTransactionInput(t *testing.T) {
	in, err := NewTransactionInput("$1,200.00", "2025-06-01", " Rent for June ", "Rent", "")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, in.Amount)
	assert.Equal(t, "2025-06-01", in.Date.String())
	assert.Equal(t, "Rent for June", in.Description)
	assert.Equal(t, TypeExpense, in.Type)

	_, err = NewTransactionInput("10", "2025-06-01", "", "Food", "expense")
	assert.EqualError(t, err, MsgAllFieldsRequired)

	_, err = NewTransactionInput("0", "2025-06-01", "coffee", "Food", "expense")
	assert.EqualError(t, err, MsgAmountPositive)

	_, err = NewTransactionInput("3", "06/01/2025", "coffee", "Food", "expense")
	assert.EqualError(t, err, MsgInvalidDate)

	_, err = NewTransactionInput("3", "2025-06-01", "coffee", "Food", "refund")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var tx Transaction
	raw := `{"_id":"t1","amount":12.5,"date":"2025-06-03T00:00:00.000Z","description":"lunch","category":"Food","type":"expense"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.Equal(t, "t1", tx.ID)
	assert.Equal(t, "2025-06-03", tx.Date.String())

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-01-09"}`), &tx))
	assert.Equal(t, "2025-01-09", tx.Date.String())

	out, err := json.Marshal(tx.InputFor())
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date":"2025-01-09"`)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"yesterday"}`), &tx))
}

func TestOverBudgetFlagExceeded(t *testing.T) {
	assert.True(t, OverBudgetFlag{TotalSpent: 120, BudgetAmount: 100}.Exceeded())
	assert.False(t, OverBudgetFlag{TotalSpent: 100, BudgetAmount: 100}.Exceeded())
	assert.False(t, OverBudgetFlag{TotalSpent: 5, BudgetAmount: 0}.Exceeded())
}

func TestComparisonHelpers(t *testing.T) {
	c := Comparison{Budget: 200, Actual: 250, Percentage: 125}
	assert.Equal(t, 100, c.BarPercent())
	assert.Equal(t, -50.0, c.Remaining())
	assert.True(t, c.Over())

	exact := Comparison{Budget: 100, Actual: 100, Percentage: 100}
	assert.False(t, exact.Over())
	assert.Equal(t, 0.0, exact.Remaining())
}
