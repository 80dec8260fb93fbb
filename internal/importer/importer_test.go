package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

func TestParse(t *testing.T) {
	csv := `date,amount,description,category,type
2024-03-01,12.50,Lunch,food,
2024-03-02,"1,200.00",March rent,Rent,expense
2024-03-03,3000,Salary,Other,income

2024-03-04,-5,Refund,Food,
2024-03-05,10,Taxi,Boats,
03/06/2024,10,Taxi,Travel,
`
	res, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, 2, res.Rows[0].Line)
	assert.Equal(t, 12.5, res.Rows[0].Input.Amount)
	assert.Equal(t, model.CategoryFood, res.Rows[0].Input.Category)
	assert.Equal(t, model.TypeExpense, res.Rows[0].Input.Type)
	assert.Equal(t, 1200.0, res.Rows[1].Input.Amount)
	assert.Equal(t, model.TypeIncome, res.Rows[2].Input.Type)

	require.Len(t, res.Errors, 3)
	assert.Equal(t, 6, res.Errors[0].Line)
	var ve *model.ValidationError
	require.ErrorAs(t, res.Errors[0], &ve)
	assert.Equal(t, model.MsgAmountPositive, ve.Message)
	assert.Contains(t, res.Errors[1].Error(), "line 7")
	require.ErrorAs(t, res.Errors[2], &ve)
	assert.Equal(t, model.MsgInvalidDate, ve.Message)
}

func TestParseWithoutTypeColumn(t *testing.T) {
	res, err := Parse(strings.NewReader("amount,date,description,category\n9.99,2024-01-15,Book,Shopping\n"))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, model.TypeExpense, res.Rows[0].Input.Type)
	assert.Empty(t, res.Errors)
}

func TestParseMissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("amount,date,category\n1,2024-01-01,Food\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), `"description"`)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}
