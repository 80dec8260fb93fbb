package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// User-facing validation messages.
const (
	MsgAllFieldsRequired    = "All fields are required"
	MsgBudgetAmountPositive = "Budget amount must be greater than 0"
	MsgAmountPositive       = "Amount must be greater than 0"
	MsgAmountNotNumber      = "Amount must be a number"
	MsgInvalidDate          = "Date must be in YYYY-MM-DD format"
)

// ValidationError is raised before a request is sent when user input is
// incomplete or malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseAmount parses a decimal amount string and rejects non-positive
// values with positiveMsg.
func ParseAmount(s, positiveMsg string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, &ValidationError{Field: "amount", Message: MsgAllFieldsRequired}
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, &ValidationError{Field: "amount", Message: MsgAmountNotNumber}
	}
	if !d.IsPositive() {
		return 0, &ValidationError{Field: "amount", Message: positiveMsg}
	}
	f, _ := d.Float64()
	return f, nil
}
