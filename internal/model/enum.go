// Package model defines the budget, transaction and derived view types shared across fintrack.
package model

import (
	"strconv"
	"strings"
	"time"
)

// Category is a spending category shared by budgets and transactions.
type Category string

// Known categories, in display order.
const (
	CategoryFood     Category = "Food"
	CategoryRent     Category = "Rent"
	CategoryShopping Category = "Shopping"
	CategoryTravel   Category = "Travel"
	CategoryBills    Category = "Bills"
	CategoryOther    Category = "Other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryRent,
	CategoryShopping,
	CategoryTravel,
	CategoryBills,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory resolves a user-supplied category name, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "category", Message: MsgAllFieldsRequired}
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Message: "Unknown category " + strconv.Quote(s)}
}

// Month is a calendar month name as used by budget entries.
type Month string

// Months lists January through December.
var Months = []Month{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthOf returns the month name for t.
func MonthOf(t time.Time) Month {
	return Months[t.Month()-1]
}

// Index returns the zero-based position of m in Months, or -1.
func (m Month) Index() int {
	for i, k := range Months {
		if m == k {
			return i
		}
	}
	return -1
}

// Valid reports whether m is a known month name.
func (m Month) Valid() bool { return m.Index() >= 0 }

// Next returns the following month, wrapping December to January.
func (m Month) Next() Month {
	i := m.Index()
	if i < 0 {
		return m
	}
	return Months[(i+1)%len(Months)]
}

// Prev returns the preceding month, wrapping January to December.
func (m Month) Prev() Month {
	i := m.Index()
	if i < 0 {
		return m
	}
	return Months[(i+len(Months)-1)%len(Months)]
}

func (m Month) String() string { return string(m) }

// ParseMonth accepts a full month name, a three-letter abbreviation or a
// number from 1 to 12. Matching ignores case.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "month", Message: MsgAllFieldsRequired}
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return Months[n-1], nil
		}
		return "", &ValidationError{Field: "month", Message: "Month number must be between 1 and 12"}
	}
	for _, m := range Months {
		if strings.EqualFold(s, string(m)) || (len(s) == 3 && strings.EqualFold(s, string(m)[:3])) {
			return m, nil
		}
	}
	return "", &ValidationError{Field: "month", Message: "Unknown month " + strconv.Quote(s)}
}

// TransactionType distinguishes money going out from money coming in.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// TransactionTypes lists the accepted transaction types.
var TransactionTypes = []TransactionType{TypeExpense, TypeIncome}

// ParseTransactionType resolves "expense" or "income", ignoring case.
// An empty string defaults to expense.
func ParseTransactionType(s string) (TransactionType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeExpense, nil
	}
	for _, t := range TransactionTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "type", Message: "Type must be expense or income"}
}
