package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and display layout for transaction dates.
const DateLayout = "2006-01-02"

// Date is a calendar day. It decodes RFC 3339 timestamps or plain
// YYYY-MM-DD strings and always encodes as YYYY-MM-DD.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, &ValidationError{Field: "date", Message: MsgAllFieldsRequired}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Message: MsgInvalidDate}
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MarshalYAML renders the date as YYYY-MM-DD.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*d = Date{t.UTC()}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date: unrecognized format %q", s)
	}
	*d = Date{t}
	return nil
}

// Transaction is a single recorded income or expense.
type Transaction struct {
	ID          string          `json:"_id" yaml:"id"`
	Amount      float64         `json:"amount" yaml:"amount"`
	Date        Date            `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Category    Category        `json:"category" yaml:"category"`
	Type        TransactionType `json:"type" yaml:"type"`
}

// IsIncome reports whether the transaction adds money.
func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

// InputFor returns the editable fields of an existing transaction.
func (t Transaction) InputFor() TransactionInput {
	return TransactionInput{
		Amount:      t.Amount,
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		Type:        t.Type,
	}
}

// TransactionInput is the body of add/edit transaction requests.
type TransactionInput struct {
	Amount      float64         `json:"amount" yaml:"amount"`
	Date        Date            `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Category    Category        `json:"category" yaml:"category"`
	Type        TransactionType `json:"type" yaml:"type"`
}

// NewTransactionInput validates raw form values. An empty txType means expense.
func NewTransactionInput(amount, date, description, category, txType string) (TransactionInput, error) {
	if strings.TrimSpace(amount) == "" || strings.TrimSpace(date) == "" ||
		strings.TrimSpace(description) == "" || strings.TrimSpace(category) == "" {
		return TransactionInput{}, &ValidationError{Message: MsgAllFieldsRequired}
	}
	amt, err := ParseAmount(amount, MsgAmountPositive)
	if err != nil {
		return TransactionInput{}, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return TransactionInput{}, err
	}
	c, err := ParseCategory(category)
	if err != nil {
		return TransactionInput{}, err
	}
	typ, err := ParseTransactionType(txType)
	if err != nil {
		return TransactionInput{}, err
	}
	return TransactionInput{
		Amount:      amt,
		Date:        d,
		Description: strings.TrimSpace(description),
		Category:    c,
		Type:        typ,
	}, nil
}

// Validate checks an already-typed input.
func (in TransactionInput) Validate() error {
	if in.Date.IsZero() || strings.TrimSpace(in.Description) == "" || in.Category == "" {
		return &ValidationError{Message: MsgAllFieldsRequired}
	}
	if in.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: MsgAmountPositive}
	}
	if !in.Category.Valid() {
		return &ValidationError{Field: "category", Message: "Unknown category " + string(in.Category)}
	}
	if in.Type != TypeExpense && in.Type != TypeIncome {
		return &ValidationError{Field: "type", Message: "Type must be expense or income"}
	}
	return nil
}

// MonthlyTotal is one point of the monthly spending series.
type MonthlyTotal struct {
	Month string  `json:"month" yaml:"month"`
	Total float64 `json:"total" yaml:"total"`
}
