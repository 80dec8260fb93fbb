// Package importer reads transactions from CSV files for bulk upload.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/theirongolddev/fintrack/internal/model"
)

// Columns lists the accepted header names. type is optional.
var Columns = []string{"amount", "date", "description", "category", "type"}

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("importer: missing required column")

// Row is one validated CSV record.
type Row struct {
	Line  int
	Input model.TransactionInput
}

// RowError is a record that failed validation.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Result holds the rows that parsed and the ones that did not.
type Result struct {
	Rows   []Row
	Errors []RowError
}

// Parse reads a CSV with a header row naming at least amount, date,
// description and category, in any order. Invalid records are collected in
// Result.Errors and do not stop parsing; a malformed file or header does.
func Parse(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, fmt.Errorf("importer: empty file")
	}
	if err != nil {
		return Result{}, fmt.Errorf("importer: reading header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("importer: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}

		in, err := model.NewTransactionInput(
			field(rec, idx, "amount"),
			field(rec, idx, "date"),
			field(rec, idx, "description"),
			field(rec, idx, "category"),
			field(rec, idx, "type"),
		)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, Err: err})
			continue
		}
		res.Rows = append(res.Rows, Row{Line: line, Input: in})
	}
	return res, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range Columns[:4] {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func field(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
