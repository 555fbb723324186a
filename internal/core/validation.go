package core

// validation.go checks decoded spreadsheet rows before they reach the table.
//
// Every data row is checked independently:
//  1. Column A must hold one of the accepted market codes (exact match)
//  2. Every later column must hold a whole number greater than zero. Columns
//     B-F are always checked; columns past F only when the row reaches them.
//
// All problems are collected, so the user sees every offending cell of every
// row in a single report instead of fixing the file one error at a time.

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/basefigures/internal/schema"
)

// Validation messages. Each is prefixed by the column letter and offending value.
const (
	msgInvalidOption  = "is not a valid option"
	msgInvalidInteger = "is not a valid integer greater than 0"
)

// ValidationError describes a single offending cell.
type ValidationError struct {
	Row     int    `json:"row"`     // 1-based display row (the header is row 1)
	Column  string `json:"column"`  // Column letter: "A", "B", ...
	Value   string `json:"value"`   // The offending value as it appeared in the sheet
	Message string `json:"message"` // Human-readable reason
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Column %s: '%s' %s", e.Column, e.Value, e.Message)
}

// ValidationReport is the outcome of validating a whole grid.
type ValidationReport struct {
	Valid  bool              `json:"valid"`  // True iff Errors is empty
	Errors []ValidationError `json:"errors"` // Offending cells in row, then column order
}

// Validate checks every data row of grid. Row 0 is the header and is never checked.
// A grid with no data rows is valid.
func Validate(grid RawGrid) ValidationReport {
	var errs []ValidationError
	for i := 1; i < len(grid); i++ {
		errs = append(errs, validateRow(grid[i], i+1)...)
	}
	return ValidationReport{Valid: len(errs) == 0, Errors: errs}
}

// validateRow returns the problems in one data row; displayRow is its 1-based row number.
func validateRow(row []CellValue, displayRow int) []ValidationError {
	var errs []ValidationError

	market := cellAt(row, schema.MarketColumn.Index)
	if market.Kind != CellText || !schema.IsMarket(market.Str) {
		errs = append(errs, cellError(displayRow, schema.MarketColumn.Index, market, msgInvalidOption))
	}

	for _, col := range schema.NumericColumns {
		cell := cellAt(row, col.Index)
		if _, ok := cell.PositiveInt(); !ok {
			errs = append(errs, cellError(displayRow, col.Index, cell, msgInvalidInteger))
		}
	}

	for i := schema.NumericColumnCount + 1; i < len(row); i++ {
		if _, ok := row[i].PositiveInt(); !ok {
			errs = append(errs, cellError(displayRow, i, row[i], msgInvalidInteger))
		}
	}

	return errs
}

func cellAt(row []CellValue, idx int) CellValue {
	if idx < len(row) {
		return row[idx]
	}
	return Empty()
}

func cellError(displayRow, col int, cell CellValue, msg string) ValidationError {
	return ValidationError{
		Row:     displayRow,
		Column:  schema.ColumnLetter(col),
		Value:   cell.String(),
		Message: msg,
	}
}

// InvalidRows returns the number of distinct rows with at least one error.
func (r ValidationReport) InvalidRows() int {
	n, last := 0, 0
	for _, e := range r.Errors {
		if e.Row != last {
			n++
			last = e.Row
		}
	}
	return n
}

// Lines renders one line per offending row: "Row 2: Column A: 'XX' is not a valid option, ...".
func (r ValidationReport) Lines() []string {
	var lines []string
	var parts []string
	row := 0

	flush := func() {
		if len(parts) > 0 {
			lines = append(lines, fmt.Sprintf("Row %d: %s", row, strings.Join(parts, ", ")))
		}
		parts = parts[:0]
	}

	for _, e := range r.Errors {
		if e.Row != row {
			flush()
			row = e.Row
		}
		parts = append(parts, e.Error())
	}
	flush()

	return lines
}

// Message renders the full report for display, or "" when the report is valid.
func (r ValidationReport) Message() string {
	if r.Valid {
		return ""
	}
	return "Errors in spreadsheet:\n" + strings.Join(r.Lines(), "\n")
}

// ValidationFailedError is returned when an operation is rejected because its rows
// did not validate. The full report is attached for display.
type ValidationFailedError struct {
	Report ValidationReport
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid cells in %d rows",
		len(e.Report.Errors), e.Report.InvalidRows())
}
