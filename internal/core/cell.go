package core

// cell.go models spreadsheet cells as a small tagged union.
//
// A decoded spreadsheet cell is either a number, a piece of text, or nothing
// at all. Validation coerces cells through PositiveInt so every cell kind has
// an explicit answer to "is this a whole number greater than zero?".

import (
	"math"
	"strconv"
	"strings"
)

// CellKind tags the variant held by a CellValue.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// maxExactInt is the largest integer a float64 cell can hold without loss.
const maxExactInt = 1 << 53

// CellValue is one untyped spreadsheet cell.
type CellValue struct {
	Kind CellKind
	Num  float64 // Set when Kind is CellNumber
	Str  string  // Set when Kind is CellText
}

// Number returns a numeric cell.
func Number(f float64) CellValue {
	return CellValue{Kind: CellNumber, Num: f}
}

// Text returns a text cell.
func Text(s string) CellValue {
	return CellValue{Kind: CellText, Str: s}
}

// Empty returns an absent cell.
func Empty() CellValue {
	return CellValue{}
}

// IsEmpty reports whether the cell holds no value. Whitespace-only text counts as empty.
func (c CellValue) IsEmpty() bool {
	switch c.Kind {
	case CellNumber:
		return false
	case CellText:
		return strings.TrimSpace(c.Str) == ""
	default:
		return true
	}
}

// String renders the cell the way it is quoted in validation messages.
func (c CellValue) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellText:
		return c.Str
	default:
		return ""
	}
}

// PositiveInt coerces the cell to a whole number >= 1.
// Numbers must be integral; text must parse as a base-10 integer.
// Empty cells, fractions, zero and negatives all report false.
func (c CellValue) PositiveInt() (int64, bool) {
	switch c.Kind {
	case CellNumber:
		f := c.Num
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, false
		}
		if f < 1 || f > maxExactInt {
			return 0, false
		}
		return int64(f), true
	case CellText:
		return parsePositiveInt(c.Str)
	default:
		return 0, false
	}
}

// parsePositiveInt accepts base-10 integers and integral decimal forms such as
// "3.0" or "1e2", the way a typed number reads back from a spreadsheet.
func parsePositiveInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, n >= 1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < 1 || f > maxExactInt {
		return 0, false
	}
	return int64(f), true
}

// RawGrid is a decoded spreadsheet, header row first.
type RawGrid [][]CellValue

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (g RawGrid) Cell(row, col int) CellValue {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Empty()
	}
	return g[row][col]
}

// DataRows returns the number of rows after the header.
func (g RawGrid) DataRows() int {
	if len(g) <= 1 {
		return 0
	}
	return len(g) - 1
}

// TextRow builds a grid row from form values: blank strings become empty cells,
// everything else is kept as text for the validator to coerce.
func TextRow(values ...string) []CellValue {
	row := make([]CellValue, len(values))
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			row[i] = Empty()
			continue
		}
		row[i] = Text(v)
	}
	return row
}
