package core

// table.go holds the editable table a user works on between import and submit.
//
// The table stores what the user sees: a market selection and five text inputs
// per row. It is never trusted on its own; ReadBack re-validates the rows in
// display order before anything is submitted.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/JonMunkholm/basefigures/internal/schema"
	"github.com/google/uuid"
)

// LiveEditWarning is shown when an edited cell is reset.
const LiveEditWarning = "Please enter an integer greater than zero."

var (
	// ErrRowNotFound is returned when an edit targets a row that is no longer in the table.
	ErrRowNotFound = errors.New("row not found")

	// ErrInvalidColumn is returned when an edit targets a column that is not numeric.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrInvalidMarket is returned when a market selection is not an accepted code.
	ErrInvalidMarket = errors.New("invalid market")
)

// EditableRow is one row of the editable table.
// An empty Market means no selection; an empty value means a blank input.
type EditableRow struct {
	ID     string                           `json:"id"`
	Market string                           `json:"market"`
	Values [schema.NumericColumnCount]string `json:"values"`
}

// EmptyRow returns a row with no market selected and every numeric input blank.
func EmptyRow() EditableRow {
	return EditableRow{}
}

// EditableFromRow projects a validated row into table inputs.
func EditableFromRow(r BaseFigureRow) EditableRow {
	e := EditableRow{Market: string(r.Market)}
	for i, v := range r.Values() {
		e.Values[i] = fmt.Sprint(v)
	}
	return e
}

// IsBlank reports whether the user has not filled in anything on the row.
func (r EditableRow) IsBlank() bool {
	if strings.TrimSpace(r.Market) != "" {
		return false
	}
	for _, v := range r.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Cells returns the row as grid cells for validation.
func (r EditableRow) Cells() []CellValue {
	values := make([]string, 0, schema.NumericColumnCount+1)
	values = append(values, r.Market)
	values = append(values, r.Values[:]...)
	return TextRow(values...)
}

// CellEdit is the outcome of a live edit on one numeric input.
type CellEdit struct {
	Row     EditableRow
	Column  int    // Spreadsheet column index (1-5)
	Value   string // Value kept in the cell after the edit
	Warning string // Non-empty when the input was rejected and reset
}

// CheckLiveValue applies the input-time check to a numeric cell.
// Blank input is allowed (the user cleared the cell); anything else must be a
// whole number >= 1. Returns the value to keep in the cell, in plain integer
// form: "3.0" is kept as "3".
func CheckLiveValue(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	n, ok := parsePositiveInt(s)
	if !ok {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}

// TableState is the live, user-editable set of rows for one session.
// It is safe for concurrent use.
type TableState struct {
	mu   sync.RWMutex
	rows []EditableRow
}

// NewTableState returns an empty table.
func NewTableState() *TableState {
	return &TableState{}
}

// Replace discards every row and loads rows in order.
// Importing the same rows twice yields the same table both times.
func (t *TableState) Replace(rows []BaseFigureRow) {
	next := make([]EditableRow, len(rows))
	for i, r := range rows {
		next[i] = EditableFromRow(r)
		next[i].ID = uuid.NewString()
	}

	t.mu.Lock()
	t.rows = next
	t.mu.Unlock()
}

// AddRow appends a blank row and returns it.
func (t *TableState) AddRow() EditableRow {
	row := EmptyRow()
	row.ID = uuid.NewString()

	t.mu.Lock()
	t.rows = append(t.rows, row)
	t.mu.Unlock()

	return row
}

// RemoveRow detaches the row with the given ID. Returns false if no such row exists.
func (t *TableState) RemoveRow(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

// Row returns a copy of the row with the given ID.
func (t *TableState) Row(id string) (EditableRow, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := t.indexOf(id)
	if i < 0 {
		return EditableRow{}, false
	}
	return t.rows[i], true
}

// SetMarket changes the market selection of a row. An empty value clears it.
func (t *TableState) SetMarket(id, market string) (EditableRow, error) {
	if market != "" && !schema.IsMarket(market) {
		return EditableRow{}, fmt.Errorf("%w: %q", ErrInvalidMarket, market)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return EditableRow{}, ErrRowNotFound
	}
	t.rows[i].Market = market
	return t.rows[i], nil
}

// SetCell applies a live edit to numeric column col (1-5) of a row.
// Rejected input resets the cell to blank and sets CellEdit.Warning;
// no other cell or row is touched.
func (t *TableState) SetCell(id string, col int, value string) (CellEdit, error) {
	if _, ok := schema.NumericColumn(col); !ok {
		return CellEdit{}, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}

	kept, ok := CheckLiveValue(value)

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return CellEdit{}, ErrRowNotFound
	}
	t.rows[i].Values[col-1] = kept

	edit := CellEdit{Row: t.rows[i], Column: col, Value: kept}
	if !ok {
		edit.Warning = LiveEditWarning
	}
	return edit, nil
}

// Rows returns a copy of the table in display order.
func (t *TableState) Rows() []EditableRow {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]EditableRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of rows in the table.
func (t *TableState) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Grid reads the table back as a grid with a header row, in display order.
func (t *TableState) Grid() RawGrid {
	rows := t.Rows()
	grid := make(RawGrid, 0, len(rows)+1)
	grid = append(grid, TextRow(schema.Headers()...))
	for _, r := range rows {
		grid = append(grid, r.Cells())
	}
	return grid
}

// ReadBack validates the table in display order and returns typed rows when every
// row is valid. Blank rows are not skipped: a row the user added but never
// filled in is reported like any other invalid row.
func (t *TableState) ReadBack() ([]BaseFigureRow, ValidationReport) {
	grid := t.Grid()
	report := Validate(grid)
	if !report.Valid {
		return nil, report
	}
	return FromGrid(grid), report
}

// CompleteRows returns the rows that would pass validation on their own, in display order.
// Used for running totals while the table is still being edited.
func (t *TableState) CompleteRows() []BaseFigureRow {
	var out []BaseFigureRow
	for _, r := range t.Rows() {
		cells := r.Cells()
		if len(validateRow(cells, 0)) == 0 {
			out = append(out, rowFromCells(cells))
		}
	}
	return out
}

// indexOf returns the position of the row with id, or -1. Caller holds the lock.
func (t *TableState) indexOf(id string) int {
	for i, r := range t.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
