// Package decode reads and writes base-figure workbooks with excelize.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned for a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// Extensions lists the accepted file extensions, lowercase.
var Extensions = []string{".xlsx", ".xlsm"}

// Excel decodes the first sheet of an Office Open XML workbook.
type Excel struct{}

// NewExcel returns an Excel decoder.
func NewExcel() *Excel {
	return &Excel{}
}

// Supports reports whether fileName ends in an accepted extension.
// The comparison is case-insensitive.
func (e *Excel) Supports(fileName string) bool {
	return IsSpreadsheet(fileName)
}

// IsSpreadsheet reports whether fileName ends in .xlsx or .xlsm.
func IsSpreadsheet(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Decode converts the first sheet into a grid, header row first.
//
// Numeric cells become Number, string cells become Text and blank cells become
// Empty. Trailing empty rows and cells are not returned by excelize, so rows can
// be ragged; empty rows in the middle of the sheet are kept.
func (e *Excel) Decode(data []byte) (core.RawGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	grid := make(core.RawGrid, len(rows))
	for r, row := range rows {
		cells := make([]core.CellValue, len(row))
		for c, raw := range row {
			cell, err := readCell(f, sheet, r, c, raw)
			if err != nil {
				return nil, err
			}
			cells[c] = cell
		}
		grid[r] = cells
	}

	return grid, nil
}

// readCell types one raw cell value. r and c are zero-based.
func readCell(f *excelize.File, sheet string, r, c int, raw string) (core.CellValue, error) {
	if raw == "" {
		return core.Empty(), nil
	}

	name, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return core.CellValue{}, err
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return core.CellValue{}, fmt.Errorf("cell %s: %w", name, err)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return core.Text(raw), nil
	case excelize.CellTypeBool:
		if raw == "1" {
			return core.Text("TRUE"), nil
		}
		return core.Text("FALSE"), nil
	}

	// Unset, Number and Date cells carry a raw numeric value.
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return core.Number(n), nil
	}
	return core.Text(raw), nil
}
