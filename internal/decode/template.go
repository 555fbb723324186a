package decode

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/schema"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteGrid and WriteTemplate.
const SheetName = "Sheet1"

// templateRows is how far down the market drop-down list reaches.
const templateRows = 500

// WriteTemplate writes an empty workbook with the header row and a market
// drop-down on column A.
func WriteTemplate(w io.Writer) error {
	return WriteGrid(w, core.ToGrid(nil))
}

// WriteGrid writes grid to w as a single-sheet workbook. Number cells are
// written as numbers, Text cells as strings and Empty cells are skipped.
func WriteGrid(w io.Writer, grid core.RawGrid) error {
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range grid {
		for c, cell := range row {
			if cell.Kind == core.CellEmpty {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}

			var value any = cell.Str
			if cell.Kind == core.CellNumber {
				value = cell.Num
				if n, ok := cell.PositiveInt(); ok {
					value = n
				}
			}
			if err := f.SetCellValue(SheetName, name, value); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
		}
	}

	if err := decorate(f, len(grid)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// decorate styles the header row and limits column A to market codes.
func decorate(f *excelize.File, rows int) error {
	last := schema.ColumnLetter(len(schema.Columns()) - 1)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last+"1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", last, 22); err != nil {
		return err
	}

	end := max(rows, templateRows)
	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("A2:A%d", end)
	if err := dv.SetDropList(schema.MarketStrings()); err != nil {
		return err
	}
	return f.AddDataValidation(SheetName, dv)
}
