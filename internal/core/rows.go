package core

// rows.go converts between validated grids and typed rows.

import (
	"github.com/JonMunkholm/basefigures/internal/schema"
)

// BaseFigureRow is one validated market record.
type BaseFigureRow struct {
	Market         schema.MarketCode `json:"market"`
	MobilePostpaid int64             `json:"mobilePostpaid"`
	MobilePrepaid  int64             `json:"mobilePrepaid"`
	Fixed          int64             `json:"fixed"`
	Consumer       int64             `json:"consumer"`
	Enterprise     int64             `json:"enterprise"`
}

// Values returns the numeric fields in column order (B-F).
func (r BaseFigureRow) Values() [schema.NumericColumnCount]int64 {
	return [schema.NumericColumnCount]int64{
		r.MobilePostpaid, r.MobilePrepaid, r.Fixed, r.Consumer, r.Enterprise,
	}
}

// rowFromValues builds a row from a market and the numeric fields in column order.
func rowFromValues(market schema.MarketCode, v [schema.NumericColumnCount]int64) BaseFigureRow {
	return BaseFigureRow{
		Market:         market,
		MobilePostpaid: v[0],
		MobilePrepaid:  v[1],
		Fixed:          v[2],
		Consumer:       v[3],
		Enterprise:     v[4],
	}
}

// FromGrid converts a grid that already passed Validate into typed rows.
// The header row is skipped. Callers must validate first: cells that do not
// coerce are read as zero rather than rejected.
func FromGrid(grid RawGrid) []BaseFigureRow {
	if len(grid) <= 1 {
		return []BaseFigureRow{}
	}

	rows := make([]BaseFigureRow, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		rows = append(rows, rowFromCells(raw))
	}
	return rows
}

func rowFromCells(raw []CellValue) BaseFigureRow {
	market := cellAt(raw, schema.MarketColumn.Index)

	var values [schema.NumericColumnCount]int64
	for i, col := range schema.NumericColumns {
		values[i], _ = cellAt(raw, col.Index).PositiveInt()
	}
	return rowFromValues(schema.MarketCode(market.Str), values)
}

// ToGrid projects rows back into a grid with a header row.
// Numeric fields become number cells; the market becomes a text cell.
func ToGrid(rows []BaseFigureRow) RawGrid {
	grid := make(RawGrid, 0, len(rows)+1)
	grid = append(grid, TextRow(schema.Headers()...))

	for _, r := range rows {
		cells := make([]CellValue, 0, schema.NumericColumnCount+1)
		cells = append(cells, Text(string(r.Market)))
		for _, v := range r.Values() {
			cells = append(cells, Number(float64(v)))
		}
		grid = append(grid, cells)
	}
	return grid
}

// Record is the list item sent to the remote store for one row.
// Field names are fixed by the list's schema.
type Record struct {
	Title              string `json:"Title"`
	BaseMobilePostpaid int64  `json:"Base_Mobile_Postpaid"`
	BaseMobilePrepaid  int64  `json:"Base_Mobile_Prepaid"`
	BaseFixed          int64  `json:"Base_Fixed"`
	BaseConsumer       int64  `json:"Base_Consumer"`
	BaseEnterprise     int64  `json:"Base_Enterprise"`
}

// ToRecord maps a row onto the list item fields.
func ToRecord(r BaseFigureRow) Record {
	return Record{
		Title:              string(r.Market),
		BaseMobilePostpaid: r.MobilePostpaid,
		BaseMobilePrepaid:  r.MobilePrepaid,
		BaseFixed:          r.Fixed,
		BaseConsumer:       r.Consumer,
		BaseEnterprise:     r.Enterprise,
	}
}

// ToRecords maps rows onto list items, preserving order.
func ToRecords(rows []BaseFigureRow) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = ToRecord(r)
	}
	return out
}
