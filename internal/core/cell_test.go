package core

import (
	"math"
	"testing"
)

func TestCellValue_PositiveInt(t *testing.T) {
	tests := []struct {
		name   string
		cell   CellValue
		want   int64
		wantOK bool
	}{
		{"number one", Number(1), 1, true},
		{"large number", Number(123456789), 123456789, true},
		{"integral float", Number(10.0), 10, true},
		{"zero", Number(0), 0, false},
		{"negative", Number(-1), 0, false},
		{"fraction", Number(3.5), 0, false},
		{"NaN", Number(math.NaN()), 0, false},
		{"infinity", Number(math.Inf(1)), 0, false},
		{"beyond exact range", Number(1 << 60), 0, false},
		{"text integer", Text("42"), 42, true},
		{"text with spaces", Text(" 7 "), 7, true},
		{"text fraction", Text("3.5"), 0, false},
		{"text integral decimal", Text("3.0"), 3, true},
		{"text exponent", Text("1e2"), 100, true},
		{"text infinity", Text("+Inf"), 0, false},
		{"text zero", Text("0"), 0, false},
		{"text negative", Text("-1"), 0, false},
		{"text word", Text("ten"), 0, false},
		{"empty", Empty(), 0, false},
		{"blank text", Text("  "), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.PositiveInt()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("PositiveInt() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCellValue_String(t *testing.T) {
	tests := []struct {
		cell CellValue
		want string
	}{
		{Number(-5), "-5"},
		{Number(3.5), "3.5"},
		{Number(10), "10"},
		{Text("XX"), "XX"},
		{Empty(), ""},
	}

	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCellValue_IsEmpty(t *testing.T) {
	if !Empty().IsEmpty() {
		t.Error("Empty().IsEmpty() = false")
	}
	if !Text(" ").IsEmpty() {
		t.Error("Text(\" \").IsEmpty() = false")
	}
	if Number(0).IsEmpty() {
		t.Error("Number(0).IsEmpty() = true")
	}
	if Text("x").IsEmpty() {
		t.Error("Text(\"x\").IsEmpty() = true")
	}
}

func TestRawGrid_Cell_OutOfRange(t *testing.T) {
	grid := RawGrid{{Text("LM")}, {Text("RO"), Number(1)}}

	if got := grid.Cell(1, 1); got != Number(1) {
		t.Errorf("Cell(1,1) = %+v", got)
	}
	for _, pos := range [][2]int{{-1, 0}, {5, 0}, {1, 9}, {0, -1}} {
		if got := grid.Cell(pos[0], pos[1]); got.Kind != CellEmpty {
			t.Errorf("Cell(%d,%d) = %+v, want empty", pos[0], pos[1], got)
		}
	}
	if grid.DataRows() != 1 {
		t.Errorf("DataRows() = %d, want 1", grid.DataRows())
	}
	if (RawGrid{}).DataRows() != 0 {
		t.Error("empty grid should have no data rows")
	}
}

func TestTextRow(t *testing.T) {
	row := TextRow("RO", "", " ", "5")
	wantKinds := []CellKind{CellText, CellEmpty, CellEmpty, CellText}
	for i, k := range wantKinds {
		if row[i].Kind != k {
			t.Errorf("TextRow()[%d].Kind = %v, want %v", i, row[i].Kind, k)
		}
	}
}
