package core

import (
	"errors"
	"sync"
	"testing"
)

func sampleRows() []BaseFigureRow {
	return []BaseFigureRow{
		{Market: "RO", MobilePostpaid: 10, MobilePrepaid: 20, Fixed: 30, Consumer: 40, Enterprise: 50},
		{Market: "IT", MobilePostpaid: 1, MobilePrepaid: 2, Fixed: 3, Consumer: 4, Enterprise: 5},
	}
}

// stripIDs removes row IDs so tables can be compared by content.
func stripIDs(rows []EditableRow) []EditableRow {
	out := make([]EditableRow, len(rows))
	for i, r := range rows {
		r.ID = ""
		out[i] = r
	}
	return out
}

func fillRow(t *testing.T, table *TableState, id, market string, values ...string) {
	t.Helper()
	if _, err := table.SetMarket(id, market); err != nil {
		t.Fatalf("SetMarket() error = %v", err)
	}
	for i, v := range values {
		edit, err := table.SetCell(id, i+1, v)
		if err != nil {
			t.Fatalf("SetCell() error = %v", err)
		}
		if edit.Warning != "" {
			t.Fatalf("SetCell(%q) warning = %q", v, edit.Warning)
		}
	}
}

// ============================================================================
// Import
// ============================================================================

func TestTableState_Replace(t *testing.T) {
	table := NewTableState()
	table.Replace(sampleRows())

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("Len = %d, want 2", len(rows))
	}
	if rows[0].Market != "RO" || rows[0].Values != [5]string{"10", "20", "30", "40", "50"} {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[0].ID == "" || rows[0].ID == rows[1].ID {
		t.Errorf("row IDs should be unique and set: %q %q", rows[0].ID, rows[1].ID)
	}
}

func TestTableState_ReplaceIsIdempotent(t *testing.T) {
	grid := ToGrid(sampleRows())

	table := NewTableState()
	table.AddRow()
	table.Replace(FromGrid(grid))
	first := stripIDs(table.Rows())

	table.Replace(FromGrid(grid))
	second := stripIDs(table.Rows())

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("lengths = %d, %d, want 2, 2 (replace, not append)", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// ============================================================================
// Manual add / remove
// ============================================================================

func TestTableState_AddRow(t *testing.T) {
	table := NewTableState()
	table.Replace(sampleRows())

	row := table.AddRow()
	if row.ID == "" {
		t.Fatal("AddRow() returned row without ID")
	}
	if !row.IsBlank() {
		t.Errorf("AddRow() = %+v, want blank row", row)
	}

	rows := table.Rows()
	if len(rows) != 3 || rows[2].ID != row.ID {
		t.Errorf("new row should be appended last, got %+v", rows)
	}
}

func TestTableState_BlankRowIsNotValid(t *testing.T) {
	table := NewTableState()
	table.Replace(sampleRows())
	table.AddRow()

	rows, report := table.ReadBack()
	if report.Valid {
		t.Fatal("ReadBack() valid with a blank row, want invalid")
	}
	if rows != nil {
		t.Errorf("ReadBack() rows = %v, want nil", rows)
	}

	// Blank row is the third data row, displayed as row 4.
	if report.Errors[0].Row != 4 || report.Errors[0].Column != "A" {
		t.Errorf("first error = %+v, want row 4 column A", report.Errors[0])
	}
	if len(report.Errors) != 6 {
		t.Errorf("len(Errors) = %d, want 6", len(report.Errors))
	}
}

func TestTableState_RemoveRow(t *testing.T) {
	table := NewTableState()
	table.Replace(sampleRows())
	first := table.Rows()[0]

	if !table.RemoveRow(first.ID) {
		t.Fatal("RemoveRow() = false, want true")
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
	if table.Rows()[0].Market != "IT" {
		t.Errorf("remaining row = %+v, want IT", table.Rows()[0])
	}
	if table.RemoveRow(first.ID) {
		t.Error("RemoveRow() twice = true, want false")
	}
	if table.RemoveRow("missing") {
		t.Error("RemoveRow(missing) = true, want false")
	}
}

// ============================================================================
// Live edits
// ============================================================================

func TestCheckLiveValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"1", "1", true},
		{" 25 ", "25", true},
		{"", "", true},
		{"0", "", false},
		{"-1", "", false},
		{"3.5", "", false},
		{"abc", "", false},
		{"3.0", "3", true},
		{"1e2", "100", true},
		{"007", "7", true},
		{"0.0", "", false},
		{"Inf", "", false},
		{"NaN", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := CheckLiveValue(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("CheckLiveValue(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTableState_SetCell_RejectsAndResets(t *testing.T) {
	table := NewTableState()
	table.Replace(sampleRows())
	id := table.Rows()[0].ID

	for _, bad := range []string{"0", "-1", "3.5"} {
		edit, err := table.SetCell(id, 2, bad)
		if err != nil {
			t.Fatalf("SetCell(%q) error = %v", bad, err)
		}
		if edit.Warning != LiveEditWarning {
			t.Errorf("SetCell(%q) warning = %q, want %q", bad, edit.Warning, LiveEditWarning)
		}
		if edit.Value != "" {
			t.Errorf("SetCell(%q) value = %q, want blank", bad, edit.Value)
		}
	}

	row, _ := table.Row(id)
	if row.Values[1] != "" {
		t.Errorf("cell should be blank after rejection, got %q", row.Values[1])
	}
	if row.Values[0] != "10" || row.Values[2] != "30" {
		t.Errorf("other cells changed: %+v", row.Values)
	}
	if other := table.Rows()[1]; other.Values[1] != "2" {
		t.Errorf("other row changed: %+v", other)
	}
}

func TestTableState_SetCell_Accepts(t *testing.T) {
	table := NewTableState()
	row := table.AddRow()

	edit, err := table.SetCell(row.ID, 5, "1")
	if err != nil {
		t.Fatalf("SetCell() error = %v", err)
	}
	if edit.Warning != "" || edit.Value != "1" || edit.Row.Values[4] != "1" {
		t.Errorf("SetCell() = %+v", edit)
	}
}

func TestTableState_SetCell_Errors(t *testing.T) {
	table := NewTableState()
	row := table.AddRow()

	if _, err := table.SetCell(row.ID, 0, "1"); !errors.Is(err, ErrInvalidColumn) {
		t.Errorf("SetCell(col 0) error = %v, want ErrInvalidColumn", err)
	}
	if _, err := table.SetCell(row.ID, 6, "1"); !errors.Is(err, ErrInvalidColumn) {
		t.Errorf("SetCell(col 6) error = %v, want ErrInvalidColumn", err)
	}
	if _, err := table.SetCell("missing", 1, "1"); !errors.Is(err, ErrRowNotFound) {
		t.Errorf("SetCell(missing) error = %v, want ErrRowNotFound", err)
	}
}

func TestTableState_SetMarket(t *testing.T) {
	table := NewTableState()
	row := table.AddRow()

	got, err := table.SetMarket(row.ID, "UK")
	if err != nil || got.Market != "UK" {
		t.Fatalf("SetMarket(UK) = %+v, %v", got, err)
	}
	if _, err := table.SetMarket(row.ID, "XX"); !errors.Is(err, ErrInvalidMarket) {
		t.Errorf("SetMarket(XX) error = %v, want ErrInvalidMarket", err)
	}
	if got, _ := table.Row(row.ID); got.Market != "UK" {
		t.Errorf("rejected market should not change the row, got %q", got.Market)
	}
	if got, err := table.SetMarket(row.ID, ""); err != nil || got.Market != "" {
		t.Errorf("SetMarket(\"\") = %+v, %v", got, err)
	}
	if _, err := table.SetMarket("missing", "RO"); !errors.Is(err, ErrRowNotFound) {
		t.Errorf("SetMarket(missing) error = %v, want ErrRowNotFound", err)
	}
}

// ============================================================================
// Read-back
// ============================================================================

func TestTableState_ReadBack_DisplayOrder(t *testing.T) {
	table := NewTableState()
	table.Replace(sampleRows())
	added := table.AddRow()
	fillRow(t, table, added.ID, "TR", "7", "8", "9", "10", "11")
	table.RemoveRow(table.Rows()[0].ID)

	rows, report := table.ReadBack()
	if !report.Valid {
		t.Fatalf("ReadBack() errors = %v", report.Errors)
	}

	want := []BaseFigureRow{
		{Market: "IT", MobilePostpaid: 1, MobilePrepaid: 2, Fixed: 3, Consumer: 4, Enterprise: 5},
		{Market: "TR", MobilePostpaid: 7, MobilePrepaid: 8, Fixed: 9, Consumer: 10, Enterprise: 11},
	}
	if len(rows) != len(want) {
		t.Fatalf("ReadBack() = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestTableState_ReadBack_Empty(t *testing.T) {
	rows, report := NewTableState().ReadBack()
	if !report.Valid || len(rows) != 0 {
		t.Errorf("ReadBack() on empty table = %v, %+v", rows, report)
	}
}

func TestTableState_CompleteRows(t *testing.T) {
	table := NewTableState()
	table.Replace(sampleRows())
	partial := table.AddRow()
	fillRow(t, table, partial.ID, "ES", "1", "2")

	got := table.CompleteRows()
	if len(got) != 2 {
		t.Errorf("CompleteRows() = %d rows, want 2", len(got))
	}
}

func TestTableState_ConcurrentEdits(t *testing.T) {
	table := NewTableState()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			row := table.AddRow()
			table.SetCell(row.ID, 1, "5")
			table.Rows()
		}()
	}
	wg.Wait()

	if table.Len() != 20 {
		t.Errorf("Len() = %d, want 20", table.Len())
	}
}
