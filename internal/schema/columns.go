package schema

// Column describes one spreadsheet column.
type Column struct {
	Index int    // Zero-based position in the spreadsheet row
	Label string // Header text in the spreadsheet and the editable table
	Field string // Field name in the submitted list item
}

// Letter returns the spreadsheet column letter for the column.
func (c Column) Letter() string {
	return ColumnLetter(c.Index)
}

// NumericColumnCount is the number of subscriber-base columns after the market.
const NumericColumnCount = 5

// MarketColumn is always the first column.
var MarketColumn = Column{Index: 0, Label: "LM", Field: "Title"}

// NumericColumns lists the subscriber-base columns in spreadsheet order.
var NumericColumns = [NumericColumnCount]Column{
	{Index: 1, Label: "Base-Mobile Postpaid", Field: "Base_Mobile_Postpaid"},
	{Index: 2, Label: "Base-Mobile Prepaid", Field: "Base_Mobile_Prepaid"},
	{Index: 3, Label: "Base-Fixed", Field: "Base_Fixed"},
	{Index: 4, Label: "Base-Consumer", Field: "Base_Consumer"},
	{Index: 5, Label: "Base-Enterprise", Field: "Base_Enterprise"},
}

// Columns returns the market column followed by the numeric columns.
func Columns() []Column {
	cols := make([]Column, 0, NumericColumnCount+1)
	cols = append(cols, MarketColumn)
	cols = append(cols, NumericColumns[:]...)
	return cols
}

// Headers returns the header row of a well-formed spreadsheet.
func Headers() []string {
	cols := Columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}

// NumericColumn returns the numeric column at spreadsheet index idx (1-5).
func NumericColumn(idx int) (Column, bool) {
	if idx < 1 || idx > NumericColumnCount {
		return Column{}, false
	}
	return NumericColumns[idx-1], true
}

// ColumnLetter converts a zero-based column index to its letter: 0 -> "A", 5 -> "F".
// Indexes past Z continue as AA, AB, ... so ragged rows still get a label.
func ColumnLetter(idx int) string {
	if idx < 0 {
		return ""
	}
	var b []byte
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}
