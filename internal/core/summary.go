package core

import (
	"github.com/JonMunkholm/basefigures/internal/schema"
	"github.com/montanaflynn/stats"
)

// ColumnSummary holds totals for one numeric column.
type ColumnSummary struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Summarize computes per-column totals over rows, in column order.
// With no rows every summary is zero apart from its label.
func Summarize(rows []BaseFigureRow) []ColumnSummary {
	out := make([]ColumnSummary, schema.NumericColumnCount)
	for i, col := range schema.NumericColumns {
		out[i].Label = col.Label
		if len(rows) == 0 {
			continue
		}

		data := make(stats.Float64Data, len(rows))
		for j, r := range rows {
			data[j] = float64(r.Values()[i])
		}

		// stats only errors on empty input, which is excluded above.
		out[i].Count = len(rows)
		out[i].Sum, _ = stats.Sum(data)
		out[i].Mean, _ = stats.Mean(data)
		out[i].Min, _ = stats.Min(data)
		out[i].Max, _ = stats.Max(data)
	}
	return out
}
