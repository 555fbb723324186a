package templates

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/schema"
	"github.com/a-h/templ"
)

// Table renders the editable table. Its body has id "rows" so added rows can
// be appended.
func Table(rows []core.EditableRow) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<table id="dataTable"><thead><tr>`)
		for _, label := range schema.Headers() {
			h.raw(`<th>`)
			h.text(label)
			h.raw(`</th>`)
		}
		h.raw(`<th></th></tr></thead><tbody id="rows">`)
		for _, row := range rows {
			h.render(Row(row))
		}
		h.raw(`</tbody></table>`)
	})
}

// Row renders one editable row.
func Row(row core.EditableRow) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<tr`)
		h.attr("id", "row-"+row.ID)
		h.raw(`><td><select name="value" hx-trigger="change" hx-swap="none"`)
		h.attr("hx-put", "/rows/"+row.ID+"/market")
		h.attr("aria-label", schema.MarketColumn.Label)
		h.raw(`><option value="">Select Local Market</option>`)
		for _, m := range schema.Markets {
			h.raw(`<option`)
			h.attr("value", m.String())
			h.flag("selected", row.Market == m.String())
			h.raw(`>`)
			h.text(m.String())
			h.raw(`</option>`)
		}
		h.raw(`</select></td>`)

		for i, v := range row.Values {
			h.render(Cell(row.ID, i+1, v, ""))
		}

		h.raw(`<td><button type="button" hx-target="closest tr" hx-swap="outerHTML"`)
		h.attr("hx-delete", "/rows/"+row.ID)
		h.raw(`>Remove</button></td></tr>`)
	})
}

// Cell renders one numeric input. col is the spreadsheet column index (1-5).
// A non-empty warning is shown under the input.
func Cell(rowID string, col int, value, warning string) templ.Component {
	return component(func(h *htmlWriter) {
		label := ""
		if c, ok := schema.NumericColumn(col); ok {
			label = c.Label
		}

		h.raw(`<td><input type="text" inputmode="numeric" name="value" hx-trigger="change" hx-target="closest td" hx-swap="outerHTML"`)
		h.attr("hx-put", fmt.Sprintf("/rows/%s/cells/%d", rowID, col))
		h.attr("aria-label", label)
		h.attr("value", value)
		h.raw(`>`)
		if warning != "" {
			h.raw(`<span class="warning" role="alert">`)
			h.text(warning)
			h.raw(`</span>`)
		}
		h.raw(`</td>`)
	})
}

// Summary renders the per-column totals of the complete rows. With oob set the
// section replaces the page's summary out of band.
func Summary(summary []core.ColumnSummary, oob bool) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="summary"`)
		if oob {
			h.attr("hx-swap-oob", "true")
		}
		h.raw(`><table><thead><tr><th></th>`)
		for _, s := range summary {
			h.raw(`<th>`)
			h.text(s.Label)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)

		summaryRow(h, "Total", summary, func(s core.ColumnSummary) float64 { return s.Sum })
		summaryRow(h, "Mean", summary, func(s core.ColumnSummary) float64 { return s.Mean })
		summaryRow(h, "Min", summary, func(s core.ColumnSummary) float64 { return s.Min })
		summaryRow(h, "Max", summary, func(s core.ColumnSummary) float64 { return s.Max })

		h.raw(`</tbody></table></section>`)
	})
}

func summaryRow(h *htmlWriter, name string, summary []core.ColumnSummary, pick func(core.ColumnSummary) float64) {
	h.raw(`<tr><th>`)
	h.text(name)
	h.raw(`</th>`)
	for _, s := range summary {
		h.raw(`<td>`)
		h.text(strconv.FormatFloat(pick(s), 'f', -1, 64))
		h.raw(`</td>`)
	}
	h.raw(`</tr>`)
}
