package templates

import (
	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/a-h/templ"
)

// HTMXScript is the htmx build the page loads.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

const pageStyle = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #1f2937; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #d1d5db; padding: .35rem .5rem; text-align: left; vertical-align: top; }
th { background: #f3f4f6; }
input[type=text] { width: 9rem; }
.warning { display: block; color: #b45309; font-size: .8rem; }
.alert { border-radius: .375rem; padding: .75rem 1rem; margin: 1rem 0; white-space: pre-line; }
.alert-error { background: #fef2f2; border: 1px solid #fca5a5; }
.alert-success { background: #f0fdf4; border: 1px solid #86efac; }
.alert-warning { background: #fffbeb; border: 1px solid #fcd34d; }
.code { color: #6b7280; font-size: .8rem; }
.actions { display: flex; gap: .75rem; align-items: center; }
`

// PageData is everything the full page needs.
type PageData struct {
	Rows    []core.EditableRow
	Summary []core.ColumnSummary
}

// Page renders the full upload page.
func Page(data PageData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>Local Market Base Figures</title>`)
		h.raw(`<script`)
		h.attr("src", HTMXScript)
		h.raw(`></script><style>` + pageStyle + `</style></head><body><main>`)
		h.raw(`<h1>Local Market Base Figures</h1>`)

		h.raw(`<form id="upload" hx-post="/import" hx-encoding="multipart/form-data" hx-target="#table" hx-swap="innerHTML">`)
		h.raw(`<input type="file" id="fileInput" name="file" accept=".xlsx,.xlsm" required>`)
		h.raw(`<button type="submit">Upload Excel</button> `)
		h.raw(`<a href="/template" download>Download template</a></form>`)

		h.raw(`<div id="alerts" aria-live="polite"></div>`)

		h.raw(`<section id="table">`)
		h.render(Table(data.Rows))
		h.raw(`</section>`)

		h.render(Summary(data.Summary, false))

		h.raw(`<div class="actions">`)
		h.raw(`<button type="button" hx-post="/rows" hx-target="#rows" hx-swap="beforeend">Add Row</button>`)
		h.raw(`<button type="button" hx-post="/submit" hx-target="#alerts" hx-swap="innerHTML">Submit</button>`)
		h.raw(`<a href="/export" download>Export complete rows</a>`)
		h.raw(`</div></main></body></html>`)
	})
}
