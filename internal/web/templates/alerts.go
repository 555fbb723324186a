package templates

import (
	"fmt"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/a-h/templ"
)

// ErrorAlert renders a mapped error with its code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="alert alert-error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<div>`)
			h.text(action)
			h.raw(`</div>`)
		}
		if code != "" {
			h.raw(`<div class="code">Code: `)
			h.text(code)
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
	})
}

// ValidationAlert renders the combined validation report, one line per row.
func ValidationAlert(report core.ValidationReport) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="alert alert-error" role="alert"><strong>Errors in spreadsheet:</strong><ul>`)
		for _, line := range report.Lines() {
			h.raw(`<li>`)
			h.text(line)
			h.raw(`</li>`)
		}
		h.raw(`</ul></div>`)
	})
}

// SuccessAlert renders a confirmation.
func SuccessAlert(message string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="alert alert-success" role="status">`)
		h.text(message)
		h.raw(`</div>`)
	})
}

// SubmitAlert renders the outcome of a submission, listing rows the store rejected.
func SubmitAlert(result core.SubmitResult) templ.Component {
	if result.Failed == 0 {
		return SuccessAlert(fmt.Sprintf("Submitted %d of %d rows.", result.Submitted, result.Total))
	}
	return component(func(h *htmlWriter) {
		h.raw(`<div class="alert alert-warning" role="alert"><strong>`)
		h.text(fmt.Sprintf("Submitted %d of %d rows; %d failed.", result.Submitted, result.Total, result.Failed))
		h.raw(`</strong><ul>`)
		for _, f := range result.Failures {
			h.raw(`<li>`)
			line := fmt.Sprintf("Row %d (%s): %s", f.Position, f.Market, f.Error)
			if f.Code != "" {
				line += " (" + f.Code + ")"
			}
			h.text(line)
			h.raw(`</li>`)
		}
		h.raw(`</ul><div class="code">Submission `)
		h.text(result.SubmissionID)
		h.raw(`</div></div>`)
	})
}

// OOBAlerts replaces the page's alert area out of band with inner.
func OOBAlerts(inner templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="alerts" aria-live="polite" hx-swap-oob="true">`)
		h.render(inner)
		h.raw(`</div>`)
	})
}
