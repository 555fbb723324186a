package web

import (
	"bytes"
	"net/http"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/decode"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RowsResponse is the JSON read-back of a session's table.
type RowsResponse struct {
	Rows     []core.EditableRow     `json:"rows"`
	Summary  []core.ColumnSummary   `json:"summary"`
	Report   *core.ValidationReport `json:"report,omitempty"`
	Complete int                    `json:"complete"`
}

// CellEditResponse is the JSON outcome of a live edit.
type CellEditResponse struct {
	RowID   string `json:"rowId"`
	Column  int    `json:"column"`
	Value   string `json:"value"`
	Warning string `json:"warning,omitempty"`
}

// ValidateResponse is the JSON result of a dry-run validation.
type ValidateResponse struct {
	FileName string                 `json:"fileName"`
	Rows     int                    `json:"rows"`
	Valid    bool                   `json:"valid"`
	Message  string                 `json:"message,omitempty"`
	Errors   []core.ValidationError `json:"errors"`
}

// handleAPIRows returns the table in display order with its current validation state.
// It never starts a session: without a session cookie the table is empty.
func (s *Server) handleAPIRows(w http.ResponseWriter, r *http.Request) {
	table := s.sessions.existing(r)

	complete := table.CompleteRows()
	_, report := table.ReadBack()

	writeJSON(w, http.StatusOK, RowsResponse{
		Rows:     table.Rows(),
		Summary:  core.Summarize(complete),
		Report:   &report,
		Complete: len(complete),
	})
}

// handleAPIValidate validates an uploaded spreadsheet without touching the table.
func (s *Server) handleAPIValidate(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	grid, err := s.service.Decode(r.Context(), name, data)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	report := core.Validate(grid)
	errs := report.Errors
	if errs == nil {
		errs = []core.ValidationError{}
	}
	writeJSON(w, http.StatusOK, ValidateResponse{
		FileName: name,
		Rows:     grid.DataRows(),
		Valid:    report.Valid,
		Message:  report.Message(),
		Errors:   errs,
	})
}

// handleTemplate serves an empty workbook with the expected header row.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := decode.WriteTemplate(&buf); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeWorkbook(w, "base-figures-template.xlsx", buf.Bytes())
}

// handleExport serves the session's complete rows as a workbook that imports cleanly.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rows := s.sessions.existing(r).CompleteRows()

	var buf bytes.Buffer
	if err := decode.WriteGrid(&buf, core.ToGrid(rows)); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeWorkbook(w, "base-figures.xlsx", buf.Bytes())
}

func writeWorkbook(w http.ResponseWriter, fileName string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
