package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead is the slack allowed on top of the file size for form framing.
const multipartOverhead = 1 << 20

// handleIndex renders the full page with the session's table.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	table := s.sessions.table(w, r)

	renderPartial(w, r, templates.Page(templates.PageData{
		Rows:    table.Rows(),
		Summary: core.Summarize(table.CompleteRows()),
	}))
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImport replaces the table with the rows of an uploaded spreadsheet.
// Nothing changes unless the whole sheet validates.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	table := s.sessions.table(w, r)

	name, data, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	result, err := s.service.Import(r.Context(), name, data)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	table.Replace(result.Rows)

	if wantsJSON(r) && !isHTMX(r) {
		writeJSON(w, http.StatusOK, RowsResponse{
			Rows:    table.Rows(),
			Summary: core.Summarize(result.Rows),
		})
		return
	}

	renderPartial(w, r,
		templates.Table(table.Rows()),
		templates.Summary(core.Summarize(result.Rows), true),
		templates.OOBAlerts(templates.SuccessAlert(
			fmt.Sprintf("Imported %d rows from %s.", len(result.Rows), result.FileName),
		)),
	)
}

// handleAddRow appends a blank row.
func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	row := s.sessions.table(w, r).AddRow()

	if wantsJSON(r) && !isHTMX(r) {
		writeJSON(w, http.StatusCreated, row)
		return
	}
	renderPartial(w, r, templates.Row(row))
}

// handleRemoveRow detaches one row. The htmx response is empty apart from the
// refreshed summary, so the row's <tr> is swapped out.
func (s *Server) handleRemoveRow(w http.ResponseWriter, r *http.Request) {
	table := s.sessions.table(w, r)

	if !table.RemoveRow(chi.URLParam(r, "rowID")) {
		s.respondError(w, r, core.ErrRowNotFound, http.StatusNotFound)
		return
	}

	if wantsJSON(r) && !isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	renderPartial(w, r, templates.Summary(core.Summarize(table.CompleteRows()), true))
}

// handleSetMarket applies a market selection.
func (s *Server) handleSetMarket(w http.ResponseWriter, r *http.Request) {
	table := s.sessions.table(w, r)

	row, err := table.SetMarket(chi.URLParam(r, "rowID"), r.FormValue("value"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if wantsJSON(r) && !isHTMX(r) {
		writeJSON(w, http.StatusOK, row)
		return
	}
	renderPartial(w, r, templates.Summary(core.Summarize(table.CompleteRows()), true))
}

// handleSetCell applies a live edit to one numeric input. A rejected value
// comes back as a blank cell with a warning; the request itself succeeds.
func (s *Server) handleSetCell(w http.ResponseWriter, r *http.Request) {
	table := s.sessions.table(w, r)
	rowID := chi.URLParam(r, "rowID")

	col, err := strconv.Atoi(chi.URLParam(r, "col"))
	if err != nil {
		err = fmt.Errorf("%w: %q", core.ErrInvalidColumn, chi.URLParam(r, "col"))
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	edit, err := table.SetCell(rowID, col, r.FormValue("value"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if wantsJSON(r) && !isHTMX(r) {
		writeJSON(w, http.StatusOK, CellEditResponse{
			RowID:   rowID,
			Column:  edit.Column,
			Value:   edit.Value,
			Warning: edit.Warning,
		})
		return
	}
	renderPartial(w, r,
		templates.Cell(rowID, col, edit.Value, edit.Warning),
		templates.Summary(core.Summarize(table.CompleteRows()), true),
	)
}

// handleSubmit validates the table and sends every row to the list store.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	table := s.sessions.table(w, r)

	result, err := s.service.Submit(r.Context(), table)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if wantsJSON(r) && !isHTMX(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	renderPartial(w, r, templates.SubmitAlert(result))
}

// readUpload reads the multipart "file" field, bounded by the configured size.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, core.ErrFileTooLarge
		}
		return "", nil, fmt.Errorf("%w: %v", core.ErrNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, core.ErrNoFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", core.ErrDecodeFailed, err)
	}
	return header.Filename, data, nil
}
