package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted appropriately based on request type (HTMX, JSON, or HTML)
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusFor(err))
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered in appropriate format for the client
//
// htmx does not swap 4xx/5xx responses by default, so htmx errors are sent as
// 200 with HX-Retarget pointing at the page's alert area.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/logging"
	"github.com/JonMunkholm/basefigures/internal/web/templates"
	"github.com/a-h/templ"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// ValidationResponse is the JSON body for a rejected import or submission.
type ValidationResponse struct {
	Valid   bool                   `json:"valid"`
	Message string                 `json:"message"`
	Errors  []core.ValidationError `json:"errors"`
	Code    string                 `json:"code"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var vf *core.ValidationFailedError
	switch {
	case errors.As(err, &vf):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrDecoderBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrNoFile),
		errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, core.ErrDecodeFailed),
		errors.Is(err, core.ErrInvalidColumn),
		errors.Is(err, core.ErrInvalidMarket):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an appropriate response
// based on the request type (HTMX, JSON, or HTML). Validation failures carry
// their full report instead of a single message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	var vf *core.ValidationFailedError
	if errors.As(err, &vf) {
		s.respondValidation(w, r, vf.Report, userMsg, statusCode)
		return
	}

	// Return user-friendly error based on request type
	if isHTMX(r) {
		retarget(w)
		renderPartial(w, r, templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code))
	} else if wantsJSON(r) {
		writeJSON(w, statusCode, ErrorResponse{
			Error:   userMsg.Message,
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
	} else {
		http.Error(w, userMsg.Message+" ("+userMsg.Code+")", statusCode)
	}
}

// respondValidation renders a combined validation report.
func (s *Server) respondValidation(w http.ResponseWriter, r *http.Request, report core.ValidationReport, msg core.UserMessage, statusCode int) {
	switch {
	case isHTMX(r):
		retarget(w)
		renderPartial(w, r, templates.ValidationAlert(report))
	case wantsJSON(r):
		writeJSON(w, statusCode, ValidationResponse{
			Valid:   false,
			Message: report.Message(),
			Errors:  report.Errors,
			Code:    msg.Code,
		})
	default:
		http.Error(w, report.Message(), statusCode)
	}
}

// retarget points an htmx error response at the alert area.
func retarget(w http.ResponseWriter) {
	w.Header().Set("HX-Retarget", "#alerts")
	w.Header().Set("HX-Reswap", "innerHTML")
}

// renderPartial writes an HTML fragment, logging render failures.
func renderPartial(w http.ResponseWriter, r *http.Request, components ...templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, c := range components {
		if err := c.Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
			return
		}
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}

	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
