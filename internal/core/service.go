package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/basefigures/internal/logging"
	"github.com/google/uuid"
)

var (
	// ErrUnsupportedFile is returned for file names the decoder does not accept.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrDecodeFailed wraps any failure to turn file bytes into a grid.
	ErrDecodeFailed = errors.New("failed to read file")

	// ErrNoFile is returned when no file was selected.
	ErrNoFile = errors.New("no file provided")

	// ErrEmptyFile is returned for zero-byte uploads.
	ErrEmptyFile = errors.New("empty file")

	// ErrFileTooLarge is returned when an upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrSubmissionFailed stands in for sink errors no message pattern recognizes.
	ErrSubmissionFailed = errors.New("submission failed")
)

// Decoder turns spreadsheet bytes into a grid.
type Decoder interface {
	// Supports reports whether fileName has an extension the decoder can read.
	Supports(fileName string) bool

	// Decode reads the first sheet of data, header row first.
	Decode(data []byte) (RawGrid, error)
}

// Sink accepts one list item. Each call is an independent create/update.
type Sink interface {
	Submit(ctx context.Context, rec Record) error
}

// Service composes decoding, validation and submission.
// It holds no table state: callers own their TableState.
type Service struct {
	decoder     Decoder
	sink        Sink
	maxFileSize int64
	limiter     *DecodeLimiter
}

// Option configures a Service.
type Option func(*Service)

// WithMaxFileSize rejects uploads larger than n bytes. Zero disables the check.
func WithMaxFileSize(n int64) Option {
	return func(s *Service) {
		s.maxFileSize = n
	}
}

// WithDecodeLimiter bounds concurrent decodes. Without it decodes are unbounded.
func WithDecodeLimiter(l *DecodeLimiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

// NewService creates a Service that decodes with decoder and submits to sink.
func NewService(decoder Decoder, sink Sink, opts ...Option) *Service {
	s := &Service{decoder: decoder, sink: sink}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportResult is a successfully validated spreadsheet.
type ImportResult struct {
	FileName string
	Rows     []BaseFigureRow
	Report   ValidationReport
}

// Import decodes and validates one spreadsheet.
//
// The flow is all-or-nothing: a wrong file type, a decode failure or any
// validation error returns an error and no rows. On success the caller replaces
// its table with ImportResult.Rows. A *ValidationFailedError carries the report.
func (s *Service) Import(ctx context.Context, fileName string, data []byte) (ImportResult, error) {
	logger := logging.WithFields(ctx, "file", fileName, "bytes", len(data))

	grid, err := s.Decode(ctx, fileName, data)
	if err != nil {
		logger.Warn("import rejected", "error", err)
		return ImportResult{}, err
	}

	report := Validate(grid)
	if !report.Valid {
		logger.Info("import failed validation",
			"rows", grid.DataRows(),
			"invalid_rows", report.InvalidRows(),
			"errors", len(report.Errors),
		)
		return ImportResult{}, &ValidationFailedError{Report: report}
	}

	rows := FromGrid(grid)
	logger.Info("import validated", "rows", len(rows))

	return ImportResult{FileName: fileName, Rows: rows, Report: report}, nil
}

// Decode applies the file input checks and decodes data without validating it.
func (s *Service) Decode(ctx context.Context, fileName string, data []byte) (RawGrid, error) {
	if fileName == "" && len(data) == 0 {
		return nil, ErrNoFile
	}
	if !s.decoder.Supports(fileName) {
		return nil, fmt.Errorf("%s: %w", fileName, ErrUnsupportedFile)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, len(data), s.maxFileSize)
	}

	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
		defer s.limiter.Release()
	}

	grid, err := s.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return grid, nil
}

// RowFailure records one row the sink rejected.
// Error is the user-facing message; the sink's own error only goes to the log.
type RowFailure struct {
	Position int    `json:"position"` // 1-based position in display order
	Market   string `json:"market"`
	Error    string `json:"error"`
	Code     string `json:"code"`
}

// SubmitResult summarizes one submission.
type SubmitResult struct {
	SubmissionID string        `json:"submissionId"`
	Total        int           `json:"total"`
	Submitted    int           `json:"submitted"`
	Failed       int           `json:"failed"`
	Failures     []RowFailure  `json:"failures,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// Submit validates the table in display order and sends each row to the sink.
//
// An invalid table (including rows added but never filled in) returns a
// *ValidationFailedError and nothing is sent. Otherwise every row is sent
// independently: a failing row is logged and counted, and the remaining rows
// are still sent. There is no rollback and no retry.
func (s *Service) Submit(ctx context.Context, table *TableState) (SubmitResult, error) {
	result := SubmitResult{SubmissionID: uuid.NewString()}
	logger := logging.WithFields(ctx, "submission_id", result.SubmissionID)

	rows, report := table.ReadBack()
	if !report.Valid {
		logger.Info("submission rejected", "errors", len(report.Errors))
		return result, &ValidationFailedError{Report: report}
	}

	start := time.Now()
	result.Total = len(rows)

	for i, rec := range ToRecords(rows) {
		if err := s.sink.Submit(ctx, rec); err != nil {
			logger.Error("row submission failed",
				"position", i+1,
				"market", rec.Title,
				"error", err,
			)
			msg := rowFailureMessage(err)
			result.Failed++
			result.Failures = append(result.Failures, RowFailure{
				Position: i + 1,
				Market:   rec.Title,
				Error:    msg.Message,
				Code:     msg.Code,
			})
			continue
		}
		result.Submitted++
	}

	result.Duration = time.Since(start)
	logger.Info("submission complete",
		"total", result.Total,
		"submitted", result.Submitted,
		"failed", result.Failed,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// rowFailureMessage maps a sink error for display, falling back to SUB003.
func rowFailureMessage(err error) UserMessage {
	if IsUserFacing(err) {
		return MapError(err)
	}
	return MapError(ErrSubmissionFailed)
}
