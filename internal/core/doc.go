// Package core provides the business logic for importing, editing and submitting
// local-market base figures.
//
// This package has no UI or transport dependencies. It can be used by the web
// handlers, the CLI, or tests without modification.
//
// # Pipeline
//
// A spreadsheet moves through the package in four steps:
//
//  1. A [Decoder] turns file bytes into a [RawGrid] of [CellValue] cells
//  2. [Validate] checks every data row and returns a [ValidationReport]
//  3. [FromGrid] converts a valid grid into [BaseFigureRow] records
//  4. [TableState.Replace] loads the records into the user's editable table
//
// Import is all-or-nothing: if any cell is invalid the table is left untouched
// and the report lists every offending cell.
//
// # Editing
//
// [TableState] is owned by the caller (one per page session). Rows can be added,
// removed and edited; numeric edits are checked as they are typed by
// [CheckLiveValue], which resets rejected cells to blank.
//
// # Submission
//
// [Service.Submit] reads the table back in display order, validates it again and
// sends one [Record] per row to a [Sink]. Rows are independent: a failing row is
// logged and counted without affecting the others.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE005: File errors (type, decoding, size)
//   - VAL001-VAL002: Validation errors
//   - TBL001-TBL002: Table edit errors
//   - SUB001-SUB003: Submission errors
//   - REQ001-REQ003: Request errors (cancelled, timeout, rate limit)
package core
