// =============================================================================
// Sales Reporter - Error Taxonomy
// =============================================================================
//
// Every failure the reporter can surface belongs to one of four kinds. All of
// them are fatal: they propagate unhandled to the command-line boundary, which
// maps them to an exit code. Nothing in the core recovers, retries or produces
// a partial report.
//
//   ErrInvalidCommand      - bad argument count or unrecognized command grammar
//   ErrNoTransactionsFound - input missing, empty, unsupported, or zero records
//   ErrParseFailure        - a record could not be decoded into a Transaction
//   ErrNotImplemented      - the selected input format has no working reader
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrInvalidCommand is returned when the arguments do not form a valid command.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrNoTransactionsFound is returned when there is nothing to report on.
	ErrNoTransactionsFound = errors.New("no transactions found")

	// ErrParseFailure is returned when an input record cannot be decoded.
	ErrParseFailure = errors.New("parse failure")

	// ErrNotImplemented is returned by input formats that have no reader yet.
	ErrNotImplemented = errors.New("not implemented")
)

// =============================================================================
// PARSE ERROR
// =============================================================================

// ParseError describes a single record that could not be decoded.
// errors.Is(err, ErrParseFailure) is true for every ParseError.
type ParseError struct {
	// Line is the 1-based line (or spreadsheet row) the record starts on.
	Line int

	// Field is the name of the field that failed, empty for record-level failures
	// such as a wrong field count.
	Field string

	// Value is the raw text that failed to decode.
	Value string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: line %d: %v", ErrParseFailure, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: line %d, field '%s': %v (value: '%s')",
		ErrParseFailure,
		e.Line,
		e.Field,
		e.Err,
		e.Value,
	)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ParseError as a kind of ErrParseFailure.
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailure
}
