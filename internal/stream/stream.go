// =============================================================================
// Sales Reporter - Transaction Stream
// =============================================================================
//
// This module adapts an encoded input file into a lazy sequence of
// Transactions. Every supported input format implements TransactionStream;
// the format is picked from the file name before the stream is built:
//
//   .csv   - delimited text, header row discarded       (CSVStream)
//   .xlsx  - spreadsheet, header row discarded          (XLSXStream)
//   .json  - structured document, no reader yet         (JSONStream)
//
// A stream owns its byte source from construction until Close. Close is
// idempotent so callers can `defer stream.Close()` right after Open and rely
// on the source being released on both the success and the failure path.
//
// =============================================================================

package stream

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/sales-reporter/internal/config"
	"github.com/ginjaninja78/sales-reporter/internal/types"
)

// =============================================================================
// STREAM CONTRACT
// =============================================================================

// TransactionStream produces the transactions of one input source.
type TransactionStream interface {
	// ReadTransaction returns the next transaction, or io.EOF once the
	// source is exhausted. A record that cannot be decoded yields an error
	// matching types.ErrParseFailure; every later call returns it again.
	ReadTransaction() (types.Transaction, error)

	// ReadTransactionUntilEnd returns a lazy, forward-only sequence
	// equivalent to calling ReadTransaction until io.EOF. A failure is
	// yielded once as the final element. The sequence is not restartable:
	// once consumed, the source is exhausted.
	ReadTransactionUntilEnd() iter.Seq2[types.Transaction, error]

	// Close releases the underlying source. It is safe to call more than once.
	Close() error
}

// Options holds the decoding settings shared by all stream implementations.
type Options struct {
	// CSV contains settings for delimited-text input.
	CSV config.CSVSettings

	// XLSX contains settings for spreadsheet input.
	XLSX config.XLSXSettings

	// Location is applied to timestamps that carry no offset.
	Location *time.Location
}

// OptionsFromConfig builds stream options from the reporter configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	location, err := cfg.Location()
	if err != nil {
		return Options{}, err
	}

	return Options{
		CSV:      cfg.CSV,
		XLSX:     cfg.XLSX,
		Location: location,
	}, nil
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// =============================================================================
// FORMAT DETECTION
// =============================================================================

// Format identifies an input encoding.
type Format int

const (
	// FormatNone is an unrecognized input file.
	FormatNone Format = iota
	// FormatCSV is delimited text.
	FormatCSV
	// FormatJSON is a structured JSON document.
	FormatJSON
	// FormatXLSX is an Excel workbook.
	FormatXLSX
)

// String returns the lower-case name of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatXLSX:
		return "xlsx"
	default:
		return "none"
	}
}

// FormatInfo describes one supported input format.
type FormatInfo struct {
	Format      Format
	Extension   string
	Implemented bool
}

// Formats lists every input format known to the reporter.
func Formats() []FormatInfo {
	return []FormatInfo{
		{Format: FormatCSV, Extension: ".csv", Implemented: true},
		{Format: FormatXLSX, Extension: ".xlsx", Implemented: true},
		{Format: FormatJSON, Extension: ".json", Implemented: false},
	}
}

// DetectFormat selects the input format from the file name suffix.
// The comparison is case-insensitive.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, info := range Formats() {
		if info.Extension == ext {
			return info.Format
		}
	}
	return FormatNone
}

// =============================================================================
// FACTORY
// =============================================================================

// Open opens the file and builds the stream for the given format.
//
// PARAMETERS:
//   - path: The input file.
//   - format: The format detected for the file.
//   - opts: Decoding options.
//
// RETURNS:
//   - The TransactionStream. The caller must Close it.
//   - An error matching types.ErrNoTransactionsFound if the file does not
//     exist or the format is not recognized, or any error raised while
//     reading the header.
func Open(path string, format Format, opts Options) (TransactionStream, error) {
	if format == FormatNone {
		return nil, fmt.Errorf("%w: unsupported input format for %s", types.ErrNoTransactionsFound, filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", types.ErrNoTransactionsFound, err)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}

	switch format {
	case FormatCSV:
		return NewCSVStream(file, opts)
	case FormatXLSX:
		return NewXLSXStream(file, opts)
	case FormatJSON:
		return NewJSONStream(file), nil
	default:
		file.Close()
		return nil, fmt.Errorf("%w: unsupported input format %s", types.ErrNoTransactionsFound, format)
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// readUntilEnd turns a ReadTransaction function into a lazy sequence.
func readUntilEnd(read func() (types.Transaction, error)) iter.Seq2[types.Transaction, error] {
	return func(yield func(types.Transaction, error) bool) {
		for {
			transaction, err := read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(types.Transaction{}, err)
				return
			}
			if !yield(transaction, nil) {
				return
			}
		}
	}
}

// closeOnce closes a source the first time it is called.
type closeOnce struct {
	source io.Closer
	closed bool
}

func (c *closeOnce) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.source.Close()
}
