// =============================================================================
// Sales Reporter - CSV Parser Module
// =============================================================================
//
// This module splits delimited-text transaction exports into records and
// fields. It handles:
//   - Different delimiters (comma, semicolon, pipe, tab, etc.)
//   - Quoted fields containing the delimiter or line breaks
//   - Doubled quotes inside quoted fields ("" is a literal ")
//   - Non-UTF-8 source encodings and byte order marks
//
// Two entry points are provided:
//   - ParseLine splits a single raw record.
//   - Reader streams records from a byte source, one at a time, so memory use
//     does not grow with the size of the file.
//
// Both hand out a Record whose fields are consumed left to right through
// ParseNextField.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/sales-reporter/internal/config"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoMoreFields is returned by ParseNextField once every field was consumed.
var ErrNoMoreFields = errors.New("no more fields in record")

// =============================================================================
// RECORD
// =============================================================================

// Record is one parsed input record. Fields are handed out in order by
// ParseNextField; a Record is not safe for concurrent use.
type Record struct {
	fields []string
	next   int
	line   int
}

// NewRecord wraps already split fields, e.g. the cells of a spreadsheet row.
func NewRecord(fields []string, line int) *Record {
	return &Record{fields: fields, line: line}
}

// ParseNextField returns the next field of the record.
// It returns ErrNoMoreFields when called past the last field.
func (r *Record) ParseNextField() (string, error) {
	if r.next >= len(r.fields) {
		return "", fmt.Errorf("%w (record has %d)", ErrNoMoreFields, len(r.fields))
	}
	field := r.fields[r.next]
	r.next++
	return field, nil
}

// Len returns the total number of fields in the record.
func (r *Record) Len() int {
	return len(r.fields)
}

// Remaining returns the number of fields not yet consumed.
func (r *Record) Remaining() int {
	return len(r.fields) - r.next
}

// Line returns the 1-based line the record starts on.
func (r *Record) Line() int {
	return r.line
}

// =============================================================================
// SINGLE LINE PARSING
// =============================================================================

// ParseLine splits one raw record into fields. It is a helper for a record
// already held as text; streams read through Reader, which yields the same
// Record type.
//
// PARAMETERS:
//   - line: The raw record text. A quoted field may span line breaks.
//   - settings: The CSV settings (only the delimiter and trimming apply).
//
// RETURNS:
//   - The Record, positioned before its first field.
//   - An error if the text is empty, malformed, or holds more than one record.
func ParseLine(line string, settings config.CSVSettings) (*Record, error) {
	reader := csv.NewReader(strings.NewReader(line))
	if err := configureReader(reader, settings); err != nil {
		return nil, err
	}

	fields, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty record")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}

	if _, err := reader.Read(); err != io.EOF {
		return nil, fmt.Errorf("line holds more than one record")
	}

	return &Record{fields: fields, line: 1}, nil
}

// =============================================================================
// STREAMING READER
// =============================================================================

// Reader reads records one at a time from a byte source.
//
// USAGE:
//   reader, err := NewReader(file, settings)
//   if err != nil {
//       return err
//   }
//   if err := reader.SkipHeader(settings.HeaderRows); err != nil {
//       return err
//   }
//   for {
//       record, err := reader.Read()
//       if err == io.EOF {
//           break
//       }
//       ...
//   }
//
// The Reader does not own the byte source; closing it is up to the caller.
type Reader struct {
	reader *csv.Reader
}

// NewReader creates a streaming record reader.
//
// PARAMETERS:
//   - source: The raw bytes of the file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Reader.
//   - An error if the delimiter or encoding is not supported.
func NewReader(source io.Reader, settings config.CSVSettings) (*Reader, error) {
	decoded, err := decode(source, settings.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	if err := configureReader(reader, settings); err != nil {
		return nil, err
	}

	return &Reader{reader: reader}, nil
}

// SkipHeader discards the first n records.
// Reaching the end of input while skipping is not an error; the following
// Read simply returns io.EOF.
func (r *Reader) SkipHeader(n int) error {
	for i := 0; i < n; i++ {
		_, err := r.reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading header row %d: %w", i+1, err)
		}
	}
	return nil
}

// Read returns the next record, or io.EOF when the input is exhausted.
// Blank lines are skipped.
func (r *Reader) Read() (*Record, error) {
	fields, err := r.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	line, _ := r.reader.FieldPos(0)
	return &Record{fields: fields, line: line}, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	// Set the delimiter.
	// Handle special cases for common delimiters.
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	case "", ",", "comma":
		reader.Comma = ','
	default:
		comma, size := utf8.DecodeRuneInString(settings.Delimiter)
		if size != len(settings.Delimiter) || comma == '"' || comma == '\r' || comma == '\n' || comma == utf8.RuneError {
			return fmt.Errorf("unsupported delimiter %q", settings.Delimiter)
		}
		reader.Comma = comma
	}

	// Field counts are checked by the caller so the error can name the record.
	reader.FieldsPerRecord = -1

	// Quotes must follow the standard rules: a doubled quote is a literal quote.
	reader.LazyQuotes = false

	reader.TrimLeadingSpace = settings.TrimLeadingSpace

	return nil
}

// decode wraps the source so it yields UTF-8, honoring a byte order mark.
func decode(source io.Reader, encodingName string) (io.Reader, error) {
	if encodingName == "" {
		encodingName = "utf-8"
	}

	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encodingName, err)
	}

	return transform.NewReader(source, unicode.BOMOverride(enc.NewDecoder())), nil
}
