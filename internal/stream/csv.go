package stream

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/ginjaninja78/sales-reporter/internal/csvparser"
	"github.com/ginjaninja78/sales-reporter/internal/types"
)

// CSVStream reads transactions from delimited text.
type CSVStream struct {
	source *closeOnce
	reader *csvparser.Reader
	opts   Options
	err    error
}

// NewCSVStream takes ownership of source and discards the configured number
// of header lines. The source is closed if construction fails.
func NewCSVStream(source io.ReadCloser, opts Options) (*CSVStream, error) {
	reader, err := csvparser.NewReader(source, opts.CSV)
	if err != nil {
		source.Close()
		return nil, err
	}

	if err := reader.SkipHeader(opts.CSV.HeaderRows); err != nil {
		source.Close()
		return nil, wrapReadError(err)
	}

	return &CSVStream{
		source: &closeOnce{source: source},
		reader: reader,
		opts:   opts,
	}, nil
}

// ReadTransaction returns the next transaction or io.EOF.
func (s *CSVStream) ReadTransaction() (types.Transaction, error) {
	if s.err != nil {
		return types.Transaction{}, s.err
	}

	record, err := s.reader.Read()
	if err == io.EOF {
		return types.Transaction{}, io.EOF
	}
	if err != nil {
		s.err = wrapReadError(err)
		return types.Transaction{}, s.err
	}

	transaction, err := decodeRecord(record, s.opts.location(), false)
	if err != nil {
		s.err = err
		return types.Transaction{}, err
	}
	return transaction, nil
}

// ReadTransactionUntilEnd returns the remaining transactions as a lazy sequence.
func (s *CSVStream) ReadTransactionUntilEnd() iter.Seq2[types.Transaction, error] {
	return readUntilEnd(s.ReadTransaction)
}

// Close releases the underlying source.
func (s *CSVStream) Close() error {
	return s.source.Close()
}

// wrapReadError reports malformed quoting as a parse failure and anything
// else as an I/O failure.
func wrapReadError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &types.ParseError{Line: csvErr.StartLine, Err: csvErr.Err}
	}
	return fmt.Errorf("failed to read input: %w", err)
}
