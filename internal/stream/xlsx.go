package stream

import (
	"io"
	"iter"

	"github.com/ginjaninja78/sales-reporter/internal/csvparser"
	"github.com/ginjaninja78/sales-reporter/internal/types"
	"github.com/ginjaninja78/sales-reporter/internal/xlsxparser"
)

// XLSXStream reads transactions from the rows of a worksheet.
type XLSXStream struct {
	source *closeOnce
	rows   *xlsxparser.RowReader
	opts   Options
	err    error
	closed bool
}

// NewXLSXStream takes ownership of source, opens the configured sheet and
// discards its header rows. The source is closed if construction fails.
func NewXLSXStream(source io.ReadCloser, opts Options) (*XLSXStream, error) {
	rows, err := xlsxparser.Open(source, opts.XLSX)
	if err != nil {
		source.Close()
		return nil, err
	}

	if err := rows.SkipHeader(opts.XLSX.HeaderRows); err != nil {
		rows.Close()
		source.Close()
		return nil, err
	}

	return &XLSXStream{
		source: &closeOnce{source: source},
		rows:   rows,
		opts:   opts,
	}, nil
}

// ReadTransaction returns the next transaction or io.EOF.
func (s *XLSXStream) ReadTransaction() (types.Transaction, error) {
	if s.err != nil {
		return types.Transaction{}, s.err
	}

	cells, row, err := s.rows.Next()
	if err == io.EOF {
		return types.Transaction{}, io.EOF
	}
	if err != nil {
		s.err = err
		return types.Transaction{}, err
	}

	// Trailing empty cells are not returned by the sheet reader.
	for len(cells) < types.FieldCount {
		cells = append(cells, "")
	}

	transaction, err := decodeRecord(csvparser.NewRecord(cells, row), s.opts.location(), true)
	if err != nil {
		s.err = err
		return types.Transaction{}, err
	}
	return transaction, nil
}

// ReadTransactionUntilEnd returns the remaining transactions as a lazy sequence.
func (s *XLSXStream) ReadTransactionUntilEnd() iter.Seq2[types.Transaction, error] {
	return readUntilEnd(s.ReadTransaction)
}

// Close releases the workbook and the underlying source.
func (s *XLSXStream) Close() error {
	if !s.closed {
		s.closed = true
		if err := s.rows.Close(); err != nil {
			s.source.Close()
			return err
		}
	}
	return s.source.Close()
}
