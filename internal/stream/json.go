package stream

import (
	"fmt"
	"io"
	"iter"

	"github.com/ginjaninja78/sales-reporter/internal/types"
)

// JSONStream is the structured-document input format. It has no reader yet:
// every read fails with types.ErrNotImplemented so a JSON input can never be
// mistaken for an empty one.
type JSONStream struct {
	source *closeOnce
}

// NewJSONStream takes ownership of source.
func NewJSONStream(source io.ReadCloser) *JSONStream {
	return &JSONStream{source: &closeOnce{source: source}}
}

// ReadTransaction always fails with types.ErrNotImplemented.
func (s *JSONStream) ReadTransaction() (types.Transaction, error) {
	return types.Transaction{}, fmt.Errorf("json transaction stream: %w", types.ErrNotImplemented)
}

// ReadTransactionUntilEnd yields a single types.ErrNotImplemented failure.
func (s *JSONStream) ReadTransactionUntilEnd() iter.Seq2[types.Transaction, error] {
	return readUntilEnd(s.ReadTransaction)
}

// Close releases the underlying source.
func (s *JSONStream) Close() error {
	return s.source.Close()
}
