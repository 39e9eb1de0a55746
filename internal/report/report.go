// =============================================================================
// Sales Reporter - Report Engine
// =============================================================================
//
// This module turns a TransactionStream into one report. The engine is a pure
// function of the command variant: Run switches over the sealed Command set
// and hands the stream to exactly one aggregation.
//
// REPORT PIPELINE:
//   1. Read the first transaction; an empty stream is an error
//   2. Dispatch on the command variant
//   3. Fold the rest of the stream into the report
//   4. Log processing statistics
//
// The stream is consumed once, forward-only. The engine never closes it; the
// caller that opened the stream owns its release.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/ginjaninja78/sales-reporter/internal/command"
	"github.com/ginjaninja78/sales-reporter/internal/stream"
	"github.com/ginjaninja78/sales-reporter/internal/types"
	"github.com/rs/zerolog"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the abstract outcome of one report. The concrete types are
// HourlyRevenue, DailyRevenue, CityExtreme and FullDump.
type Result interface {
	// Kind returns the command kind the result answers.
	Kind() command.Kind
}

// Stats contains statistics about one engine run.
type Stats struct {
	// Records is the number of transactions read from the stream.
	Records int

	// Elapsed is the time spent reading and aggregating.
	Elapsed time.Duration
}

// =============================================================================
// ENGINE STRUCTURE
// =============================================================================

// Options tunes report semantics that are not part of the command itself.
type Options struct {
	// FirstWeekday is the first day listed in the daily revenue report.
	FirstWeekday time.Weekday
}

// Engine computes reports from transaction streams.
type Engine struct {
	logger zerolog.Logger
	opts   Options
}

// NewEngine creates a new Engine.
//
// PARAMETERS:
//   - logger: Receives progress and statistics.
//   - opts: Report options.
//
// RETURNS:
//   - A new Engine instance.
func NewEngine(logger zerolog.Logger, opts Options) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "report").Logger(),
		opts:   opts,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run computes the report selected by cmd over every transaction in s.
//
// PARAMETERS:
//   - s: The transaction stream. It is consumed but not closed.
//   - cmd: The parsed command.
//
// RETURNS:
//   - The report result.
//   - types.ErrNoTransactionsFound if the stream holds no records, or the
//     first stream error (parse failure, not implemented, I/O).
func (e *Engine) Run(s stream.TransactionStream, cmd command.Command) (Result, error) {
	start := time.Now()
	logger := e.logger.With().Stringer("command", cmd).Logger()

	first, err := s.ReadTransaction()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: input holds no records", types.ErrNoTransactionsFound)
	}
	if err != nil {
		return nil, err
	}

	var stats Stats
	transactions := counted(prepend(first, s.ReadTransactionUntilEnd()), &stats.Records)

	logger.Debug().Msg("computing report")

	var result Result
	switch c := cmd.(type) {
	case command.TimeCommand:
		result, err = hourlyRevenue(transactions, c)
	case command.DailyRevenueCommand:
		result, err = dailyRevenue(transactions, c, e.opts.FirstWeekday)
	case command.CityExtremeCommand:
		result, err = cityExtreme(transactions, c)
	case command.FullCommand:
		result, err = fullDump(transactions)
	default:
		return nil, fmt.Errorf("%w: unsupported command %T", types.ErrInvalidCommand, cmd)
	}
	if err != nil {
		return nil, err
	}

	stats.Elapsed = time.Since(start)
	logger.Info().
		Int("records", stats.Records).
		Dur("elapsed", stats.Elapsed).
		Msg("report computed")

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// prepend yields first and then everything in rest.
func prepend(first types.Transaction, rest iter.Seq2[types.Transaction, error]) iter.Seq2[types.Transaction, error] {
	return func(yield func(types.Transaction, error) bool) {
		if !yield(first, nil) {
			return
		}
		for transaction, err := range rest {
			if !yield(transaction, err) {
				return
			}
		}
	}
}

// counted increments n for every transaction that passes through.
func counted(seq iter.Seq2[types.Transaction, error], n *int) iter.Seq2[types.Transaction, error] {
	return func(yield func(types.Transaction, error) bool) {
		for transaction, err := range seq {
			if err == nil {
				*n++
			}
			if !yield(transaction, err) {
				return
			}
		}
	}
}
