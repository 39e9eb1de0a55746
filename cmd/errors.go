package cmd

import (
	"errors"

	"github.com/ginjaninja78/sales-reporter/internal/types"
)

// Process exit codes.
const (
	ExitOK                  = 0
	ExitFailure             = 1
	ExitInvalidCommand      = 2
	ExitNoTransactionsFound = 3
	ExitParseFailure        = 4
	ExitNotImplemented      = 5
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, types.ErrInvalidCommand):
		return ExitInvalidCommand
	case errors.Is(err, types.ErrNoTransactionsFound):
		return ExitNoTransactionsFound
	case errors.Is(err, types.ErrParseFailure):
		return ExitParseFailure
	case errors.Is(err, types.ErrNotImplemented):
		return ExitNotImplemented
	default:
		return ExitFailure
	}
}
