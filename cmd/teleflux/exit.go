package main

import (
	"context"
	"errors"
	"os"

	sharederrors "github.com/teleflux/teleflux/internal/shared/errors"
)

// Exit codes. Partial failures inside a run still exit 0: the run
// completed and the summary reports what went wrong.
const (
	ExitSuccess        = 0
	ExitConfigMissing  = 2
	ExitConfigInvalid  = 3
	ExitCritical       = 4
	ExitUnavailable    = 5
	ExitInterrupted    = 130
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor classifies a fatal run error into an exit code.
func exitCodeFor(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, os.ErrNotExist):
		return ExitConfigMissing
	case errors.Is(err, sharederrors.ErrEmptyMapping):
		return ExitConfigInvalid
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, sharederrors.ErrServiceUnavailable):
		return ExitUnavailable
	default:
		return ExitCritical
	}
}
