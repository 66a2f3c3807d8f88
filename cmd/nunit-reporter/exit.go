package main

import (
	"errors"

	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitInvalidInput = 2
	exitWriteFailed  = 3
)

// exitError carries a specific process exit code. Silent errors have already
// been reported to the user.
type exitError struct {
	code   int
	msg    string
	silent bool
}

func (e *exitError) Error() string {
	return e.msg
}

func isSilent(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.silent
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var (
		ee       *exitError
		parseErr *reporterrors.ParseError
		validErr *reporterrors.ValidationError
		writeErr *reporterrors.WriteError
	)
	switch {
	case errors.As(err, &ee):
		return ee.code
	case errors.As(err, &writeErr):
		return exitWriteFailed
	case errors.As(err, &parseErr), errors.As(err, &validErr):
		return exitInvalidInput
	default:
		return exitFailure
	}
}
