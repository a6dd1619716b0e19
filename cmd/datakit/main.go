package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Result produced
	ExitNoResult = 1 // Command ran, but produced no usable result
	ExitError    = 2 // Input, configuration or runtime error
)

// NoResultError indicates that the command itself ran fine, but there
// was nothing to compute: every input value was non-numeric, or every
// source in a batch failed.
type NoResultError struct {
	Message string
}

func (e *NoResultError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var noResultErr *NoResultError
		if errors.As(err, &noResultErr) {
			os.Exit(ExitNoResult)
		}

		// All other errors are input/configuration/runtime errors
		os.Exit(ExitError)
	}
}
