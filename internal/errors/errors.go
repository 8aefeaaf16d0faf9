// Package apperrors defines the error taxonomy and process exit codes of utilmon.
package apperrors

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess = 0 // Normal completion, including a sampling phase cut short by a read failure.
	ExitFailure = 1 // Startup failed: series allocation or the baseline CPU read.
)

// ReadError reports a counter source that is missing or malformed.
type ReadError struct {
	// Source names the pseudo-file or API that failed, e.g. "/proc/stat".
	Source string
	// Cause is the underlying I/O or parse error.
	Cause error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Cause)
}

func (e ReadError) Unwrap() error { return e.Cause }

// AllocationError reports a metric series buffer that could not be reserved.
type AllocationError struct {
	// Metric is the series that was being allocated ("memory" or "cpu").
	Metric string
	// Requested is the number of samples asked for.
	Requested int
}

func (e AllocationError) Error() string {
	return fmt.Sprintf("cannot allocate %s series for %d samples", e.Metric, e.Requested)
}

// IsReadError reports whether err wraps a ReadError.
func IsReadError(err error) bool {
	var re ReadError
	return errors.As(err, &re)
}

// IsAllocationError reports whether err wraps an AllocationError.
func IsAllocationError(err error) bool {
	var ae AllocationError
	return errors.As(err, &ae)
}

// ExitCode maps an error returned by the run loop to a process exit status.
// Only startup failures reach this point; a read failure during sampling
// ends the loop without surfacing an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
