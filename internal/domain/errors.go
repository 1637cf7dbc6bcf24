package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrSetNotFound        = errors.New("project set not found")
	ErrInvalidProject     = errors.New("invalid project definition")
	ErrUnknownLanguage    = errors.New("cannot determine main language")
	ErrDuplicateTableName = errors.New("duplicate project name in table")
	ErrTargetsNotCovered  = errors.New("cheribuild targets not covered")
	ErrMissingSum         = errors.New("report has no SUM entry")
	ErrReportNotFound     = errors.New("report file not found")
)

// ExitError carries the exit status of a failed cloc run.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("cloc exited with status %d", e.Code)
}

// Status returns the exit status to propagate. Codes outside the range a
// process can report (signals, negative values) map to 1.
func (e *ExitError) Status() int {
	if e.Code <= 0 || e.Code > 255 {
		return 1
	}
	return e.Code
}
