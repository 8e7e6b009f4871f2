// Package clierr carries structured errors across the CLI boundary:
// a stable machine-readable code, a message for humans, and optional
// details for scripted consumers.
package clierr

import "fmt"

// Error codes. Stable: scripts match on these.
const (
	TaskNotFound      = "TASK_NOT_FOUND"
	AmbiguousTaskRef  = "AMBIGUOUS_TASK_REF"
	ListNotFound      = "LIST_NOT_FOUND"
	ListAlreadyExists = "LIST_ALREADY_EXISTS"
	InvalidInput      = "INVALID_INPUT"
	InvalidPriority   = "INVALID_PRIORITY"
	InvalidDate       = "INVALID_DATE"
	InvalidSort       = "INVALID_SORT"
	InvalidFilter     = "INVALID_FILTER"
	InvalidGroupBy    = "INVALID_GROUP_BY"
	NoChanges         = "NO_CHANGES"
	ConfirmationReq   = "CONFIRMATION_REQUIRED"
	InternalError     = "INTERNAL_ERROR"
)

// Error is a coded CLI error.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

// ExitCode maps the error to a process exit code: 2 for internal
// failures, 1 for everything else.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2
	}
	return 1
}

// New builds an Error from a code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// WithDetails attaches a details map and returns the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// SilentError carries an exit code with no message of its own. Batch
// commands return it after their per-item results are already printed.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string { return fmt.Sprintf("exit %d", e.Code) }
