package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested match or combatant was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a match that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeFailedPrecondition indicates the match is not in a state that allows the operation
	CodeFailedPrecondition Code = "failed_precondition"

	// CodeInternal indicates internal engine error
	CodeInternal Code = "internal"

	// CodeUnavailable indicates a presentation resource could not be used
	CodeUnavailable Code = "unavailable"

	// CodeInterrupted indicates an exchange worker was interrupted mid-exchange
	CodeInterrupted Code = "interrupted"

	// CodeValidation indicates a validation error
	CodeValidation Code = "validation"
)

// Exit codes, one per fatal failure site.
const (
	ExitGeneric              = 1
	ExitAmbientAfterExchange = 25
	ExitExchangeInterrupted  = 36
	ExitPresentationInit     = 58
	ExitSetupMusic           = 84
	ExitVictoryMusic         = 105
	ExitMonsterBattleMusic   = 172
	ExitPlayerBattleMusic    = 191
)

const metaExitCode = "exit_code"

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// WithExitCode marks the error as fatal with the given process exit code
func (e *Error) WithExitCode(code int) *Error {
	return e.WithMeta(metaExitCode, code)
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// Preserve the code of an already coded error
	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		return &Error{
			Code:    arenaErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(arenaErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPreconditionf creates a formatted precondition error
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		return arenaErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsFatal reports whether the error carries a process exit code
func IsFatal(err error) bool {
	_, ok := exitCode(err)
	return ok
}

// ExitCode returns the process exit code for err: 0 for nil, the recorded exit
// code for fatal errors and ExitGeneric otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCode(err); ok {
		return code
	}
	return ExitGeneric
}

func exitCode(err error) (int, bool) {
	var arenaErr *Error
	if !errors.As(err, &arenaErr) {
		return 0, false
	}
	code, ok := arenaErr.Meta[metaExitCode].(int)
	return code, ok
}

// GetCode returns the error code
func GetCode(err error) Code {
	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		return arenaErr.Code
	}
	return CodeUnknown
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
