// Package domain holds the error taxonomy shared across the core: the
// user-level CoreError carrying a stable code, message, and wrapped cause,
// plus the separate internal-invariant channel.
package domain

import "fmt"

// CoreError represents an error surfaced to a caller of the core, carrying
// a stable Code alongside the human-readable Message and any wrapped Cause.
type CoreError struct {
	Code    string
	Message string
	Cause   error
}

func (e CoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e CoreError) Unwrap() error {
	return e.Cause
}

// Core error codes, one per notice kind plus the generic ones needed by
// the CLI/config/fixture layers.
const (
	ErrCodeUnsupportedOperation  = "UNSUPPORTED_OPERATION"
	ErrCodeInvalidOperation      = "INVALID_OPERATION"
	ErrCodeInvalidReference      = "INVALID_REFERENCE"
	ErrCodeInvalidTypeMember     = "INVALID_TYPE_MEMBER"
	ErrCodeUnknownSymbol         = "UNKNOWN_SYMBOL"
	ErrCodeNoCalleeMatch         = "NO_CALLEE_MATCH"
	ErrCodeNotImplicitlyCastable = "NOT_IMPLICITLY_CASTABLE"
	ErrCodeInvalidCast           = "INVALID_CAST"
	ErrCodeConfigError           = "CONFIG_ERROR"
	ErrCodeFixtureError          = "FIXTURE_ERROR"
	ErrCodeUndefinedSymbol       = "UNDEFINED_SYMBOL"
	ErrCodeInternal              = "INTERNAL"
)

func NewCoreError(code, message string, cause error) error {
	return CoreError{Code: code, Message: message, Cause: cause}
}

func NewUnknownSymbolError(name string) error {
	return NewCoreError(ErrCodeUnknownSymbol, fmt.Sprintf("unknown symbol %q", name), nil)
}

func NewNoCalleeMatchError(name string) error {
	return NewCoreError(ErrCodeNoCalleeMatch, fmt.Sprintf("no matching overload for %q", name), nil)
}

func NewNotImplicitlyCastableError(from, to string) error {
	return NewCoreError(ErrCodeNotImplicitlyCastable, fmt.Sprintf("%s is not implicitly castable to %s", from, to), nil)
}

func NewInvalidCastError(from, to string) error {
	return NewCoreError(ErrCodeInvalidCast, fmt.Sprintf("cannot cast %s to %s", from, to), nil)
}

func NewUnsupportedOperationError(detail string) error {
	return NewCoreError(ErrCodeUnsupportedOperation, detail, nil)
}

func NewConfigError(message string, cause error) error {
	return NewCoreError(ErrCodeConfigError, message, cause)
}

func NewFixtureError(message string, cause error) error {
	return NewCoreError(ErrCodeFixtureError, message, cause)
}

func NewUndefinedSymbolError(message string) error {
	return NewCoreError(ErrCodeUndefinedSymbol, message, nil)
}

// InternalError is the core's internal-invariant channel: a bug, not an
// expected program error. Callers above the core
// are expected to recover() a panic carrying one of these and report it,
// rather than let it propagate as a bare string panic.
type InternalError struct {
	Message  string
	Location string
}

func (e InternalError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("internal error at %s: %s", e.Location, e.Message)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

// Panic raises an InternalError. Callers recover it at a designated
// boundary (the CLI's command runners, the MCP handlers) rather than
// letting the process crash on a core invariant violation.
func Panic(location, format string, args ...interface{}) {
	panic(InternalError{Message: fmt.Sprintf(format, args...), Location: location})
}

// Recover turns a recovered InternalError (or any other panic value) into
// an error, for use in a deferred recover() at a core/caller boundary.
func Recover(r interface{}) error {
	if r == nil {
		return nil
	}
	if ie, ok := r.(InternalError); ok {
		return ie
	}
	return fmt.Errorf("panic: %v", r)
}
