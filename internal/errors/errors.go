// Package errors provides typed errors for ddtstat.
package errors

import "fmt"

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrMalformedSizeToken ErrorCode = "MALFORMED_SIZE_TOKEN"
	ErrDdtSummaryNotFound ErrorCode = "DDT_SUMMARY_NOT_FOUND"
	ErrTotalsRowNotFound  ErrorCode = "TOTALS_ROW_NOT_FOUND"
	ErrFieldCountMismatch ErrorCode = "FIELD_COUNT_MISMATCH"
	ErrDivisionUndefined  ErrorCode = "DIVISION_UNDEFINED"
	ErrUnknownPool        ErrorCode = "UNKNOWN_POOL"
	ErrPoolQueryFailed    ErrorCode = "POOL_QUERY_FAILED"
	ErrConfigInvalid      ErrorCode = "CONFIG_INVALID"
)

// DdtError represents a typed error with user-friendly hints.
type DdtError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *DdtError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DdtError) Unwrap() error {
	return e.Cause
}

// New creates a new DdtError.
func New(code ErrorCode, message, hint string) *DdtError {
	return &DdtError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new DdtError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *DdtError {
	return &DdtError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// MalformedSizeToken returns an error for a size token that does not
// match <digits>[.<digits>]<suffix>.
func MalformedSizeToken(token, reason string) *DdtError {
	return &DdtError{
		Code:    ErrMalformedSizeToken,
		Message: fmt.Sprintf("malformed size token %q: %s", token, reason),
	}
}

// DdtSummaryNotFound returns an error for a report with no DDT entries line.
func DdtSummaryNotFound() *DdtError {
	return &DdtError{
		Code:    ErrDdtSummaryNotFound,
		Message: "no DDT entries line in pool status report",
		Hint:    "Dedup may never have been enabled on this pool",
	}
}

// TotalsRowNotFound returns an error for a report with no Total histogram row.
func TotalsRowNotFound() *DdtError {
	return &DdtError{
		Code:    ErrTotalsRowNotFound,
		Message: "no Total row in DDT histogram",
	}
}

// FieldCountMismatch returns an error for a matched report line that is
// missing expected fields.
func FieldCountMismatch(line string, want, got int) *DdtError {
	return &DdtError{
		Code:    ErrFieldCountMismatch,
		Message: fmt.Sprintf("report line %q has %d fields, want at least %d", line, got, want),
	}
}

// DivisionUndefined returns an error for a zero divisor.
func DivisionUndefined() *DdtError {
	return &DdtError{
		Code:    ErrDivisionUndefined,
		Message: "divisor is zero",
	}
}

// UnknownPool returns an error for a pool name absent from the registry.
func UnknownPool(pool string, known []string) *DdtError {
	hint := "Run `zpool list` to see available pools"
	if len(known) > 0 {
		hint = fmt.Sprintf("Known pools: %v", known)
	}
	return &DdtError{
		Code:    ErrUnknownPool,
		Message: fmt.Sprintf("unknown pool: %s", pool),
		Hint:    hint,
	}
}

// PoolQueryFailed returns an error for a failed zpool invocation.
func PoolQueryFailed(op string, cause error) *DdtError {
	return &DdtError{
		Code:    ErrPoolQueryFailed,
		Message: fmt.Sprintf("zpool %s failed", op),
		Hint:    "Check that zpool is installed and you have permission to query pools",
		Cause:   cause,
	}
}

// ConfigInvalid returns an error for invalid config.
func ConfigInvalid(reason string) *DdtError {
	return &DdtError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your config file at ~/.config/ddtstat/config.yaml",
	}
}
