package quant

import "errors"

// Error taxonomy. Every error returned by this package wraps exactly one
// of these sentinels with fmt.Errorf's %w, so callers can test with
// errors.Is instead of string matching.
var (
	// ErrInvalidFormat means a string failed to parse against its grammar.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrUnknownUnit means a unit symbol is not registered in the catalog.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrUnknownPrefix means a prefix symbol is not registered in the catalog.
	ErrUnknownPrefix = errors.New("unknown prefix")
	// ErrDuplicateSymbol means an insert would collide with an existing
	// registry entry (including a prefixed variant of some other unit).
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrDomainError means an operation is numerically impossible
	// (nonpositive factor, out-of-range exponent, non-finite value).
	ErrDomainError = errors.New("domain error")
	// ErrDimensionMismatch means two operands don't share a dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrDivByZero means a divide or invert of zero was attempted.
	ErrDivByZero = errors.New("division by zero")
	// ErrNoConversionPath means the Converter exhausted its search.
	ErrNoConversionPath = errors.New("no conversion path")
	// ErrNotSupported means the arguments are valid but the operation is
	// disallowed by policy (e.g. an exponent that would leave the ±9 bound).
	ErrNotSupported = errors.New("not supported")
)
