package types

import "fmt"

// PatternSyntaxError reports a malformed ignore rule pattern. It is fatal at
// ignorer construction time and never silently swallowed.
type PatternSyntaxError struct {
	Pattern string
	Err     error
}

// Error describes the offending pattern.
func (patternError *PatternSyntaxError) Error() string {
	if patternError.Err != nil {
		return fmt.Sprintf("invalid ignore pattern %q: %v", patternError.Pattern, patternError.Err)
	}
	return fmt.Sprintf("invalid ignore pattern %q", patternError.Pattern)
}

// Unwrap exposes the underlying syntax error.
func (patternError *PatternSyntaxError) Unwrap() error { return patternError.Err }

// UnresolvedRootError reports a traversal root that does not exist.
type UnresolvedRootError struct {
	Path string
	Err  error
}

// Error describes the missing root path.
func (rootError *UnresolvedRootError) Error() string {
	return fmt.Sprintf("root path %q cannot be resolved: %v", rootError.Path, rootError.Err)
}

// Unwrap exposes the underlying filesystem error.
func (rootError *UnresolvedRootError) Unwrap() error { return rootError.Err }

// UnsupportedRoundTripError reports an attempt to parse a one-way format.
type UnsupportedRoundTripError struct {
	Format string
}

// Error names the format that cannot be parsed back.
func (roundTripError *UnsupportedRoundTripError) Error() string {
	return fmt.Sprintf("format %q does not support round-trip parsing", roundTripError.Format)
}

// MaterializationError reports a single entry that could not be written to
// disk. It is collected in the report and never aborts the overall run.
type MaterializationError struct {
	Path string
	Err  error
}

// Error describes the failing path.
func (materializationError *MaterializationError) Error() string {
	return fmt.Sprintf("materializing %q: %v", materializationError.Path, materializationError.Err)
}

// Unwrap exposes the underlying filesystem error.
func (materializationError *MaterializationError) Unwrap() error { return materializationError.Err }
