// Package errors defines the failure taxonomy shared across the harness.
// Every class is fatal: a partially trusted verdict or record set is worse
// than none, so nothing here is retried.
package errors

import "fmt"

// ConfigurationError indicates the run was set up against an artifact the
// harness cannot handle, e.g. a binary for an unsupported architecture.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Detail)
}

// ParseError indicates malformed input: an optimization record document that
// does not decode, or a benchmark output line that does not match the
// expected shape.
type ParseError struct {
	Source string // file path or binary that produced the input
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error in %s: %s: %v", e.Source, e.Detail, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Source, e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AlignmentError indicates the scalar and vector binaries reported different
// function names at the same position. The two builds are not comparable and
// every subsequent measurement would be meaningless.
type AlignmentError struct {
	Scalar string
	Vector string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("benchmark streams out of sync: scalar reported %q, vector reported %q", e.Scalar, e.Vector)
}

// ExternalToolError indicates a child process or disassembler invocation
// failed or crashed.
type ExternalToolError struct {
	Tool string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
