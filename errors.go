package btverify

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies a verification failure the way the engine's single
// generic "verification error" return value is classified for the caller.
// A successful pass returns CodeOK.
type Code int

const (
	CodeOK Code = iota
	CodePrecondition
	CodeStructural
	CodeLogical
	CodeTransient
	CodeUnsupported
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodePrecondition:
		return "precondition"
	case CodeStructural:
		return "structural"
	case CodeLogical:
		return "logical"
	case CodeTransient:
		return "transient"
	case CodeUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// VerifyError is the single error type returned across the verifier's
// public surface. It carries a Code for callers that branch on failure
// class, and keeps the underlying cause (if any) in Err, stack-wrapped, so
// pkg/errors.Cause(e.Err) recovers the raw I/O or allocation error for
// transient failures. VerifyError itself has no Cause method; Unwrap
// returns Err.
type VerifyError struct {
	Code Code
	Msg  string
	Err  error
}

func (e *VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *VerifyError) Unwrap() error { return e.Err }

func newErr(code Code, format string, args ...interface{}) *VerifyError {
	return &VerifyError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func wrapErr(code Code, err error, format string, args ...interface{}) *VerifyError {
	return &VerifyError{Code: code, Msg: fmt.Sprintf(format, args...), Err: errors.WithStack(err)}
}

// Reporter is the engine's error-message sink plus the progress collaborator
// from spec.md §6. Errorf logs one diagnostic without aborting the walk;
// the walk itself decides when a finding becomes fatal. Progress is
// best-effort and must never block.
type Reporter interface {
	Errorf(format string, args ...interface{})
	Progress(counter uint64)
}

// discardReporter drops every diagnostic; used when a caller passes a nil
// Reporter to Verify.
type discardReporter struct{}

func (discardReporter) Errorf(string, ...interface{}) {}
func (discardReporter) Progress(uint64)               {}
