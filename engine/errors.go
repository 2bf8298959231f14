package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ViolationError represents misuse of the engine's phase rules.
//
// Violations include:
//   - Act after assertion: Because ran after an It call
//   - Assertion before act: It ran before any Because
//   - Missing phase: Dispose ran without both phases
//   - Already finalized: any call after Dispose
//
// Violations are never captured; they are returned to the caller immediately.
type ViolationError struct {
	// Code identifies the violation category.
	Code ViolationCode

	// Message is a human-readable description.
	Message string

	// EngineID identifies the engine that rejected the call.
	EngineID string
}

// ViolationCode categorizes violations.
type ViolationCode string

const (
	// ErrCodeActAfterAssertion indicates Because was called after an It.
	ErrCodeActAfterAssertion ViolationCode = "ACT_AFTER_ASSERTION"

	// ErrCodeAssertionBeforeAct indicates It was called before any Because.
	ErrCodeAssertionBeforeAct ViolationCode = "ASSERTION_BEFORE_ACT"

	// ErrCodeMissingPhase indicates Dispose ran before both phases did.
	ErrCodeMissingPhase ViolationCode = "MISSING_PHASE"

	// ErrCodeAlreadyFinalized indicates a call on an engine after Dispose.
	ErrCodeAlreadyFinalized ViolationCode = "ALREADY_FINALIZED"
)

// Error implements the error interface.
func (e *ViolationError) Error() string {
	if e.EngineID != "" {
		return fmt.Sprintf("%s: %s (engine=%s)", e.Code, e.Message, e.EngineID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsOrderingViolation returns true if err is an act/assertion ordering violation.
// Uses errors.As to handle wrapped errors.
func IsOrderingViolation(err error) bool {
	var ve *ViolationError
	if errors.As(err, &ve) {
		return ve.Code == ErrCodeActAfterAssertion || ve.Code == ErrCodeAssertionBeforeAct
	}
	return false
}

// IsLifecycleViolation returns true if err is a finalization violation.
// Uses errors.As to handle wrapped errors.
func IsLifecycleViolation(err error) bool {
	var ve *ViolationError
	if errors.As(err, &ve) {
		return ve.Code == ErrCodeMissingPhase || ve.Code == ErrCodeAlreadyFinalized
	}
	return false
}

func newActAfterAssertion(engineID string) *ViolationError {
	return &ViolationError{
		Code:     ErrCodeActAfterAssertion,
		Message:  "act cannot run after assertion phase has begun",
		EngineID: engineID,
	}
}

func newAssertionBeforeAct(engineID string) *ViolationError {
	return &ViolationError{
		Code:     ErrCodeAssertionBeforeAct,
		Message:  "assertion phase requires prior act phase",
		EngineID: engineID,
	}
}

func newMissingPhase(engineID string) *ViolationError {
	return &ViolationError{
		Code:     ErrCodeMissingPhase,
		Message:  "both act and assertion phases are required before finalization",
		EngineID: engineID,
	}
}

func newAlreadyFinalized(engineID string) *ViolationError {
	return &ViolationError{
		Code:     ErrCodeAlreadyFinalized,
		Message:  "engine has already been finalized",
		EngineID: engineID,
	}
}

// UnexpectedActError is returned by BecauseThrows when the act raised an
// error that is not assignable to the expected type.
type UnexpectedActError struct {
	// Expected is the type name the caller asked for.
	Expected string

	// Cause is the error the act actually raised.
	Cause error
}

// Error implements the error interface.
func (e *UnexpectedActError) Error() string {
	return fmt.Sprintf("act raised unexpected error (expected %s): %v", e.Expected, e.Cause)
}

// Unwrap returns the original error raised by the act.
func (e *UnexpectedActError) Unwrap() error {
	return e.Cause
}

// AssertionError is a failed It, labeled with the assertion's name.
type AssertionError struct {
	// Label is the name passed to It.
	Label string

	// Message is the outward message, "It <label>".
	Message string

	// Cause is the error the assertion raised.
	Cause error
}

func newAssertionError(label string, cause error) *AssertionError {
	return &AssertionError{
		Label:   label,
		Message: "It " + label,
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap returns the original assertion failure.
func (e *AssertionError) Unwrap() error {
	return e.Cause
}

// AggregateError bundles two or more assertion failures in the order they
// were captured.
type AggregateError struct {
	Failures []*AssertionError
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%d assertions failed:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&buf, "\n  %s", f.Error())
	}
	return buf.String()
}

// Unwrap exposes every labeled failure to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Causes returns the original assertion errors in capture order.
func (e *AggregateError) Causes() []error {
	causes := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		causes[i] = f.Cause
	}
	return causes
}

// PanicError carries a non-error panic value recovered from a closure.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// recovered converts a recovered panic value into an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}
