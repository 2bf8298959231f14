package engine

import (
	"errors"
	"reflect"
)

// ThrowKind discriminates the outcome of BecauseThrows.
type ThrowKind int

const (
	// NothingThrown means the act completed without raising.
	NothingThrown ThrowKind = iota

	// ExpectedThrown means the act raised an error assignable to E.
	ExpectedThrown

	// UnexpectedThrown means the act raised an error not assignable to E.
	UnexpectedThrown
)

// String returns the kind name.
func (k ThrowKind) String() string {
	switch k {
	case NothingThrown:
		return "nothing"
	case ExpectedThrown:
		return "expected"
	case UnexpectedThrown:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Thrown is the outcome of BecauseThrows.
type Thrown[E error] struct {
	Kind ThrowKind

	// Err is set when Kind is ExpectedThrown.
	Err E

	// Unexpected is set when Kind is UnexpectedThrown.
	Unexpected *UnexpectedActError
}

// Caught returns the expected error and true, or the zero value and false
// when nothing matching E was raised.
func (t Thrown[E]) Caught() (E, bool) {
	return t.Err, t.Kind == ExpectedThrown
}

// BecauseThrows runs the act phase expecting it to raise an error of type E.
//
// The act raises by returning an error or panicking. Matching uses
// errors.As, so wrapped errors and interface types match as subtypes.
// An error that does not match E is wrapped in *UnexpectedActError and
// returned as the error; it is never captured as an assertion failure.
func BecauseThrows[E error](e *Engine, act func() error) (Thrown[E], error) {
	if err := e.beginAct(); err != nil {
		return Thrown[E]{}, err
	}

	raised := runAct(act)
	if raised == nil {
		return Thrown[E]{Kind: NothingThrown}, nil
	}

	var target E
	if errors.As(raised, &target) {
		e.logger.Debug("act raised expected error", "error", raised)
		return Thrown[E]{Kind: ExpectedThrown, Err: target}, nil
	}

	unexpected := &UnexpectedActError{
		Expected: typeName[E](),
		Cause:    raised,
	}
	e.logger.Debug("act raised unexpected error", "expected", unexpected.Expected, "error", raised)
	return Thrown[E]{Kind: UnexpectedThrown, Unexpected: unexpected}, unexpected
}

// runAct runs act, converting a panic into its error.
func runAct(act func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return act()
}

func typeName[E error]() string {
	return reflect.TypeOf((*E)(nil)).Elem().String()
}
