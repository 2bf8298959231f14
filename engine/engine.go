package engine

import (
	"io"
	"log/slog"
)

// State is the engine's position in the phase lifecycle.
type State int

const (
	StateCreated State = iota
	StateActRun
	StateAssertionStarted
	StateFinalized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateActRun:
		return "act_run"
	case StateAssertionStarted:
		return "assertion_started"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Assertion is a caller-supplied check. It fails by returning a non-nil
// error or by panicking.
type Assertion func() error

// Engine enforces Because-before-It ordering for one test case and
// collects assertion failures until Dispose.
type Engine struct {
	id     string
	logger *slog.Logger

	becauseCalled bool
	itCalled      bool
	finalized     bool

	failures []*AssertionError
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards all records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithIDGenerator sets the generator used for the engine ID.
// The default is UUIDv7Generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(e *Engine) {
		if gen != nil {
			e.id = gen.Generate()
		}
	}
}

// New creates an engine in the Created state.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == "" {
		e.id = UUIDv7Generator{}.Generate()
	}
	e.logger = e.logger.With("engine_id", e.id)
	return e
}

// ID returns the engine identifier.
func (e *Engine) ID() string {
	return e.id
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	switch {
	case e.finalized:
		return StateFinalized
	case e.itCalled:
		return StateAssertionStarted
	case e.becauseCalled:
		return StateActRun
	default:
		return StateCreated
	}
}

// Failures returns a copy of the captured assertion failures in capture order.
func (e *Engine) Failures() []*AssertionError {
	out := make([]*AssertionError, len(e.failures))
	copy(out, e.failures)
	return out
}

// Because runs the act phase. A panic in act propagates unchanged.
func (e *Engine) Because(act func()) error {
	if err := e.beginAct(); err != nil {
		return err
	}
	act()
	return nil
}

// BecauseValue runs the act phase and returns its result.
// A panic in act propagates unchanged.
func BecauseValue[T any](e *Engine, act func() T) (T, error) {
	var zero T
	if err := e.beginAct(); err != nil {
		return zero, err
	}
	return act(), nil
}

// beginAct checks the act precondition and marks the act phase as run.
func (e *Engine) beginAct() error {
	if e.finalized {
		return newAlreadyFinalized(e.id)
	}
	if e.itCalled {
		e.logger.Debug("act rejected", "reason", ErrCodeActAfterAssertion)
		return newActAfterAssertion(e.id)
	}
	e.becauseCalled = true
	e.logger.Debug("act phase started")
	return nil
}

// It runs a labeled assertion. A failure is captured for Dispose and does
// not fail the call; only ordering and lifecycle violations are returned.
func (e *Engine) It(label string, assertion Assertion) error {
	if e.finalized {
		return newAlreadyFinalized(e.id)
	}
	if !e.becauseCalled {
		e.logger.Debug("assertion rejected", "label", label, "reason", ErrCodeAssertionBeforeAct)
		return newAssertionBeforeAct(e.id)
	}
	e.itCalled = true

	if cause := runAssertion(assertion); cause != nil {
		failure := newAssertionError(label, cause)
		e.failures = append(e.failures, failure)
		e.logger.Info("assertion failed",
			"label", label,
			"error", cause,
			"captured", len(e.failures),
		)
		return nil
	}

	e.logger.Debug("assertion passed", "label", label)
	return nil
}

// runAssertion runs the assertion, converting a panic into its error.
func runAssertion(assertion Assertion) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return assertion()
}

// Dispose finalizes the engine and reports captured failures.
//
// Returns:
//   - *ViolationError if already finalized or a phase never ran
//   - *AssertionError if exactly one assertion failed
//   - *AggregateError if two or more failed
//   - nil otherwise
//
// The engine is finalized after the first call regardless of the result.
func (e *Engine) Dispose() error {
	if e.finalized {
		return newAlreadyFinalized(e.id)
	}
	e.finalized = true

	if !e.becauseCalled || !e.itCalled {
		e.logger.Debug("finalize rejected",
			"because_called", e.becauseCalled,
			"it_called", e.itCalled,
		)
		return newMissingPhase(e.id)
	}

	e.logger.Debug("engine finalized", "failures", len(e.failures))

	switch len(e.failures) {
	case 0:
		return nil
	case 1:
		return e.failures[0]
	default:
		return &AggregateError{Failures: e.Failures()}
	}
}
