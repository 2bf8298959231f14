package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/roach88/specbecause/engine"
	"github.com/roach88/specbecause/internal/testutil"
)

// Harness drives one engine through a scenario's steps.
type Harness struct {
	engine *engine.Engine
	clock  *testutil.DeterministicClock
	logger *slog.Logger
}

// Option configures a scenario run.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger for the run and its engine.
// The default discards all records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh engine with a fixed ID and a logical
// clock, so repeated runs produce identical traces.
//
// Execution flow:
// 1. Create engine with the scenario's engine ID
// 2. Execute steps in order, tracing each outcome
// 3. Compare each step against its want outcome
// 4. Evaluate assertions against the trace
//
// An error is returned only when a step produces an outcome the harness
// cannot classify; mismatches are reported in Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	h := &Harness{
		engine: engine.New(
			engine.WithLogger(cfg.logger),
			engine.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.EngineID)),
		),
		clock:  testutil.NewDeterministicClock(),
		logger: cfg.logger.With("scenario", scenario.Name),
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		event, err := h.execute(step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
		event.Seq = h.clock.Next()
		event.Op = step.Op
		event.Label = step.Label
		event.State = h.engine.State().String()
		result.AddTrace(event)

		if step.Op == OpDispose {
			result.Final = event.Outcome
		}
		if step.Want != "" && step.Want != event.Outcome {
			result.AddError(fmt.Sprintf("step %d (%s): want outcome %s, got %s",
				i, step.Op, step.Want, event.Outcome))
		}

		h.logger.Debug("step completed",
			"step", i,
			"op", step.Op,
			"outcome", event.Outcome,
			"state", event.State,
		)
	}

	for _, failure := range h.engine.Failures() {
		result.Failures = append(result.Failures, failure.Label)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// execute runs one step and returns its outcome and detail.
func (h *Harness) execute(step Step) (TraceEvent, error) {
	switch step.Op {
	case OpBecause:
		return h.because(step)
	case OpBecauseValue:
		return h.becauseValue(step)
	case OpBecauseThrows:
		return h.becauseThrows(step)
	case OpIt:
		return h.it(step)
	case OpDispose:
		return h.dispose()
	default:
		return TraceEvent{}, fmt.Errorf("unknown op %q", step.Op)
	}
}

func (h *Harness) because(step Step) (event TraceEvent, err error) {
	// Act panics propagate out of the engine unchanged.
	defer func() {
		if r := recover(); r != nil {
			event = TraceEvent{Outcome: OutcomePanic, Detail: fmt.Sprint(r)}
			err = nil
		}
	}()

	err = h.engine.Because(func() {
		if step.Panic {
			panic(panicMessage(step))
		}
	})
	if err != nil {
		return violationEvent(err)
	}
	return TraceEvent{Outcome: OutcomeOK}, nil
}

func (h *Harness) becauseValue(step Step) (TraceEvent, error) {
	value, err := engine.BecauseValue(h.engine, func() int64 {
		return step.Value
	})
	if err != nil {
		return violationEvent(err)
	}
	return TraceEvent{Outcome: OutcomeValue, Detail: strconv.FormatInt(value, 10)}, nil
}

func (h *Harness) becauseThrows(step Step) (TraceEvent, error) {
	throws := throwsFor(step.Expect)
	if throws == nil {
		return TraceEvent{}, fmt.Errorf("unknown expected kind %q", step.Expect)
	}

	raised := newKindError(step.Raise)
	kind, err := throws(h.engine, func() error {
		if step.Panic && raised != nil {
			panic(raised)
		}
		return raised
	})

	var unexpected *engine.UnexpectedActError
	switch {
	case errors.As(err, &unexpected):
		return TraceEvent{Outcome: OutcomeUnexpectedAct, Detail: err.Error()}, nil
	case err != nil:
		return violationEvent(err)
	}

	switch kind {
	case engine.ExpectedThrown:
		return TraceEvent{Outcome: OutcomeCaught, Detail: raised.Error()}, nil
	case engine.NothingThrown:
		return TraceEvent{Outcome: OutcomeAbsent}, nil
	default:
		return TraceEvent{}, fmt.Errorf("unclassified throw kind %s", kind)
	}
}

func (h *Harness) it(step Step) (TraceEvent, error) {
	before := len(h.engine.Failures())

	err := h.engine.It(step.Label, func() error {
		if step.Fail == "" {
			return nil
		}
		if step.Panic {
			panic(step.Fail)
		}
		return errors.New(step.Fail)
	})
	if err != nil {
		return violationEvent(err)
	}

	failures := h.engine.Failures()
	if len(failures) > before {
		return TraceEvent{Outcome: OutcomeCaptured, Detail: causeMessage(failures[len(failures)-1])}, nil
	}
	return TraceEvent{Outcome: OutcomePassed}, nil
}

func (h *Harness) dispose() (TraceEvent, error) {
	err := h.engine.Dispose()
	if err == nil {
		return TraceEvent{Outcome: OutcomeOK}, nil
	}

	var single *engine.AssertionError
	var aggregate *engine.AggregateError
	switch {
	case errors.As(err, &aggregate):
		return TraceEvent{Outcome: OutcomeAggregate, Detail: err.Error()}, nil
	case errors.As(err, &single):
		return TraceEvent{Outcome: OutcomeSingleFailure, Detail: err.Error()}, nil
	default:
		return violationEvent(err)
	}
}

// violationEvent classifies an engine violation.
func violationEvent(err error) (TraceEvent, error) {
	switch {
	case engine.IsOrderingViolation(err):
		return TraceEvent{Outcome: OutcomeOrderingViolation, Detail: err.Error()}, nil
	case engine.IsLifecycleViolation(err):
		return TraceEvent{Outcome: OutcomeLifecycleViolation, Detail: err.Error()}, nil
	default:
		return TraceEvent{}, fmt.Errorf("unclassified engine error: %w", err)
	}
}

func panicMessage(step Step) string {
	if step.Fail != "" {
		return step.Fail
	}
	return "act panicked"
}

// causeMessage returns the failure's cause without the "It <label>" prefix.
func causeMessage(failure *engine.AssertionError) string {
	if failure.Cause == nil {
		return ""
	}
	var pe *engine.PanicError
	if errors.As(failure.Cause, &pe) {
		return fmt.Sprint(pe.Value)
	}
	return failure.Cause.Error()
}
