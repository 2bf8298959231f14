package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/specbecause/internal/testutil"
)

// DefaultEngineID is the engine ID of scenarios that do not set engine_id.
const DefaultEngineID = testutil.DefaultEngineID

// Scenario defines a conformance test scenario: a sequence of engine calls
// and the outcomes they must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after
	// it, so it cannot contain path separators.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// EngineID is an optional fixed engine ID for deterministic traces.
	// If empty, defaults to "test-engine-default".
	EngineID string `yaml:"engine_id,omitempty"`

	// Steps are executed in order against one engine.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and captured failures after all steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one call on the engine.
type Step struct {
	// Op is the operation: because, because_value, because_throws, it, dispose.
	Op string `yaml:"op"`

	// Label is the assertion label (used by it).
	Label string `yaml:"label,omitempty"`

	// Fail is the failure message of an it step. Empty means the
	// assertion passes. For a panicking because it is the panic message.
	Fail string `yaml:"fail,omitempty"`

	// Panic raises by panicking instead of returning an error.
	Panic bool `yaml:"panic,omitempty"`

	// Value is the result of a because_value act.
	Value int64 `yaml:"value,omitempty"`

	// Expect is the error kind a because_throws step expects.
	Expect string `yaml:"expect,omitempty"`

	// Raise is the error kind a because_throws act raises. Empty raises nothing.
	Raise string `yaml:"raise,omitempty"`

	// Want is the expected outcome of the step. Empty skips the check.
	Want string `yaml:"want,omitempty"`
}

// Assertion validates the run after all steps.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final_outcome": Check the dispose outcome
	// - "failure_count": Check the number of captured failures
	// - "failure_order": Check captured failure labels in order
	// - "trace_contains": Check a step appears in the trace
	Type string `yaml:"type"`

	// Outcome is the expected outcome (final_outcome, trace_contains).
	Outcome string `yaml:"outcome,omitempty"`

	// Count is the expected number of failures (failure_count).
	Count int `yaml:"count,omitempty"`

	// Labels is the expected failure order (failure_order).
	Labels []string `yaml:"labels,omitempty"`

	// Op and Label select the traced step (trace_contains).
	Op    string `yaml:"op,omitempty"`
	Label string `yaml:"label,omitempty"`
}

// Step operation constants.
const (
	OpBecause       = "because"
	OpBecauseValue  = "because_value"
	OpBecauseThrows = "because_throws"
	OpIt            = "it"
	OpDispose       = "dispose"
)

var validOps = []string{OpBecause, OpBecauseValue, OpBecauseThrows, OpIt, OpDispose}

// Step outcome constants.
const (
	OutcomeOK                 = "ok"
	OutcomeValue              = "value"
	OutcomePanic              = "panic"
	OutcomeCaught             = "caught"
	OutcomeAbsent             = "absent"
	OutcomeUnexpectedAct      = "unexpected_act"
	OutcomePassed             = "passed"
	OutcomeCaptured           = "captured"
	OutcomeOrderingViolation  = "ordering_violation"
	OutcomeLifecycleViolation = "lifecycle_violation"
	OutcomeSingleFailure      = "single_failure"
	OutcomeAggregate          = "aggregate"
	OutcomeNotDisposed        = "not_disposed"
)

var validOutcomes = []string{
	OutcomeOK, OutcomeValue, OutcomePanic, OutcomeCaught, OutcomeAbsent,
	OutcomeUnexpectedAct, OutcomePassed, OutcomeCaptured,
	OutcomeOrderingViolation, OutcomeLifecycleViolation,
	OutcomeSingleFailure, OutcomeAggregate, OutcomeNotDisposed,
}

// Assertion type constants.
const (
	AssertFinalOutcome  = "final_outcome"
	AssertFailureCount  = "failure_count"
	AssertFailureOrder  = "failure_order"
	AssertTraceContains = "trace_contains"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields so "assertion:" vs "assertions:" typos surface
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	// Names become golden file names and must stay inside the golden directory
	if s.Name == "." || s.Name == ".." || strings.ContainsAny(s.Name, `/\`) {
		return fmt.Errorf("name %q must be a plain file name", s.Name)
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, step *Step) error {
	if step.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}
	if !slices.Contains(validOps, step.Op) {
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	switch step.Op {
	case OpIt:
		if step.Label == "" {
			return fmt.Errorf("steps[%d]: label is required for it", index)
		}
	case OpBecauseThrows:
		if !isKnownKind(step.Expect) {
			return fmt.Errorf("steps[%d]: expect must be one of %v, got %q", index, knownKinds, step.Expect)
		}
		if step.Raise != "" && step.Raise != KindPlain && !isKnownKind(step.Raise) {
			return fmt.Errorf("steps[%d]: unknown raise kind %q", index, step.Raise)
		}
	}

	if step.Panic && (step.Op == OpBecauseValue || step.Op == OpDispose) {
		return fmt.Errorf("steps[%d]: panic is not supported for %s", index, step.Op)
	}

	if step.Want != "" && !slices.Contains(validOutcomes, step.Want) {
		return fmt.Errorf("steps[%d]: unknown want outcome %q", index, step.Want)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalOutcome:
		if !slices.Contains(validOutcomes, a.Outcome) {
			return fmt.Errorf("assertions[%d]: unknown outcome %q for final_outcome", index, a.Outcome)
		}
	case AssertFailureCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for failure_count", index)
		}
	case AssertFailureOrder:
		if a.Labels == nil {
			return fmt.Errorf("assertions[%d]: labels list is required for failure_order", index)
		}
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
		if a.Outcome != "" && !slices.Contains(validOutcomes, a.Outcome) {
			return fmt.Errorf("assertions[%d]: unknown outcome %q for trace_contains", index, a.Outcome)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
