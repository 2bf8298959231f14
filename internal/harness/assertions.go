package harness

import (
	"fmt"
	"slices"
	"strings"
)

// MismatchError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type MismatchError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		if event.Label != "" {
			fmt.Fprintf(&buf, "  [%d] %s %q -> %s\n", event.Seq, event.Op, event.Label, event.Outcome)
		} else {
			fmt.Fprintf(&buf, "  [%d] %s -> %s\n", event.Seq, event.Op, event.Outcome)
		}
	}

	return buf.String()
}

// assertFinalOutcome checks the outcome of the dispose step.
func assertFinalOutcome(result *Result, assertion Assertion) error {
	if result.Final == assertion.Outcome {
		return nil
	}
	return &MismatchError{
		Type:     AssertFinalOutcome,
		Expected: assertion.Outcome,
		Actual:   result.Final,
		Trace:    result.Trace,
	}
}

// assertFailureCount checks the number of captured assertion failures.
func assertFailureCount(result *Result, assertion Assertion) error {
	if len(result.Failures) == assertion.Count {
		return nil
	}
	return &MismatchError{
		Type:     AssertFailureCount,
		Expected: fmt.Sprintf("%d failures", assertion.Count),
		Actual:   fmt.Sprintf("%d failures %v", len(result.Failures), result.Failures),
		Trace:    result.Trace,
	}
}

// assertFailureOrder checks captured failure labels, in capture order.
func assertFailureOrder(result *Result, assertion Assertion) error {
	if slices.Equal(result.Failures, assertion.Labels) {
		return nil
	}
	return &MismatchError{
		Type:     AssertFailureOrder,
		Expected: fmt.Sprintf("failures in order: %v", assertion.Labels),
		Actual:   fmt.Sprintf("%v", result.Failures),
		Trace:    result.Trace,
	}
}

// assertTraceContains checks that a step with the given op was traced.
// Label and outcome narrow the match when set.
func assertTraceContains(result *Result, assertion Assertion) error {
	for _, event := range result.Trace {
		if event.Op != assertion.Op {
			continue
		}
		if assertion.Label != "" && event.Label != assertion.Label {
			continue
		}
		if assertion.Outcome != "" && event.Outcome != assertion.Outcome {
			continue
		}
		return nil
	}

	expected := "op " + assertion.Op
	if assertion.Label != "" {
		expected += fmt.Sprintf(" label %q", assertion.Label)
	}
	if assertion.Outcome != "" {
		expected += " outcome " + assertion.Outcome
	}
	return &MismatchError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    result.Trace,
	}
}

// EvaluateAssertions runs all assertions against the result.
// Returns a list of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertFinalOutcome:
			err = assertFinalOutcome(result, assertion)
		case AssertFailureCount:
			err = assertFailureCount(result, assertion)
		case AssertFailureOrder:
			err = assertFailureOrder(result, assertion)
		case AssertTraceContains:
			err = assertTraceContains(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
