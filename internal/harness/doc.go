// Package harness provides conformance testing for the Because/It engine.
//
// The harness loads scenarios, drives a fresh engine through each
// scenario's steps, and records every call's outcome as a trace. Scenarios
// check the trace with per-step expectations and assertions, and the trace
// can be compared against a golden snapshot.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	engine_id: test-engine-001
//	steps:
//	  - op: because_value
//	    value: 5
//	  - op: it
//	    label: is five
//	  - op: it
//	    label: fails
//	    fail: "expected 5, got 4"
//	    want: captured
//	  - op: dispose
//	    want: single_failure
//	assertions:
//	  - type: final_outcome
//	    outcome: single_failure
//	  - type: failure_order
//	    labels: [fails]
//
// # Step Operations
//
//   - because: runs the act phase (panic: true makes the act panic)
//   - because_value: runs the act phase returning value
//   - because_throws: runs the act expecting error kind expect; raise picks
//     the kind the act raises (empty raises nothing)
//   - it: runs a labeled assertion that fails with message fail, if set
//   - dispose: finalizes the engine
//
// # Assertion Types
//
//   - final_outcome: Verifies the outcome of the dispose step
//   - failure_count: Verifies the number of captured failures
//   - failure_order: Verifies captured failure labels, in order
//   - trace_contains: Verifies a step with op (and label, outcome) was traced
//
// # Deterministic Testing
//
// Every run uses a fixed engine ID (engine_id, or "test-engine-default")
// and a logical clock starting at 1, so the same scenario always produces
// the same trace and golden snapshot.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/two_failures.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
