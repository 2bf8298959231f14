// Package engine implements the Because/It phase engine.
//
// An Engine governs a single test case. The act phase (Because) runs first,
// then any number of named assertion phases (It). Assertion failures are
// captured instead of aborting the test, and Dispose reports them all at
// the end.
//
// PHASE RULES:
//
//	Created --Because--> ActRun --It--> AssertionStarted --Dispose--> Finalized
//
//   - It before any Because is an ordering violation.
//   - Because after any It is an ordering violation.
//   - Dispose before both phases ran is a lifecycle violation.
//   - Every call after Dispose is a lifecycle violation.
//
// The lifecycle check runs first: after Dispose, It and Because report
// ALREADY_FINALIZED even where they would otherwise break the ordering.
//
// Violations are returned immediately. Assertion failures are deferred and
// returned exactly once, by Dispose: a single failure as *AssertionError,
// two or more as *AggregateError in capture order.
//
// Closures run inline on the calling goroutine. A closure "raises" by
// returning an error or by panicking; a panic value that is not an error is
// wrapped in *PanicError.
//
// An Engine is not safe for concurrent use. Each test owns exactly one.
//
// Usage:
//
//	e := engine.New()
//	result, err := engine.BecauseValue(e, func() int { return 5 })
//	if err != nil {
//	    return err
//	}
//	e.It("is five", func() error {
//	    if result != 5 {
//	        return fmt.Errorf("got %d", result)
//	    }
//	    return nil
//	})
//	return e.Dispose()
package engine
