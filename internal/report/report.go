// Package report turns the result of engine.Dispose into test failures.
package report

import (
	"errors"

	"github.com/roach88/specbecause/engine"
)

// T is the subset of testing.TB used for reporting. testify's suite
// exposes its *testing.T through it as well.
type T interface {
	Helper()
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
	Failed() bool
}

// Finalize reports the error returned by engine.Dispose.
//
// Each labeled failure is reported on its own line so the test output lists
// every failing assertion. A lifecycle violation on a test that has already
// failed is only logged, since an earlier fatal error explains it.
func Finalize(t T, err error) {
	t.Helper()
	if err == nil {
		return
	}

	var agg *engine.AggregateError
	if errors.As(err, &agg) {
		for _, f := range agg.Failures {
			t.Errorf("%s: %v", f.Message, f.Cause)
		}
		return
	}

	var single *engine.AssertionError
	if errors.As(err, &single) {
		t.Errorf("%s: %v", single.Message, single.Cause)
		return
	}

	if engine.IsLifecycleViolation(err) && t.Failed() {
		t.Logf("specbecause: %v", err)
		return
	}
	t.Errorf("specbecause: %v", err)
}
