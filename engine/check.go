package engine

import (
	"errors"
	"fmt"
)

// Check records failures reported by assertion libraries inside an It.
//
// It satisfies testify's assert.TestingT and require.TestingT and gomega's
// GomegaTestingT, so their assertions can run against a Check instead of
// the test's *testing.T. Errorf records a failure and continues; FailNow
// and Fatalf stop the assertion, which Checked recovers.
type Check struct {
	errs []error
}

// failNow is the panic sentinel used by FailNow. Checked recovers it.
type failNow struct{}

// Errorf records a failure.
func (c *Check) Errorf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

// FailNow marks the check failed and stops the assertion.
func (c *Check) FailNow() {
	if len(c.errs) == 0 {
		c.errs = append(c.errs, errors.New("assertion stopped by FailNow"))
	}
	panic(failNow{})
}

// Fatalf records a failure and stops the assertion.
func (c *Check) Fatalf(format string, args ...any) {
	c.Errorf(format, args...)
	c.FailNow()
}

// Helper is a no-op; it exists to satisfy tHelper interfaces.
func (c *Check) Helper() {}

// Failed reports whether any failure was recorded.
func (c *Check) Failed() bool {
	return len(c.errs) > 0
}

// Err returns the recorded failures joined, or nil.
func (c *Check) Err() error {
	switch len(c.errs) {
	case 0:
		return nil
	case 1:
		return c.errs[0]
	default:
		return errors.Join(c.errs...)
	}
}

// Checked adapts a Check-based function to an Assertion.
// Panics other than FailNow propagate to It, which captures them. Failures
// recorded before such a panic are joined ahead of it.
func Checked(fn func(c *Check)) Assertion {
	return func() (err error) {
		c := &Check{}
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(failNow); !ok {
					if len(c.errs) == 0 {
						panic(r)
					}
					panic(errors.Join(append(c.errs, recovered(r))...))
				}
			}
			err = c.Err()
		}()
		fn(c)
		return nil
	}
}
