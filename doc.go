// Package specbecause structures a Go test as Because/It phases.
//
// The act runs once, then each assertion runs under a label. A failing
// assertion does not stop the test: every labeled failure is reported when
// the test's cleanup runs.
//
//	func TestCart_Total(t *testing.T) {
//	    s := specbecause.New(t)
//	    total := specbecause.Value(s, func() int { return cart.Total() })
//
//	    s.It("sums item prices", func(c *engine.Check) {
//	        assert.Equal(c, 30, total)
//	    })
//	    s.It("is not negative", func(c *engine.Check) {
//	        assert.GreaterOrEqual(c, total, 0)
//	    })
//	}
//
// Packages specsuite and specginkgo bind the same engine to testify suites
// and Ginkgo specs.
package specbecause
