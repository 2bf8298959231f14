// Package specsuite binds the Because/It engine to testify suites.
//
// Embed Suite in a testify suite. Every test method gets a fresh engine in
// SetupTest, and TearDownTest reports the collected failures:
//
//	type CartSuite struct {
//	    specsuite.Suite
//	}
//
//	func (s *CartSuite) TestTotal() {
//	    total := specsuite.Value(&s.Suite, func() int { return cart.Total() })
//	    s.It("sums item prices", func(c *engine.Check) {
//	        assert.Equal(c, 30, total)
//	    })
//	}
//
//	func TestCartSuite(t *testing.T) {
//	    suite.Run(t, new(CartSuite))
//	}
//
// A suite that defines its own SetupTest or TearDownTest must call the
// embedded Suite's method.
package specsuite

import (
	"github.com/stretchr/testify/suite"

	"github.com/roach88/specbecause/engine"
	"github.com/roach88/specbecause/internal/report"
)

// Suite is a testify suite with a per-test engine.
type Suite struct {
	suite.Suite

	// NewEngine builds the engine for each test. Defaults to engine.New.
	NewEngine func() *engine.Engine

	engine *engine.Engine
}

// SetupTest builds the engine for the next test method.
func (s *Suite) SetupTest() {
	if s.NewEngine != nil {
		s.engine = s.NewEngine()
	} else {
		s.engine = engine.New()
	}
}

// TearDownTest finalizes the engine and reports its failures.
func (s *Suite) TearDownTest() {
	s.finalize(s.T())
}

func (s *Suite) finalize(t report.T) {
	t.Helper()
	e := s.engine
	s.engine = nil
	if e == nil {
		t.Errorf("specbecause: SetupTest was not called before TearDownTest")
		return
	}
	report.Finalize(t, e.Dispose())
}

// Engine returns the current test's engine.
func (s *Suite) Engine() *engine.Engine {
	return s.engine
}

// Because runs the act phase. An ordering violation fails the test now.
func (s *Suite) Because(act func()) {
	s.T().Helper()
	if err := s.engine.Because(act); err != nil {
		s.T().Fatalf("specbecause: %v", err)
	}
}

// It runs a labeled assertion against a Check.
func (s *Suite) It(label string, assertion func(c *engine.Check)) {
	s.T().Helper()
	s.ItErr(label, engine.Checked(assertion))
}

// ItErr runs a labeled assertion that fails by returning an error.
func (s *Suite) ItErr(label string, assertion engine.Assertion) {
	s.T().Helper()
	if err := s.engine.It(label, assertion); err != nil {
		s.T().Fatalf("specbecause: %v", err)
	}
}

// Value runs the act phase and returns its result.
func Value[T any](s *Suite, act func() T) T {
	s.T().Helper()
	result, err := engine.BecauseValue(s.engine, act)
	if err != nil {
		s.T().Fatalf("specbecause: %v", err)
	}
	return result
}

// Throws runs the act phase expecting an error of type E.
func Throws[E error](s *Suite, act func() error) (E, bool) {
	s.T().Helper()
	thrown, err := engine.BecauseThrows[E](s.engine, act)
	if err != nil {
		s.T().Fatalf("specbecause: %v", err)
	}
	return thrown.Caught()
}
