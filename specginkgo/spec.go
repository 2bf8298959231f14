// Package specginkgo binds the Because/It engine to Ginkgo specs.
//
// Call Setup inside a container node. Each spec gets a fresh engine from a
// BeforeEach, and a DeferCleanup finalizes it after the spec body:
//
//	var _ = Describe("Cart", func() {
//	    s := specginkgo.Setup()
//
//	    It("totals the items", func() {
//	        total := specginkgo.Value(s, func() int { return cart.Total() })
//	        s.It("sums item prices", func(g Gomega) {
//	            g.Expect(total).To(Equal(30))
//	        })
//	    })
//	})
//
// Assertions receive their own Gomega, so a failed matcher is captured
// under its label instead of failing the spec immediately.
package specginkgo

import (
	"fmt"
	"io"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/roach88/specbecause/engine"
)

// Spec forwards Because/It calls to the current spec's engine.
type Spec struct {
	factory    func() *engine.Engine
	engineOpts []engine.Option
	engine     *engine.Engine

	fail   func(message string, callerSkip ...int)
	log    io.Writer
	failed bool
}

// Option configures a Spec.
type Option func(*Spec)

// WithFactory builds each spec's engine with f.
func WithFactory(f func() *engine.Engine) Option {
	return func(s *Spec) {
		s.factory = f
	}
}

// WithEngineOptions passes options to the default engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Spec) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithFailHandler routes spec failures to fail instead of ginkgo.Fail.
func WithFailHandler(fail func(message string, callerSkip ...int)) Option {
	return func(s *Spec) {
		s.fail = fail
	}
}

// Setup registers the per-spec engine lifecycle in the enclosing container.
func Setup(opts ...Option) *Spec {
	s := &Spec{}
	for _, opt := range opts {
		opt(s)
	}
	if s.factory == nil {
		s.factory = func() *engine.Engine { return engine.New(s.engineOpts...) }
	}
	if s.fail == nil {
		s.fail = ginkgo.Fail
	}
	s.log = ginkgo.GinkgoWriter

	ginkgo.BeforeEach(func() {
		s.engine = s.factory()
		s.failed = false
		ginkgo.DeferCleanup(s.finalize)
	})

	return s
}

func (s *Spec) finalize() {
	e := s.engine
	s.engine = nil

	err := e.Dispose()
	if err == nil {
		return
	}
	// A spec that already failed keeps its own failure; a phase error is only logged.
	if engine.IsLifecycleViolation(err) && (s.failed || ginkgo.CurrentSpecReport().Failed()) {
		fmt.Fprintf(s.log, "specbecause: %v\n", err)
		return
	}
	s.failNow(err.Error())
}

func (s *Spec) failNow(message string) {
	ginkgo.GinkgoHelper()
	s.failed = true
	s.fail(message)
}

// Engine returns the current spec's engine.
func (s *Spec) Engine() *engine.Engine {
	return s.engine
}

// Because runs the act phase. An ordering violation fails the spec now.
func (s *Spec) Because(act func()) {
	ginkgo.GinkgoHelper()
	if err := s.engine.Because(act); err != nil {
		s.failNow(err.Error())
	}
}

// It runs a labeled gomega assertion.
func (s *Spec) It(label string, assertion func(g gomega.Gomega)) {
	ginkgo.GinkgoHelper()
	s.ItErr(label, Assertion(assertion))
}

// ItErr runs a labeled assertion that fails by returning an error.
func (s *Spec) ItErr(label string, assertion engine.Assertion) {
	ginkgo.GinkgoHelper()
	if err := s.engine.It(label, assertion); err != nil {
		s.failNow(err.Error())
	}
}

// Assertion adapts a gomega-based check to an engine.Assertion. A failed
// matcher stops the check and becomes its error.
func Assertion(fn func(g gomega.Gomega)) engine.Assertion {
	return engine.Checked(func(c *engine.Check) {
		fn(gomega.NewWithT(c))
	})
}

// Value runs the act phase and returns its result.
func Value[T any](s *Spec, act func() T) T {
	ginkgo.GinkgoHelper()
	result, err := engine.BecauseValue(s.engine, act)
	if err != nil {
		s.failNow(err.Error())
	}
	return result
}

// Throws runs the act phase expecting an error of type E.
func Throws[E error](s *Spec, act func() error) (E, bool) {
	ginkgo.GinkgoHelper()
	thrown, err := engine.BecauseThrows[E](s.engine, act)
	if err != nil {
		s.failNow(err.Error())
	}
	return thrown.Caught()
}
