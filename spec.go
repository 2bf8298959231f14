package specbecause

import (
	"log/slog"
	"testing"

	"github.com/roach88/specbecause/engine"
	"github.com/roach88/specbecause/internal/report"
)

// Factory builds a fresh engine for one test.
type Factory func() *engine.Engine

type config struct {
	engine     *engine.Engine
	factory    Factory
	engineOpts []engine.Option
}

// Option configures a Spec.
type Option func(*config)

// WithEngine uses the given engine instead of building one.
// The engine must not be shared with another test.
func WithEngine(e *engine.Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithFactory builds the engine with f. It is called once, from New.
func WithFactory(f Factory) Option {
	return func(c *config) {
		c.factory = f
	}
}

// WithLogger sets the logger of the default engine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.engineOpts = append(c.engineOpts, engine.WithLogger(logger))
	}
}

// WithEngineOptions passes options to the default engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(c *config) {
		c.engineOpts = append(c.engineOpts, opts...)
	}
}

// Spec binds an engine to one test.
type Spec struct {
	t      testing.TB
	engine *engine.Engine
}

// New binds a fresh engine to t and finalizes it when t's cleanup runs.
func New(t testing.TB, opts ...Option) *Spec {
	t.Helper()

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	e := cfg.engine
	if e == nil {
		factory := cfg.factory
		if factory == nil {
			factory = func() *engine.Engine { return engine.New(cfg.engineOpts...) }
		}
		e = factory()
	}

	s := &Spec{t: t, engine: e}
	t.Cleanup(s.finalize)
	return s
}

// Engine returns the underlying engine.
func (s *Spec) Engine() *engine.Engine {
	return s.engine
}

// Because runs the act phase. An ordering violation fails the test now.
func (s *Spec) Because(act func()) {
	s.t.Helper()
	if err := s.engine.Because(act); err != nil {
		s.t.Fatalf("specbecause: %v", err)
	}
}

// Value runs the act phase and returns its result.
func Value[T any](s *Spec, act func() T) T {
	s.t.Helper()
	result, err := engine.BecauseValue(s.engine, act)
	if err != nil {
		s.t.Fatalf("specbecause: %v", err)
	}
	return result
}

// Throws runs the act phase expecting an error of type E. It returns the
// error and true, or the zero value and false if act raised nothing.
// An error of any other type fails the test now.
func Throws[E error](s *Spec, act func() error) (E, bool) {
	s.t.Helper()
	thrown, err := engine.BecauseThrows[E](s.engine, act)
	if err != nil {
		s.t.Fatalf("specbecause: %v", err)
	}
	return thrown.Caught()
}

// It runs a labeled assertion against a Check. Failures are reported when
// the test finishes.
//
//	s.It("returns the stored value", func(c *engine.Check) {
//	    assert.Equal(c, "v", got)
//	})
func (s *Spec) It(label string, assertion func(c *engine.Check)) {
	s.t.Helper()
	s.ItErr(label, engine.Checked(assertion))
}

// ItErr runs a labeled assertion that fails by returning an error.
func (s *Spec) ItErr(label string, assertion engine.Assertion) {
	s.t.Helper()
	if err := s.engine.It(label, assertion); err != nil {
		s.t.Fatalf("specbecause: %v", err)
	}
}

func (s *Spec) finalize() {
	s.t.Helper()
	report.Finalize(s.t, s.engine.Dispose())
}
