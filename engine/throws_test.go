package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notFoundError struct {
	key string
}

func (e *notFoundError) Error() string { return "not found: " + e.key }

type permissionError struct{}

func (e *permissionError) Error() string { return "permission denied" }

type temporary interface {
	error
	Temporary() bool
}

type flakyError struct{}

func (flakyError) Error() string   { return "flaky" }
func (flakyError) Temporary() bool { return true }

func TestBecauseThrows_ExpectedType(t *testing.T) {
	e := newTestEngine()
	raised := &notFoundError{key: "widget"}

	thrown, err := BecauseThrows[*notFoundError](e, func() error { return raised })

	require.NoError(t, err)
	assert.Equal(t, ExpectedThrown, thrown.Kind)
	got, ok := thrown.Caught()
	assert.True(t, ok)
	assert.Same(t, raised, got)
	assert.Nil(t, thrown.Unexpected)
	assert.Equal(t, StateActRun, e.State())
}

func TestBecauseThrows_WrappedExpectedType(t *testing.T) {
	e := newTestEngine()
	raised := &notFoundError{key: "widget"}

	thrown, err := BecauseThrows[*notFoundError](e, func() error {
		return fmt.Errorf("lookup: %w", raised)
	})

	require.NoError(t, err)
	got, ok := thrown.Caught()
	require.True(t, ok)
	assert.Same(t, raised, got)
}

func TestBecauseThrows_InterfaceTypeMatchesImplementations(t *testing.T) {
	e := newTestEngine()

	thrown, err := BecauseThrows[temporary](e, func() error { return flakyError{} })

	require.NoError(t, err)
	got, ok := thrown.Caught()
	require.True(t, ok)
	assert.True(t, got.Temporary())
}

func TestBecauseThrows_PanickedErrorCounts(t *testing.T) {
	e := newTestEngine()

	thrown, err := BecauseThrows[*permissionError](e, func() error {
		panic(&permissionError{})
	})

	require.NoError(t, err)
	assert.Equal(t, ExpectedThrown, thrown.Kind)
}

func TestBecauseThrows_UnexpectedType(t *testing.T) {
	e := newTestEngine()
	raised := &permissionError{}

	thrown, err := BecauseThrows[*notFoundError](e, func() error { return raised })

	require.Error(t, err)
	var ue *UnexpectedActError
	require.ErrorAs(t, err, &ue)
	assert.Same(t, raised, ue.Cause)
	assert.Equal(t, "*engine.notFoundError", ue.Expected)
	assert.ErrorIs(t, err, raised)

	assert.Equal(t, UnexpectedThrown, thrown.Kind)
	assert.Same(t, ue, thrown.Unexpected)
	_, ok := thrown.Caught()
	assert.False(t, ok)

	assert.False(t, IsOrderingViolation(err))
	assert.Empty(t, e.Failures(), "unexpected act errors are never captured")
}

func TestBecauseThrows_NonErrorPanicIsUnexpected(t *testing.T) {
	e := newTestEngine()

	_, err := BecauseThrows[*notFoundError](e, func() error { panic("boom") })

	var ue *UnexpectedActError
	require.ErrorAs(t, err, &ue)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Value)
}

func TestBecauseThrows_NothingRaised(t *testing.T) {
	e := newTestEngine()

	thrown, err := BecauseThrows[*notFoundError](e, func() error { return nil })

	require.NoError(t, err)
	assert.Equal(t, NothingThrown, thrown.Kind)
	got, ok := thrown.Caught()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestBecauseThrows_StdlibSentinelType(t *testing.T) {
	e := newTestEngine()

	thrown, err := BecauseThrows[*fs.PathError](e, func() error {
		return &fs.PathError{Op: "open", Path: "missing.txt", Err: fs.ErrNotExist}
	})

	require.NoError(t, err)
	got, ok := thrown.Caught()
	require.True(t, ok)
	assert.Equal(t, "missing.txt", got.Path)
	assert.True(t, errors.Is(got, fs.ErrNotExist))
}

func TestBecauseThrows_AfterItIsOrderingViolation(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Because(func() {}))
	require.NoError(t, e.It("passes", pass))

	ran := false
	thrown, err := BecauseThrows[*notFoundError](e, func() error {
		ran = true
		return nil
	})

	assert.True(t, IsOrderingViolation(err))
	assert.False(t, ran)
	assert.Equal(t, NothingThrown, thrown.Kind)
}

func TestBecauseThrows_SatisfiesActPhase(t *testing.T) {
	e := newTestEngine()
	_, err := BecauseThrows[*notFoundError](e, func() error { return &notFoundError{} })
	require.NoError(t, err)

	require.NoError(t, e.It("saw the error", pass))
	assert.NoError(t, e.Dispose())
}

func TestThrowKind_String(t *testing.T) {
	assert.Equal(t, "nothing", NothingThrown.String())
	assert.Equal(t, "expected", ExpectedThrown.String())
	assert.Equal(t, "unexpected", UnexpectedThrown.String())
	assert.Equal(t, "unknown", ThrowKind(7).String())
}
