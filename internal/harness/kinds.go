package harness

import (
	"errors"
	"slices"

	"github.com/roach88/specbecause/engine"
)

// Error kinds a because_throws step can expect or raise.
const (
	KindNotFound   = "not_found"
	KindPermission = "permission"
	KindTimeout    = "timeout"

	// KindPlain raises an untyped error. It can be raised but not expected.
	KindPlain = "plain"
)

var knownKinds = []string{KindNotFound, KindPermission, KindTimeout}

func isKnownKind(kind string) bool {
	return slices.Contains(knownKinds, kind)
}

// NotFoundError is raised for KindNotFound.
type NotFoundError struct{}

func (*NotFoundError) Error() string { return "not found" }

// PermissionError is raised for KindPermission.
type PermissionError struct{}

func (*PermissionError) Error() string { return "permission denied" }

// TimeoutError is raised for KindTimeout.
type TimeoutError struct{}

func (*TimeoutError) Error() string { return "timed out" }

// newKindError returns the error for kind, or nil for an empty kind.
func newKindError(kind string) error {
	switch kind {
	case KindNotFound:
		return &NotFoundError{}
	case KindPermission:
		return &PermissionError{}
	case KindTimeout:
		return &TimeoutError{}
	case KindPlain:
		return errors.New("plain error")
	default:
		return nil
	}
}

// throwsFunc runs BecauseThrows for a fixed expected type.
type throwsFunc func(e *engine.Engine, act func() error) (engine.ThrowKind, error)

func throwsAs[E error](e *engine.Engine, act func() error) (engine.ThrowKind, error) {
	thrown, err := engine.BecauseThrows[E](e, act)
	return thrown.Kind, err
}

// throwsFor returns the BecauseThrows instantiation for an expected kind.
func throwsFor(kind string) throwsFunc {
	switch kind {
	case KindNotFound:
		return throwsAs[*NotFoundError]
	case KindPermission:
		return throwsAs[*PermissionError]
	case KindTimeout:
		return throwsAs[*TimeoutError]
	default:
		return nil
	}
}
