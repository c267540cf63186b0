package mutation

import (
	"context"
	"errors"
	"fmt"
	"net"

	apperrors "github.com/shutterdesk/studio/internal/errors"
)

// Kind classifies why a mutation failed.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindAuthorization Kind = "authorization"
	KindNetwork       Kind = "network"
	KindInternal      Kind = "internal"
)

// Op names a mutation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Error is returned by every failed mutation.
type Error struct {
	Kind     Kind
	Op       Op
	Resource string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s failed (%s): %v", e.Resource, e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var merr *Error
	if errors.As(err, &merr) {
		return merr.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return KindValidation
	case apperrors.ErrCodeNotFound:
		return KindNotFound
	case apperrors.ErrCodeConflict:
		return KindConflict
	case apperrors.ErrCodeUnauthorized:
		return KindAuthorization
	case apperrors.ErrCodeUnavailable, apperrors.ErrCodeTimeout, apperrors.ErrCodeCanceled:
		return KindNetwork
	case apperrors.ErrCodeInternal:
		return KindInternal
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindInternal
}
