package planner

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced record does not exist.
// Kind is one of KindProject or KindTodo.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrUnauthorized is returned when the injected policy rejects the caller.
var ErrUnauthorized = errors.New("caller is not authorized")

// ErrInvalidOwner is returned in multi-tenant mode when the caller id
// cannot be used as a key segment (it contains the key separator).
var ErrInvalidOwner = errors.New("caller id is not usable as an owner namespace")
