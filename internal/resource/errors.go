package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrStatus indicates a non-2xx HTTP response.
	ErrStatus = errors.New("resource: unexpected http status")

	// ErrEmptyRef indicates an empty resource reference.
	ErrEmptyRef = errors.New("resource: empty reference")
)

// StatusError carries the failed response's status line.
type StatusError struct {
	Ref        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("resource: %s: %s", e.Ref, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrStatus }
