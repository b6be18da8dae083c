package connector

import (
	"errors"
	"fmt"
)

// Failure kinds. Every failure on the connection matches exactly one of them
// under errors.Is. A failure to print the response to the output writer is
// returned as-is and matches none of them.
var (
	ErrConnection = errors.New("connection failed")
	ErrWrite      = errors.New("write failed")
	ErrRead       = errors.New("read failed")
	ErrDecode     = errors.New("decode failed")
)

// OpError records which step of an exchange failed, against which address.
type OpError struct {
	Kind error
	Addr string
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v [%s]", e.Kind, e.Addr)
	}
	return fmt.Sprintf("%v [%s]: %v", e.Kind, e.Addr, e.Err)
}

// Unwrap exposes both the kind and the cause, so errors.Is works for
// ErrRead as well as io.EOF.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newOpError(kind error, addr string, err error) *OpError {
	return &OpError{Kind: kind, Addr: addr, Err: err}
}
