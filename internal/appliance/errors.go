package appliance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// Kind classifies where a send failed.
type Kind string

const (
	KindConnect  Kind = "connect"
	KindEncode   Kind = "encode"
	KindWrite    Kind = "write"
	KindRead     Kind = "read"
	KindProtocol Kind = "protocol"
	KindTimeout  Kind = "timeout"
)

// Error is returned by every failed Send.
type Error struct {
	Kind Kind
	Addr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("appliance: %s %s: %v", e.Kind, e.Addr, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Kind, true
	}
	return "", false
}

// classify maps an I/O error to KindTimeout when a deadline fired and to
// fallback otherwise.
func classify(addr string, fallback Kind, err error) *Error {
	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Addr: addr, Err: err}
	}
	return &Error{Kind: fallback, Addr: addr, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
