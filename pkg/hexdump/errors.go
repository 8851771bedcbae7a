package hexdump

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable marks failures to open a byte source at all. The dump
// core never returns it; source layers wrap their open errors with it.
var ErrSourceUnavailable = errors.New("source unavailable")

// ReadError reports a read failure part way through a dump. Lines for the
// windows before Offset have already been written.
type ReadError struct {
	Offset uint32
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read failed at offset %08x: %v", e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failure writing the dump output.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
