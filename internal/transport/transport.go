// Package transport provides the line-oriented duplex link to the analyzer.
package transport

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when no complete line arrives before the read deadline
var ErrTimeout = errors.New("read timeout")

// Transport is a byte-oriented duplex connection to a device
type Transport interface {
	// Write sends raw bytes to the device
	Write(p []byte) error
	// ReadLine blocks until one newline-terminated line arrives or the timeout
	// expires. The returned line is trimmed of surrounding whitespace.
	ReadLine(timeout time.Duration) (string, error)
	Close() error
}

// Opener opens a Transport by port name
type Opener func(name string) (Transport, error)

// Error is an I/O failure on the underlying connection
type Error struct {
	Op   string
	Port string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
