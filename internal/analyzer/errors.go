package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when the device slot could not be acquired
	ErrBusy = errors.New("analyzer busy")
	// ErrInvalidStep is returned for a non-positive step size
	ErrInvalidStep = errors.New("step must be positive")
)

// DeviceError is a fault reported by the analyzer itself
type DeviceError struct {
	Message string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device error: %s", e.Message)
}

// ParseError is a data line that does not match swr,r,x,z
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed data line %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
