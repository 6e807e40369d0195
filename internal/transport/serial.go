package transport

import (
	"bytes"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
)

const readChunkSize = 256

// SerialConfig holds the line settings used when opening a serial port
type SerialConfig struct {
	BaudRate int
	// RTS asserts the RTS line on open. The analyzer expects hardware
	// handshaking, which the driver does not negotiate on its own.
	RTS bool
}

// DefaultSerialConfig returns the settings the SARK-100 ships with
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{
		BaudRate: 57600,
		RTS:      true,
	}
}

// serialPort is the subset of serial.Port used by the transport
type serialPort interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// NewSerialOpener returns an Opener that opens serial ports with cfg
func NewSerialOpener(cfg SerialConfig) Opener {
	return func(name string) (Transport, error) {
		mode := &serial.Mode{
			BaudRate: cfg.BaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
			InitialStatusBits: &serial.ModemOutputBits{
				RTS: cfg.RTS,
				DTR: true,
			},
		}

		port, err := serial.Open(name, mode)
		if err != nil {
			return nil, &Error{Op: "open", Port: name, Err: err}
		}
		return newSerialTransport(name, port), nil
	}
}

type serialTransport struct {
	name    string
	port    serialPort
	pending []byte
	chunk   []byte
	now     func() time.Time
}

func newSerialTransport(name string, port serialPort) *serialTransport {
	return &serialTransport{
		name:  name,
		port:  port,
		chunk: make([]byte, readChunkSize),
		now:   time.Now,
	}
}

func (t *serialTransport) Write(p []byte) error {
	for len(p) > 0 {
		n, err := t.port.Write(p)
		if err != nil {
			return &Error{Op: "write", Port: t.name, Err: err}
		}
		p = p[n:]
	}
	return nil
}

func (t *serialTransport) ReadLine(timeout time.Duration) (string, error) {
	deadline := t.now().Add(timeout)
	for {
		if i := bytes.IndexByte(t.pending, '\n'); i >= 0 {
			line := string(t.pending[:i])
			t.pending = t.pending[i+1:]
			return strings.TrimSpace(line), nil
		}

		remaining := deadline.Sub(t.now())
		if remaining <= 0 {
			return "", &Error{Op: "read", Port: t.name, Err: ErrTimeout}
		}
		if err := t.port.SetReadTimeout(remaining); err != nil {
			return "", &Error{Op: "read", Port: t.name, Err: err}
		}

		// A zero-length read without error means the port timed out
		n, err := t.port.Read(t.chunk)
		if n > 0 {
			t.pending = append(t.pending, t.chunk[:n]...)
		}
		if err != nil {
			return "", &Error{Op: "read", Port: t.name, Err: err}
		}
	}
}

func (t *serialTransport) Close() error {
	if err := t.port.Close(); err != nil {
		return &Error{Op: "close", Port: t.name, Err: err}
	}
	return nil
}
