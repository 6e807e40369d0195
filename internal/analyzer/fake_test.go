package analyzer

import (
	"time"

	"github.com/coddingtonbear/sark100web/internal/transport"
)

// scriptedTransport answers each written command with a canned list of
// lines. When the queue runs dry ReadLine times out.
type scriptedTransport struct {
	responses map[string][]string
	queue     []string
	writes    []string
	closed    int
	writeErr  error
}

func newScriptedTransport(responses map[string][]string) *scriptedTransport {
	return &scriptedTransport{responses: responses}
}

func (t *scriptedTransport) Write(p []byte) error {
	if t.writeErr != nil {
		return t.writeErr
	}
	cmd := string(p)
	t.writes = append(t.writes, cmd)
	t.queue = append(t.queue, t.responses[cmd]...)
	return nil
}

func (t *scriptedTransport) ReadLine(_ time.Duration) (string, error) {
	if len(t.queue) == 0 {
		return "", &transport.Error{Op: "read", Port: "fake", Err: transport.ErrTimeout}
	}
	line := t.queue[0]
	t.queue = t.queue[1:]
	return line, nil
}

func (t *scriptedTransport) Close() error {
	t.closed++
	return nil
}

func openerFor(conn transport.Transport) transport.Opener {
	return func(string) (transport.Transport, error) {
		return conn, nil
	}
}
