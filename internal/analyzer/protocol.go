package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/coddingtonbear/sark100web/pkg/models"
)

// MaxFrequency is the highest frequency in Hz the analyzer accepts
const MaxFrequency int64 = 60_000_000

// StopCommand takes the analyzer out of scanning mode
const StopCommand = "off\r"

const (
	markerStart = "Start"
	markerEnd   = "End"
	ackPrompt   = ">>"
	ackOK       = "OK"
	errorPrefix = "Error:"
)

// decimalField matches the plain decimal SWR the analyzer prints. It keeps
// out NaN, Inf and hex floats that strconv would otherwise accept.
var decimalField = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// ClampFrequency limits v to MaxFrequency
func ClampFrequency(v int64) int64 {
	return min(v, MaxFrequency)
}

// ScanCommand encodes the sweep command for req. The stop bound is sent one
// step past the clamped stop so the last requested point is measured.
func ScanCommand(req ScanRequest) string {
	return fmt.Sprintf("scan %d %d %d\r",
		ClampFrequency(req.Start),
		ClampFrequency(req.Stop)+req.Step,
		req.Step)
}

// ParseSample decodes a swr,r,x,z data line. The frequency is left zero.
func ParseSample(line string) (models.Sample, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return models.Sample{}, &ParseError{Line: line, Err: fmt.Errorf("expected 4 fields, got %d", len(fields))}
	}

	swrField := strings.TrimSpace(fields[0])
	if !decimalField.MatchString(swrField) {
		return models.Sample{}, &ParseError{Line: line, Err: fmt.Errorf("swr %q is not a decimal number", swrField)}
	}
	swr, err := strconv.ParseFloat(swrField, 64)
	if err != nil {
		return models.Sample{}, &ParseError{Line: line, Err: err}
	}

	var ohms [3]int
	for i, f := range fields[1:] {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return models.Sample{}, &ParseError{Line: line, Err: err}
		}
		ohms[i] = v
	}

	return models.Sample{SWR: swr, R: ohms[0], X: ohms[1], Z: ohms[2]}, nil
}

type state int

const (
	stateAwaitingStart state = iota
	stateCollecting
	stateAwaitingStopAck
	stateDone
)

func (s state) String() string {
	switch s {
	case stateAwaitingStart:
		return "AwaitingStart"
	case stateCollecting:
		return "Collecting"
	case stateAwaitingStopAck:
		return "AwaitingStopAck"
	case stateDone:
		return "Done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// decoder tracks the protocol state of one scan and collects its samples.
// Data lines are accepted before the Start marker as well.
type decoder struct {
	state   state
	next    int64
	step    int64
	samples []models.Sample
}

func newDecoder(start, step int64) *decoder {
	return &decoder{
		state:   stateAwaitingStart,
		next:    start,
		step:    step,
		samples: []models.Sample{},
	}
}

// feed advances the decoder by one inbound line
func (d *decoder) feed(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	switch d.state {
	case stateAwaitingStart, stateCollecting:
		return d.feedSweep(line)
	case stateAwaitingStopAck:
		return d.feedStop(line)
	default:
		return unexpectedResponse(line)
	}
}

func (d *decoder) feedSweep(line string) error {
	switch {
	case line == markerStart:
		d.state = stateCollecting
		return nil
	case line == markerEnd:
		d.state = stateAwaitingStopAck
		return nil
	case strings.HasPrefix(line, errorPrefix):
		return deviceErrorFromLine(line)
	}

	sample, err := ParseSample(line)
	if err != nil {
		return err
	}
	sample.Frequency = d.next
	d.samples = append(d.samples, sample)
	d.next += d.step
	d.state = stateCollecting
	return nil
}

func (d *decoder) feedStop(line string) error {
	switch {
	case line == ackPrompt, line == ackOK:
		d.state = stateDone
		return nil
	case strings.HasPrefix(line, errorPrefix):
		return deviceErrorFromLine(line)
	default:
		return unexpectedResponse(line)
	}
}

func deviceErrorFromLine(line string) *DeviceError {
	return &DeviceError{Message: strings.TrimSpace(strings.TrimPrefix(line, errorPrefix))}
}

func unexpectedResponse(line string) *DeviceError {
	return &DeviceError{Message: fmt.Sprintf("unexpected response: %s", line)}
}
