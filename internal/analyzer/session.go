package analyzer

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/coddingtonbear/sark100web/internal/transport"
	"github.com/coddingtonbear/sark100web/pkg/models"
)

// ScanRequest holds the sweep parameters in Hz
type ScanRequest struct {
	ID    string
	Start int64
	Stop  int64
	Step  int64
}

// ScanSession runs one sweep over an open transport. It does not own the
// transport; closing it is up to the caller.
type ScanSession struct {
	conn    transport.Transport
	timeout time.Duration
	logger  zerolog.Logger
}

// NewScanSession creates a session reading lines with the given timeout
func NewScanSession(conn transport.Transport, timeout time.Duration, logger zerolog.Logger) *ScanSession {
	return &ScanSession{
		conn:    conn,
		timeout: timeout,
		logger:  logger,
	}
}

// Run performs the sweep and the stop handshake. Samples are only returned
// when both phases succeed.
func (s *ScanSession) Run(req ScanRequest) ([]models.Sample, error) {
	if req.Step <= 0 {
		return nil, ErrInvalidStep
	}

	dec := newDecoder(req.Start, req.Step)

	if err := s.sweep(dec, req); err != nil {
		var terr *transport.Error
		if !errors.As(err, &terr) {
			// Leave the device in a sane state, the sweep error wins
			dec.state = stateAwaitingStopAck
			if stopErr := s.stop(dec); stopErr != nil {
				s.logger.Warn().Err(stopErr).Msg("Failed to stop scan after sweep error")
			}
		}
		return nil, err
	}

	if err := s.stop(dec); err != nil {
		return nil, err
	}

	s.logger.Info().Int("samples", len(dec.samples)).Msg("Scan completed")
	return dec.samples, nil
}

func (s *ScanSession) sweep(dec *decoder, req ScanRequest) error {
	command := ScanCommand(req)
	s.logger.Info().Str("command", strings.TrimSpace(command)).Msg("Sending scan command")
	if err := s.conn.Write([]byte(command)); err != nil {
		return err
	}
	return s.readUntil(dec, stateAwaitingStopAck)
}

func (s *ScanSession) stop(dec *decoder) error {
	s.logger.Info().Msg("Stopping scan")
	if err := s.conn.Write([]byte(StopCommand)); err != nil {
		return err
	}
	return s.readUntil(dec, stateDone)
}

func (s *ScanSession) readUntil(dec *decoder, until state) error {
	for dec.state != until {
		line, err := s.conn.ReadLine(s.timeout)
		if err != nil {
			return err
		}
		s.logger.Debug().Str("line", line).Stringer("state", dec.state).Msg("Received line")
		if err := dec.feed(line); err != nil {
			return err
		}
	}
	return nil
}
