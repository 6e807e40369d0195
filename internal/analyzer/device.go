// Package analyzer speaks the SARK-100 serial protocol.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/coddingtonbear/sark100web/internal/transport"
	"github.com/coddingtonbear/sark100web/pkg/models"
)

// Scanner performs frequency sweeps
type Scanner interface {
	Scan(ctx context.Context, req ScanRequest) ([]models.Sample, error)
}

// Config holds the device settings
type Config struct {
	Port        string
	ReadTimeout time.Duration
	// LockTimeout bounds the wait for a running scan; zero waits as long as ctx
	LockTimeout time.Duration
}

type device struct {
	port        string
	open        transport.Opener
	timeout     time.Duration
	lockTimeout time.Duration
	slot        chan struct{}
}

// NewDevice creates a Scanner for the analyzer on cfg.Port. Scans are
// serialized; the context only bounds the wait for a running scan to finish.
func NewDevice(cfg Config, open transport.Opener) Scanner {
	return &device{
		port:        cfg.Port,
		open:        open,
		timeout:     cfg.ReadTimeout,
		lockTimeout: cfg.LockTimeout,
		slot:        make(chan struct{}, 1),
	}
}

// Scan opens the port, runs one session and closes the port again
func (d *device) Scan(ctx context.Context, req ScanRequest) ([]models.Sample, error) {
	if req.Step <= 0 {
		return nil, ErrInvalidStep
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if err := d.acquire(ctx); err != nil {
		return nil, err
	}
	defer func() { <-d.slot }()

	logger := log.With().Str("scanID", req.ID).Str("port", d.port).Logger()
	logger.Info().
		Int64("start", req.Start).
		Int64("stop", req.Stop).
		Int64("step", req.Step).
		Msg("Starting scan")

	conn, err := d.open(d.port)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close transport")
		}
	}()

	return NewScanSession(conn, d.timeout, logger).Run(req)
}

func (d *device) acquire(ctx context.Context) error {
	if d.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.lockTimeout)
		defer cancel()
	}

	select {
	case d.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrBusy, ctx.Err())
	}
}
