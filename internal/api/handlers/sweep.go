package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/coddingtonbear/sark100web/internal/analyzer"
	"github.com/coddingtonbear/sark100web/internal/processing"
	"github.com/coddingtonbear/sark100web/internal/transport"
	"github.com/coddingtonbear/sark100web/pkg/models"
)

// PortLister enumerates the serial ports on the host
type PortLister func() ([]models.PortInfo, error)

// SweepHandler handles sweep-related HTTP requests
type SweepHandler struct {
	sweepSvc  processing.SweepService
	listPorts PortLister
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(sweepSvc processing.SweepService, listPorts PortLister) *SweepHandler {
	return &SweepHandler{
		sweepSvc:  sweepSvc,
		listPorts: listPorts,
	}
}

// GetSamples runs a sweep and returns the raw samples
func (h *SweepHandler) GetSamples(ctx context.Context, req *models.GetSamplesRequest) (*models.GetSamplesResponse, error) {
	params := processing.SweepParams{
		Start: req.Body.Start,
		End:   req.Body.End,
		Steps: req.Body.Steps,
	}

	log.Info().Float64("start", params.Start).Float64("end", params.End).Int("steps", params.Steps).Msg("Sample request received")
	samples, err := h.sweepSvc.Samples(ctx, params)
	if err != nil {
		return nil, scanError(err)
	}

	return &models.GetSamplesResponse{Body: samples}, nil
}

// RunSweep runs a sweep and returns the samples with resonance and bandwidth figures
func (h *SweepHandler) RunSweep(ctx context.Context, req *models.SweepRequest) (*models.SweepResponse, error) {
	params := processing.SweepParams{
		Start:      req.Body.Start,
		End:        req.Body.End,
		Steps:      req.Body.Steps,
		Thresholds: req.Body.SWRMax,
	}

	log.Info().Float64("start", params.Start).Float64("end", params.End).Int("steps", params.Steps).Msg("Sweep request received")
	result, err := h.sweepSvc.Sweep(ctx, params)
	if err != nil {
		return nil, scanError(err)
	}

	return &models.SweepResponse{Body: result}, nil
}

// ListPorts returns the serial ports available on the host
func (h *SweepHandler) ListPorts(ctx context.Context, _ *struct{}) (*models.ListPortsResponse, error) {
	ports, err := h.listPorts()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list serial ports", err)
	}

	resp := &models.ListPortsResponse{}
	resp.Body.Ports = ports
	return resp, nil
}

// scanError maps scan failures to HTTP errors
func scanError(err error) error {
	var (
		deviceErr    *analyzer.DeviceError
		parseErr     *analyzer.ParseError
		transportErr *transport.Error
	)

	switch {
	case errors.Is(err, processing.ErrInvalidSweep), errors.Is(err, analyzer.ErrInvalidStep):
		return huma.Error400BadRequest("Invalid sweep parameters", err)
	case errors.As(err, &deviceErr):
		log.Warn().Str("message", deviceErr.Message).Msg("Analyzer reported an error")
		return huma.Error502BadGateway("Analyzer error: "+deviceErr.Message, err)
	case errors.As(err, &parseErr):
		log.Warn().Err(err).Msg("Analyzer sent malformed data")
		return huma.Error502BadGateway("Analyzer sent malformed data", err)
	case errors.Is(err, analyzer.ErrBusy):
		return huma.Error503ServiceUnavailable("Analyzer busy, try again later", err)
	case errors.As(err, &transportErr):
		log.Error().Err(err).Msg("Analyzer connection failed")
		return huma.Error503ServiceUnavailable("Analyzer not reachable", err)
	default:
		log.Error().Err(err).Msg("Sweep failed")
		return huma.Error500InternalServerError("Sweep failed", err)
	}
}
