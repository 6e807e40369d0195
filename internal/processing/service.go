package processing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/coddingtonbear/sark100web/internal/analyzer"
	"github.com/coddingtonbear/sark100web/internal/swr"
	"github.com/coddingtonbear/sark100web/pkg/models"
)

const hzPerMHz = 1_000_000

// ErrInvalidSweep is returned when the requested range cannot be swept
var ErrInvalidSweep = errors.New("invalid sweep parameters")

// SweepParams describes a sweep the way the operator enters it
type SweepParams struct {
	Start      float64 // MHz
	End        float64 // MHz
	Steps      int
	Thresholds []float64
}

type SweepService interface {
	Samples(ctx context.Context, params SweepParams) ([]models.Sample, error)
	Sweep(ctx context.Context, params SweepParams) (*models.SweepResult, error)
}

type sweepService struct {
	scanner    analyzer.Scanner
	thresholds []float64
}

func NewSweepService(scanner analyzer.Scanner, thresholds []float64) SweepService {
	return &sweepService{
		scanner:    scanner,
		thresholds: thresholds,
	}
}

// StepSize splits the MHz range into steps, truncated to whole Hz
func StepSize(start, end float64, steps int) int64 {
	if steps <= 0 {
		return 0
	}
	return int64(hzPerMHz * (end - start) / float64(steps))
}

func (s *sweepService) Samples(ctx context.Context, params SweepParams) ([]models.Sample, error) {
	req, err := scanRequest(params)
	if err != nil {
		return nil, err
	}
	return s.scanner.Scan(ctx, req)
}

func (s *sweepService) Sweep(ctx context.Context, params SweepParams) (*models.SweepResult, error) {
	req, err := scanRequest(params)
	if err != nil {
		return nil, err
	}

	samples, err := s.scanner.Scan(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &models.SweepResult{
		ID:        req.ID,
		Start:     params.Start,
		End:       params.End,
		Step:      req.Step,
		Samples:   samples,
		Bandwidth: []models.BandwidthStat{},
	}

	center, ok := swr.CenterFrequency(samples)
	if !ok {
		return result, nil
	}
	centerMHz := toMHz(center)
	result.CenterFrequency = &centerMHz

	thresholds := params.Thresholds
	if len(thresholds) == 0 {
		thresholds = s.thresholds
	}
	for _, maxSWR := range thresholds {
		start, end, ok := swr.Bandwidth(center, samples, maxSWR)
		if !ok {
			continue
		}
		result.Bandwidth = append(result.Bandwidth, models.BandwidthStat{
			SWRMax:    maxSWR,
			Start:     toMHz(start),
			End:       toMHz(end),
			Bandwidth: toMHz(end - start),
		})
	}

	log.Info().
		Str("scanID", result.ID).
		Float64("centerFrequency", centerMHz).
		Int("bandwidthStats", len(result.Bandwidth)).
		Msg("Sweep analyzed")

	return result, nil
}

func scanRequest(params SweepParams) (analyzer.ScanRequest, error) {
	if params.Start < 0 || params.End <= params.Start {
		return analyzer.ScanRequest{}, fmt.Errorf("%w: end %.3f MHz must be above start %.3f MHz", ErrInvalidSweep, params.End, params.Start)
	}
	step := StepSize(params.Start, params.End, params.Steps)
	if step <= 0 {
		return analyzer.ScanRequest{}, fmt.Errorf("%w: %d steps over %.3f-%.3f MHz gives no usable step", ErrInvalidSweep, params.Steps, params.Start, params.End)
	}

	return analyzer.ScanRequest{
		ID:    uuid.New().String(),
		Start: toHz(params.Start),
		Stop:  toHz(params.End),
		Step:  step,
	}, nil
}

func toHz(mhz float64) int64 {
	return int64(math.Round(mhz * hzPerMHz))
}

func toMHz(hz int64) float64 {
	return float64(hz) / hzPerMHz
}
