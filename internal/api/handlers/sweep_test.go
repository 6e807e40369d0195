package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/coddingtonbear/sark100web/internal/analyzer"
	"github.com/coddingtonbear/sark100web/internal/processing"
	"github.com/coddingtonbear/sark100web/internal/transport"
	"github.com/coddingtonbear/sark100web/pkg/models"
)

// MockSweepService implements processing.SweepService for testing
type MockSweepService struct {
	mock.Mock
}

func (m *MockSweepService) Samples(ctx context.Context, params processing.SweepParams) ([]models.Sample, error) {
	args := m.Called(ctx, params)
	samples, _ := args.Get(0).([]models.Sample)
	return samples, args.Error(1)
}

func (m *MockSweepService) Sweep(ctx context.Context, params processing.SweepParams) (*models.SweepResult, error) {
	args := m.Called(ctx, params)
	result, _ := args.Get(0).(*models.SweepResult)
	return result, args.Error(1)
}

func noPorts() ([]models.PortInfo, error) {
	return nil, nil
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestGetSamples(t *testing.T) {
	samples := []models.Sample{
		{Frequency: 14_000_000, SWR: 1.4, R: 48, X: 10, Z: 49},
		{Frequency: 14_050_000, SWR: 1.3, R: 50, X: 6, Z: 50},
	}

	tests := []struct {
		name       string
		steps      int
		wantParams processing.SweepParams
	}{
		{
			name:       "explicit steps",
			steps:      20,
			wantParams: processing.SweepParams{Start: 14, End: 15, Steps: 20},
		},
		{
			name:       "zero steps passed through",
			wantParams: processing.SweepParams{Start: 14, End: 15, Steps: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockSweepService{}
			svc.On("Samples", mock.Anything, tt.wantParams).Return(samples, nil)
			handler := NewSweepHandler(svc, noPorts)

			req := &models.GetSamplesRequest{}
			req.Body.Start = 14
			req.Body.End = 15
			req.Body.Steps = tt.steps

			resp, err := handler.GetSamples(context.Background(), req)

			require.NoError(t, err)
			assert.Equal(t, samples, resp.Body)
			svc.AssertExpectations(t)
		})
	}
}

func TestGetSamples_ErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "invalid range",
			err:        fmt.Errorf("%w: end below start", processing.ErrInvalidSweep),
			wantStatus: 400,
		},
		{
			name:       "device error",
			err:        &analyzer.DeviceError{Message: "busy"},
			wantStatus: 502,
		},
		{
			name:       "parse error",
			err:        &analyzer.ParseError{Line: "x", Err: errors.New("expected 4 fields, got 1")},
			wantStatus: 502,
		},
		{
			name:       "device locked",
			err:        fmt.Errorf("%w: %w", analyzer.ErrBusy, context.DeadlineExceeded),
			wantStatus: 503,
		},
		{
			name:       "transport failure",
			err:        &transport.Error{Op: "read", Port: "/dev/ttyUSB0", Err: transport.ErrTimeout},
			wantStatus: 503,
		},
		{
			name:       "unknown",
			err:        assert.AnError,
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockSweepService{}
			svc.On("Samples", mock.Anything, mock.Anything).Return(nil, tt.err)
			handler := NewSweepHandler(svc, noPorts)

			req := &models.GetSamplesRequest{}
			req.Body.Start = 14
			req.Body.End = 15

			resp, err := handler.GetSamples(context.Background(), req)

			assert.Nil(t, resp)
			assert.Equal(t, tt.wantStatus, statusOf(t, err))
		})
	}
}

func TestRunSweep(t *testing.T) {
	center := 14.2
	result := &models.SweepResult{
		ID:              "scan-1",
		Start:           12,
		End:             17,
		Step:            125_000,
		CenterFrequency: &center,
	}

	tests := []struct {
		name       string
		setup      func(req *models.SweepRequest)
		wantParams processing.SweepParams
	}{
		{
			name: "explicit parameters",
			setup: func(req *models.SweepRequest) {
				req.Body.Start = 7
				req.Body.End = 7.3
				req.Body.Steps = 30
				req.Body.SWRMax = []float64{1.3}
			},
			wantParams: processing.SweepParams{Start: 7, End: 7.3, Steps: 30, Thresholds: []float64{1.3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockSweepService{}
			svc.On("Sweep", mock.Anything, tt.wantParams).Return(result, nil)
			handler := NewSweepHandler(svc, noPorts)

			req := &models.SweepRequest{}
			tt.setup(req)

			resp, err := handler.RunSweep(context.Background(), req)

			require.NoError(t, err)
			assert.Same(t, result, resp.Body)
			svc.AssertExpectations(t)
		})
	}
}

func TestRunSweep_DeviceError(t *testing.T) {
	svc := &MockSweepService{}
	svc.On("Sweep", mock.Anything, mock.Anything).Return(nil, &analyzer.DeviceError{Message: "low battery"})
	handler := NewSweepHandler(svc, noPorts)

	_, err := handler.RunSweep(context.Background(), &models.SweepRequest{})

	assert.Equal(t, 502, statusOf(t, err))
	assert.Contains(t, err.Error(), "low battery")
}

func TestListPorts(t *testing.T) {
	ports := []models.PortInfo{{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001"}}
	handler := NewSweepHandler(&MockSweepService{}, func() ([]models.PortInfo, error) {
		return ports, nil
	})

	resp, err := handler.ListPorts(context.Background(), &struct{}{})

	require.NoError(t, err)
	assert.Equal(t, ports, resp.Body.Ports)
}

func TestListPorts_Error(t *testing.T) {
	handler := NewSweepHandler(&MockSweepService{}, func() ([]models.PortInfo, error) {
		return nil, assert.AnError
	})

	_, err := handler.ListPorts(context.Background(), &struct{}{})

	assert.Equal(t, 500, statusOf(t, err))
}
