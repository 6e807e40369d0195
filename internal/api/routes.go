package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/coddingtonbear/sark100web/internal/api/handlers"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, sweepHandler *handlers.SweepHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "getSamples",
		Method:      http.MethodPost,
		Path:        "/api/get-samples",
		Summary:     "Get sweep samples",
		Description: "Runs a frequency sweep and returns the ordered samples",
		Tags:        []string{"Sweep"},
	}, sweepHandler.GetSamples)

	huma.Register(api, huma.Operation{
		OperationID: "runSweep",
		Method:      http.MethodPost,
		Path:        "/api/sweep",
		Summary:     "Run sweep",
		Description: "Runs a frequency sweep and returns samples, resonant frequency and bandwidth",
		Tags:        []string{"Sweep"},
	}, sweepHandler.RunSweep)

	huma.Register(api, huma.Operation{
		OperationID: "listPorts",
		Method:      http.MethodGet,
		Path:        "/api/ports",
		Summary:     "List serial ports",
		Description: "Returns the serial ports available on the host",
		Tags:        []string{"Device"},
	}, sweepHandler.ListPorts)
}
