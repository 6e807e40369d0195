package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Port    string    `json:"port" doc:"Configured serial port"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// GetSamplesRequest represents a request for the raw sample list of a sweep
type GetSamplesRequest struct {
	Body struct {
		Start float64 `json:"start" minimum:"0" doc:"Sweep start frequency in MHz"`
		End   float64 `json:"end" minimum:"0" doc:"Sweep end frequency in MHz"`
		Steps int     `json:"steps,omitempty" minimum:"1" default:"100" doc:"Number of steps between start and end"`
	}
}

// GetSamplesResponse carries the ordered samples of a sweep
type GetSamplesResponse struct {
	Body []Sample
}

// SweepRequest represents a request for a sweep with derived metrics
type SweepRequest struct {
	Body struct {
		Start  float64   `json:"start,omitempty" minimum:"0" default:"12" doc:"Sweep start frequency in MHz"`
		End    float64   `json:"end,omitempty" minimum:"0" default:"17" doc:"Sweep end frequency in MHz"`
		Steps  int       `json:"steps,omitempty" minimum:"1" default:"40" doc:"Number of steps between start and end"`
		SWRMax []float64 `json:"swr_max,omitempty" doc:"SWR thresholds for bandwidth stats"`
	}
}

// SweepResponse carries a sweep result
type SweepResponse struct {
	Body *SweepResult
}

// PortInfo describes a serial port found on the host
type PortInfo struct {
	Name         string `json:"name" doc:"Port path"`
	IsUSB        bool   `json:"is_usb" doc:"Whether the port is a USB device"`
	VID          string `json:"vid,omitempty" doc:"USB vendor ID"`
	PID          string `json:"pid,omitempty" doc:"USB product ID"`
	SerialNumber string `json:"serial_number,omitempty" doc:"USB serial number"`
	Product      string `json:"product,omitempty" doc:"USB product name"`
}

// ListPortsResponse lists the serial ports available on the host
type ListPortsResponse struct {
	Body struct {
		Ports []PortInfo `json:"ports" doc:"Available serial ports"`
	}
}
