package models

// Sample is a single analyzer measurement at one frequency
type Sample struct {
	Frequency int64   `json:"frequency" doc:"Frequency in Hz"`
	SWR       float64 `json:"swr" doc:"Standing wave ratio"`
	R         int     `json:"r" doc:"Resistance in ohms"`
	X         int     `json:"x" doc:"Reactance in ohms"`
	Z         int     `json:"z" doc:"Impedance magnitude in ohms"`
}

// BandwidthStat describes the band around resonance where SWR stays at or below SWRMax
type BandwidthStat struct {
	SWRMax    float64 `json:"swr_max" doc:"SWR threshold"`
	Start     float64 `json:"start" doc:"Band start in MHz"`
	End       float64 `json:"end" doc:"Band end in MHz"`
	Bandwidth float64 `json:"bandwidth" doc:"Band width in MHz"`
}

// SweepResult is a completed sweep together with its derived metrics
type SweepResult struct {
	ID              string          `json:"id" doc:"Scan identifier"`
	Start           float64         `json:"start" doc:"Requested start frequency in MHz"`
	End             float64         `json:"end" doc:"Requested end frequency in MHz"`
	Step            int64           `json:"step" doc:"Step size in Hz"`
	Samples         []Sample        `json:"samples" doc:"Ordered samples"`
	CenterFrequency *float64        `json:"center_frequency,omitempty" doc:"Resonant frequency in MHz"`
	Bandwidth       []BandwidthStat `json:"bandwidth" doc:"Bandwidth per SWR threshold"`
}
