// Package swr derives resonance and bandwidth figures from a sweep.
package swr

import (
	"github.com/coddingtonbear/sark100web/pkg/models"
)

// CenterFrequency returns the frequency with the lowest SWR. On ties the
// first sample wins. ok is false for an empty sweep.
func CenterFrequency(samples []models.Sample) (freq int64, ok bool) {
	if len(samples) == 0 {
		return 0, false
	}

	best := samples[0]
	for _, s := range samples[1:] {
		if s.SWR < best.SWR {
			best = s
		}
	}
	return best.Frequency, true
}

// Bandwidth returns the contiguous range containing center where SWR stays at
// or below maxSWR. end is the first frequency past center that exceeds
// maxSWR; if the sweep never rises above maxSWR again, ok is false.
func Bandwidth(center int64, samples []models.Sample, maxSWR float64) (start, end int64, ok bool) {
	var (
		inBand     bool
		passedFreq bool
	)

	for _, s := range samples {
		switch {
		case s.SWR <= maxSWR && !inBand:
			start, inBand = s.Frequency, true
		case s.SWR > maxSWR && inBand && !passedFreq:
			inBand = false
		case s.SWR > maxSWR && inBand && passedFreq:
			return start, s.Frequency, true
		}

		if s.Frequency == center {
			passedFreq = true
		}
	}

	return 0, 0, false
}
