package session

import (
	"scenescribe/config"
	"scenescribe/types"
)

// Pace classifies a narration speed against the baseline band.
type Pace int

const (
	PaceGood Pace = iota
	PaceTooSlow
	PaceTooFast
)

// WPM computes a scene's words-per-minute pacing heuristic.
func WPM(s types.Scene) float64 {
	minutes := float64(s.DurationMs()) / 60000.0
	if minutes <= 0 {
		return 0
	}
	return float64(s.WordCount()) / minutes
}

// PaceOf places a WPM value inside or outside the 160±40 tolerance band.
func PaceOf(wpm float64) Pace {
	if wpm < config.BaselineWPM-config.WPMTolerance {
		return PaceTooSlow
	}
	if wpm > config.BaselineWPM+config.WPMTolerance {
		return PaceTooFast
	}
	return PaceGood
}
