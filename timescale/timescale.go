package timescale

import (
	"fmt"

	"scenescribe/config"
)

// MsToPixels converts a millisecond timeline position to a pixel offset.
// The scale is fixed at 1 pixel = 10 ms, so the pair with PixelsToMs is an
// exact linear inverse for any ms divisible by 10.
func MsToPixels(ms int) int {
	return ms / config.MsPerPixel
}

// PixelsToMs converts a pixel offset back to milliseconds.
func PixelsToMs(px int) int {
	return px * config.MsPerPixel
}

// MsToSeconds converts milliseconds to fractional seconds for the playback layer.
func MsToSeconds(ms int) float64 {
	return float64(ms) / 1000.0
}

// SecondsToMs converts fractional seconds to whole milliseconds.
func SecondsToMs(s float64) int {
	return int(s * 1000.0)
}

// FormatTimestamp renders a millisecond count as HH:MM:SS.mmm for ruler labels.
func FormatTimestamp(ms int) string {
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
