// Package srt converts between the working scene set and standard SRT text.
package srt

import (
	"fmt"
	"strings"

	"scenescribe/types"
)

// formatTime renders milliseconds in SRT time format HH:MM:SS,mmm.
func formatTime(ms int) string {
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// parseTime reads an SRT timestamp back to milliseconds.
func parseTime(s string) (int, error) {
	var h, m, sec, ms int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d:%d,%d", &h, &m, &sec, &ms); err != nil {
		return 0, fmt.Errorf("bad SRT timestamp %q: %w", s, err)
	}
	return h*3600000 + m*60000 + sec*1000 + ms, nil
}

// Format writes scenes as an SRT body in timestamp order, numbered from 1.
func Format(scenes []types.Scene) string {
	sorted := make([]types.Scene, len(scenes))
	copy(sorted, scenes)
	types.SortByStart(sorted)

	var b strings.Builder
	for i, sc := range sorted {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, formatTime(sc.StartTime), formatTime(sc.EndTime), sc.Description)
	}
	return b.String()
}

// Parse reads an SRT body into scenes. Imported scenes count as edited, since
// the user supplied the text. Malformed entries (a missing or unparseable
// time line, a non-positive duration, empty text) are silently dropped and
// parsing continues with the next entry.
func Parse(body string) []types.Scene {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	blocks := strings.Split(normalized, "\n\n")

	var scenes []types.Scene
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}
		// lines[0] is the sequence index; display order is re-derived from
		// times, so it is read past rather than trusted.
		startRaw, endRaw, ok := strings.Cut(lines[1], "-->")
		if !ok {
			continue
		}
		start, err := parseTime(startRaw)
		if err != nil {
			continue
		}
		end, err := parseTime(endRaw)
		if err != nil {
			continue
		}
		if end <= start {
			continue
		}
		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
		if text == "" {
			continue
		}
		scenes = append(scenes, types.Scene{
			StartTime:   start,
			EndTime:     end,
			Description: text,
			IsEdited:    true,
		})
	}
	types.SortByStart(scenes)
	return scenes
}
