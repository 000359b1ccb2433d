package timeline

import (
	"scenescribe/config"
	"scenescribe/timescale"
	"scenescribe/types"
)

// InsertAt creates a new placeholder scene at the current play-head position.
//
// The insertion is rejected (returning the input unchanged) when the position
// falls inside an existing scene, when it precedes the nearest earlier
// scene's end, or when the free span up to the next scene is narrower than
// the 50px minimum. An accepted insert fills the entire free span to the next
// scene's start, then re-sorts the set.
func InsertAt(scenes []types.Scene, currentTimeMs int, timelineWidthPx int) ([]types.Scene, bool) {
	for _, s := range scenes {
		if s.Contains(currentTimeMs) {
			return scenes, false
		}
	}

	currentPx := timescale.MsToPixels(currentTimeMs)

	previousEnd := 0
	nextStart := timelineWidthPx
	for _, s := range scenes {
		endPx := timescale.MsToPixels(s.EndTime)
		startPx := timescale.MsToPixels(s.StartTime)
		if s.EndTime <= currentTimeMs && endPx > previousEnd {
			previousEnd = endPx
		}
		if s.StartTime > currentTimeMs && startPx < nextStart {
			nextStart = startPx
		}
	}

	if currentPx < previousEnd {
		return scenes, false
	}
	availableWidth := nextStart - currentPx
	if availableWidth < config.MinSceneWidthPx {
		return scenes, false
	}
	// MsToPixels floors, so an off-grid play-head can pass the width check
	// while the committed span comes up short of the duration floor.
	endTimeMs := timescale.PixelsToMs(nextStart)
	if endTimeMs-currentTimeMs < config.MinSceneDurationMs {
		return scenes, false
	}

	inserted := types.Scene{
		StartTime:   currentTimeMs,
		EndTime:     endTimeMs,
		Description: config.NewScenePlaceholder,
	}

	updated := make([]types.Scene, 0, len(scenes)+1)
	updated = append(updated, scenes...)
	updated = append(updated, inserted)
	types.SortByStart(updated)
	return updated, true
}
