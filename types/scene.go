package types

import (
	"sort"
	"strings"
	"time"

	"scenescribe/config"
)

// Scene represents a single timestamped interval with its generated
// description and optional narration audio. Times are milliseconds from the
// timeline origin; EndTime is always strictly greater than StartTime.
type Scene struct {
	StartTime   int    `json:"startTime"`
	EndTime     int    `json:"endTime"`
	Description string `json:"description"`
	AudioFile   string `json:"audioFile,omitempty"`
	IsEdited    bool   `json:"isEdited"`
}

// IsTalking reports whether the scene is a reserved speech interval. TALKING
// scenes are fixed obstacles on the timeline: not editable, not selectable,
// excluded from description lists and WPM scoring.
func (s Scene) IsTalking() bool {
	return strings.EqualFold(strings.TrimSpace(s.Description), config.TalkingLabel)
}

// DurationMs returns the scene length in milliseconds.
func (s Scene) DurationMs() int {
	return s.EndTime - s.StartTime
}

// WordCount counts whitespace-separated words in the description.
func (s Scene) WordCount() int {
	fields := strings.Fields(s.Description)
	return len(fields)
}

// Contains reports whether t (ms) falls inside the half-open [start, end).
func (s Scene) Contains(t int) bool {
	return t >= s.StartTime && t < s.EndTime
}

// Overlaps reports whether two scenes occupy intersecting time ranges.
func (s Scene) Overlaps(o Scene) bool {
	return s.StartTime < o.EndTime && o.StartTime < s.EndTime
}

// SortByStart orders scenes by start time ascending, in place.
func SortByStart(scenes []Scene) {
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].StartTime < scenes[j].StartTime
	})
}

// NonOverlapping verifies the pairwise non-overlap invariant across a scene set.
func NonOverlapping(scenes []Scene) bool {
	sorted := make([]Scene, len(scenes))
	copy(sorted, scenes)
	SortByStart(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].EndTime > sorted[i].StartTime {
			return false
		}
	}
	return true
}

// Project bundles everything the editor persists under a project name:
// the working scene set, the source video, and any rendered outputs.
type Project struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	VideoName  string     `json:"video_name,omitempty"`
	Thumbnail  string     `json:"thumbnail,omitempty"`
	Scenes     []Scene    `json:"scenes"`
	OutputURLs OutputURLs `json:"output_urls,omitempty"`
	SavedAt    time.Time  `json:"saved_at"`
}

// OutputURLs holds the artifact locations returned by the encode service.
type OutputURLs struct {
	Video      string `json:"video,omitempty"`
	SRT        string `json:"srt,omitempty"`
	TalkingSRT string `json:"talking_srt,omitempty"`
	MP3        string `json:"mp3,omitempty"`
}
