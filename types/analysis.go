package types

import "fmt"

// AnalysisData is the terminal payload of a video analysis run: parallel
// arrays of [start,end] millisecond pairs, generated descriptions, and
// narration audio paths (empty entry = no audio yet).
type AnalysisData struct {
	Timestamps   [][2]int `json:"timestamps"`
	Descriptions []string `json:"descriptions"`
	AudioFiles   []string `json:"audio_files"`
}

// ProgressEvent is one chunk of a progressive analysis stream. The stream
// terminates with Progress == 100 and a populated Data payload.
type ProgressEvent struct {
	Progress int           `json:"progress"`
	Message  string        `json:"message,omitempty"`
	Data     *AnalysisData `json:"data,omitempty"`
}

// Final reports whether this event carries the terminal payload.
func (e ProgressEvent) Final() bool {
	return e.Progress >= 100 && e.Data != nil
}

// ScenesFromAnalysis maps an analysis payload 1:1 into scenes. Array lengths
// are reconciled by index; a missing description or audio entry leaves the
// field empty rather than failing the whole payload.
func ScenesFromAnalysis(data *AnalysisData) ([]Scene, error) {
	if data == nil {
		return nil, fmt.Errorf("analysis payload has no data")
	}
	scenes := make([]Scene, 0, len(data.Timestamps))
	for i, ts := range data.Timestamps {
		if ts[1] <= ts[0] {
			continue
		}
		s := Scene{StartTime: ts[0], EndTime: ts[1]}
		if i < len(data.Descriptions) {
			s.Description = data.Descriptions[i]
		}
		if i < len(data.AudioFiles) {
			s.AudioFile = data.AudioFiles[i]
		}
		scenes = append(scenes, s)
	}
	SortByStart(scenes)
	return scenes, nil
}

// AudioSplice is one regenerated narration clip keyed by its exact scene range.
type AudioSplice struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	AudioFile string `json:"audio_file"`
}

// TimeRange is a [start,end) millisecond span, used when requesting
// reanalysis or audio regeneration for a subset of scenes.
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
