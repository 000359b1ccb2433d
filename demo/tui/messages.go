package tui

import (
	"time"

	"scenescribe/types"
)

// Messages for the tea program

// FrameMsg drives the playback sampling loop.
type FrameMsg struct {
	Time time.Time
}

// AnalysisProgressMsg carries one progress event from the video backend.
type AnalysisProgressMsg struct {
	Progress int
	Message  string
}

// AnalysisCompleteMsg carries the terminal analysis payload.
type AnalysisCompleteMsg struct {
	Data *types.AnalysisData
	Err  error
}

// ReanalysisCompleteMsg carries replacement scenes for the changed ranges.
type ReanalysisCompleteMsg struct {
	Scenes []types.Scene
	Err    error
}

// AudioRegeneratedMsg carries regenerated narration clips.
type AudioRegeneratedMsg struct {
	Splices []types.AudioSplice
	Err     error
}

// EncodeCompleteMsg carries the rendered artifact URLs.
type EncodeCompleteMsg struct {
	URLs *types.OutputURLs
	Err  error
}

// ExportsArchivedMsg reports how many encode artifacts were copied to S3.
type ExportsArchivedMsg struct {
	Archived int
	Err      error
}

// ProjectSavedMsg reports the result of a save.
type ProjectSavedMsg struct {
	Err error
}

// ProjectLoadedMsg carries a project loaded from the store.
type ProjectLoadedMsg struct {
	Project *types.Project
	Err     error
}
