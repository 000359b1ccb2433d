package config

import "time"

// Timeline Geometry Constants
const (
	// MsPerPixel fixes the timeline scale: 1 pixel = 10 milliseconds
	MsPerPixel = 10

	// MinSceneWidthPx is the hard floor for a scene's on-screen width
	MinSceneWidthPx = 50

	// MinSceneDurationMs is the minimum duration of any committed scene
	MinSceneDurationMs = MinSceneWidthPx * MsPerPixel

	// TalkingLabel marks reserved speech intervals; matched case-insensitively
	TalkingLabel = "TALKING"

	// NewScenePlaceholder is the description given to freshly inserted scenes
	NewScenePlaceholder = "New Scene"
)

// Playback Constants
const (
	// FrameInterval is the playback sampling period. Narration must stay
	// within 100ms of the video clock, so sample well below that.
	FrameInterval = 16 * time.Millisecond

	// ScrollEdgeMarginPx triggers a recenter when the playhead gets this
	// close to the visible edge of the timeline window
	ScrollEdgeMarginPx = 50
)

// Pacing Constants
const (
	// BaselineWPM is the target narration pace in words per minute
	BaselineWPM = 160.0

	// WPMTolerance is the accepted deviation band around the baseline
	WPMTolerance = 40.0
)
