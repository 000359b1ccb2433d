// Package session owns the working scene collection for one editing session.
//
// The scene array is the single source of truth; the timeline projection
// (elements and containers) is re-derived after every committed batch and is
// never written to directly. All mutation funnels through Apply so that the
// non-overlap and minimum-duration invariants are enforced in one place and
// boundary recomputation always runs after the last mutation in a batch.
package session

import (
	"sync"

	"scenescribe/timeline"
	"scenescribe/timescale"
	"scenescribe/types"
)

// EncodeGate selects which completeness rule arms the Encode action.
type EncodeGate int

const (
	// GateEither allows encoding when every scene is edited or every scene
	// has narration audio.
	GateEither EncodeGate = iota
	// GateAllEdited requires a human touch on every scene.
	GateAllEdited
	// GateAllAudio requires rendered narration for every scene.
	GateAllAudio
)

// Policy captures the configurable editing rules.
type Policy struct {
	// MarkEditedOnRetime treats drag/resize commits as edits for gating
	// purposes, not just text changes.
	MarkEditedOnRetime bool
	EncodeGate         EncodeGate
}

// DefaultPolicy marks structural edits as edits, consistent with the encode
// gating treating any human change as progress.
func DefaultPolicy() Policy {
	return Policy{MarkEditedOnRetime: true, EncodeGate: GateEither}
}

// Session is the exclusive owner of a project's scene collection.
type Session struct {
	mu sync.Mutex

	scenes     []types.Scene
	durationMs int
	policy     Policy
	selection  map[int]bool // keyed by scene start time

	// derived projection, rebuilt after every Apply
	elements   []timeline.Element
	containers []timeline.Container
}

// New creates a session over an initial scene set. durationMs is the full
// timeline extent (the video length).
func New(scenes []types.Scene, durationMs int, policy Policy) *Session {
	s := &Session{
		scenes:     append([]types.Scene(nil), scenes...),
		durationMs: durationMs,
		policy:     policy,
		selection:  make(map[int]bool),
	}
	types.SortByStart(s.scenes)
	s.rebuild()
	return s
}

// Apply runs a batch of commands in order under the session lock, then
// rebuilds the projection exactly once. Later commands win conflicting
// fields. Individual commands that violate a constraint are silent no-ops;
// the rest of the batch still applies.
func (s *Session) Apply(cmds ...Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cmd := range cmds {
		cmd.apply(s)
	}
	s.rebuild()
}

// rebuild re-derives the pixel projection from the committed scene array.
// Callers must hold the lock.
func (s *Session) rebuild() {
	s.elements = timeline.BuildElements(s.scenes)
	s.containers = timeline.BuildContainers(s.elements, timescale.MsToPixels(s.durationMs))
}

// TimelineWidthPx returns the full timeline extent in pixels.
func (s *Session) TimelineWidthPx() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return timescale.MsToPixels(s.durationMs)
}

// DurationMs returns the timeline extent in milliseconds.
func (s *Session) DurationMs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.durationMs
}

// SetDuration updates the timeline extent (after video metadata loads).
func (s *Session) SetDuration(durationMs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durationMs = durationMs
	s.rebuild()
}

// Scenes returns a copy of the committed scene array.
func (s *Session) Scenes() []types.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Scene(nil), s.scenes...)
}

// Elements returns the current pixel-space projection.
func (s *Session) Elements() []timeline.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]timeline.Element(nil), s.elements...)
}

// Containers returns the current per-element bounding containers.
func (s *Session) Containers() []timeline.Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]timeline.Container(nil), s.containers...)
}

// SceneAt returns the scene whose [start,end) contains t, if any.
func (s *Session) SceneAt(tMs int) (types.Scene, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range s.scenes {
		if sc.Contains(tMs) {
			return sc, true
		}
	}
	return types.Scene{}, false
}

// TranscriptScenes lists the editable scenes in timestamp order, with
// reserved TALKING intervals filtered out.
func (s *Session) TranscriptScenes() []types.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Scene, 0, len(s.scenes))
	for _, sc := range s.scenes {
		if !sc.IsTalking() {
			out = append(out, sc)
		}
	}
	return out
}

// CanEncode reports whether the configured completeness gate is satisfied.
// TALKING intervals don't count against either rule.
func (s *Session) CanEncode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	allEdited, allAudio := true, true
	counted := 0
	for _, sc := range s.scenes {
		if sc.IsTalking() {
			continue
		}
		counted++
		if !sc.IsEdited {
			allEdited = false
		}
		if sc.AudioFile == "" {
			allAudio = false
		}
	}
	if counted == 0 {
		return false
	}

	switch s.policy.EncodeGate {
	case GateAllEdited:
		return allEdited
	case GateAllAudio:
		return allAudio
	default:
		return allEdited || allAudio
	}
}

// Select toggles a scene (by start time) into the batch-operation set.
// TALKING scenes are not selectable.
func (s *Session) Select(startTime int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range s.scenes {
		if sc.StartTime == startTime && !sc.IsTalking() {
			s.selection[startTime] = !s.selection[startTime]
			return
		}
	}
}

// SelectAll marks every editable scene selected or clears the set.
func (s *Session) SelectAll(selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[int]bool)
	if !selected {
		return
	}
	for _, sc := range s.scenes {
		if !sc.IsTalking() {
			s.selection[sc.StartTime] = true
		}
	}
}

// Selected reports whether the scene starting at startTime is selected.
func (s *Session) Selected(startTime int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection[startTime]
}

// SelectedRanges returns the selected scenes' time ranges for batch
// reanalyze/regenerate requests.
func (s *Session) SelectedRanges() []types.TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	ranges := make([]types.TimeRange, 0, len(s.selection))
	for _, sc := range s.scenes {
		if s.selection[sc.StartTime] {
			ranges = append(ranges, types.TimeRange{Start: sc.StartTime, End: sc.EndTime})
		}
	}
	return ranges
}
