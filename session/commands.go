package session

import (
	"scenescribe/config"
	"scenescribe/timeline"
	"scenescribe/types"
)

// Command is one mutation of the scene collection. Commands run under the
// session lock inside Apply; a command that can't be applied leaves the
// collection untouched.
type Command interface {
	apply(s *Session)
}

// ReplaceAll swaps in a whole new working set, as after a backend response.
type ReplaceAll struct {
	Scenes []types.Scene
}

func (c ReplaceAll) apply(s *Session) {
	s.scenes = append([]types.Scene(nil), c.Scenes...)
	types.SortByStart(s.scenes)
	s.selection = make(map[int]bool)
}

// UpdateText edits a scene's description. Editing always marks the scene
// edited and invalidates any previously rendered narration, since stale
// audio would no longer match the text.
type UpdateText struct {
	StartTime int
	Text      string
}

func (c UpdateText) apply(s *Session) {
	for i := range s.scenes {
		if s.scenes[i].StartTime != c.StartTime || s.scenes[i].IsTalking() {
			continue
		}
		s.scenes[i].Description = c.Text
		s.scenes[i].IsEdited = true
		s.scenes[i].AudioFile = ""
		return
	}
}

// Remove deletes one scene. Other scenes keep their time fields; only the
// derived display ids shift.
type Remove struct {
	StartTime int
}

func (c Remove) apply(s *Session) {
	for i := range s.scenes {
		if s.scenes[i].StartTime == c.StartTime {
			s.scenes = append(s.scenes[:i], s.scenes[i+1:]...)
			delete(s.selection, c.StartTime)
			return
		}
	}
}

// Retime moves or resizes a scene to a new [start,end) range. The change is
// rejected (no-op) when the target doesn't exist, is a TALKING interval,
// falls under the minimum duration, or would overlap another scene.
type Retime struct {
	StartTime int
	NewStart  int
	NewEnd    int
}

func (c Retime) apply(s *Session) {
	idx := -1
	for i := range s.scenes {
		if s.scenes[i].StartTime == c.StartTime {
			idx = i
			break
		}
	}
	if idx < 0 || s.scenes[idx].IsTalking() {
		return
	}
	if c.NewEnd-c.NewStart < config.MinSceneDurationMs || c.NewStart < 0 {
		return
	}
	proposed := types.Scene{StartTime: c.NewStart, EndTime: c.NewEnd}
	for i, other := range s.scenes {
		if i != idx && proposed.Overlaps(other) {
			return
		}
	}

	if s.selection[s.scenes[idx].StartTime] {
		delete(s.selection, s.scenes[idx].StartTime)
		s.selection[c.NewStart] = true
	}
	s.scenes[idx].StartTime = c.NewStart
	s.scenes[idx].EndTime = c.NewEnd
	if s.policy.MarkEditedOnRetime {
		s.scenes[idx].IsEdited = true
	}
	types.SortByStart(s.scenes)
}

// CommitInteraction adapts a timeline controller commit (keyed by display id)
// into a Retime for the underlying scene.
func (s *Session) CommitInteraction(commit timeline.Commit) {
	var start int
	found := false
	s.mu.Lock()
	for _, el := range s.elements {
		if el.ID == commit.ID {
			start = el.StartTime
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return
	}
	s.Apply(Retime{StartTime: start, NewStart: commit.StartMs, NewEnd: commit.EndMs})
}

// InsertAt creates a placeholder scene at the play-head, subject to the
// insertion engine's free-space rules.
type InsertAt struct {
	CurrentTimeMs int
}

func (c InsertAt) apply(s *Session) {
	updated, ok := timeline.InsertAt(s.scenes, c.CurrentTimeMs, timelineWidthLocked(s))
	if !ok {
		return
	}
	s.scenes = updated
}

// timelineWidthLocked computes the pixel extent without taking the lock,
// for use inside command application.
func timelineWidthLocked(s *Session) int {
	return s.durationMs / config.MsPerPixel
}

// MergeReanalysis replaces the scenes whose ranges were reanalyzed, keeping
// untouched scenes (TALKING intervals included) as they are, re-sorted by
// start time.
type MergeReanalysis struct {
	Replacements []types.Scene
}

func (c MergeReanalysis) apply(s *Session) {
	replaced := make(map[[2]int]bool, len(c.Replacements))
	for _, r := range c.Replacements {
		replaced[[2]int{r.StartTime, r.EndTime}] = true
	}
	merged := make([]types.Scene, 0, len(s.scenes)+len(c.Replacements))
	for _, sc := range s.scenes {
		if !replaced[[2]int{sc.StartTime, sc.EndTime}] {
			merged = append(merged, sc)
		}
	}
	merged = append(merged, c.Replacements...)
	types.SortByStart(merged)
	s.scenes = merged
}

// SpliceAudio attaches regenerated narration clips to the scenes matching
// each splice's exact [start,end) range and marks them edited. Splices with
// no matching scene are dropped.
type SpliceAudio struct {
	Splices []types.AudioSplice
}

func (c SpliceAudio) apply(s *Session) {
	for _, sp := range c.Splices {
		for i := range s.scenes {
			if s.scenes[i].StartTime == sp.Start && s.scenes[i].EndTime == sp.End {
				s.scenes[i].AudioFile = sp.AudioFile
				s.scenes[i].IsEdited = true
				break
			}
		}
	}
}

// Reset clears the whole session state.
type Reset struct{}

func (c Reset) apply(s *Session) {
	s.scenes = nil
	s.selection = make(map[int]bool)
}
