// Package timeline holds the pixel-space projection of the scene set and the
// geometry rules for interacting with it: per-scene containers, the
// drag/resize state machine, and play-head insertion.
//
// Everything here is a pure derivation of the committed scene array. The
// projection is disposable; committed interactions always write back through
// the owning session, never into these structs.
package timeline

import (
	"sort"

	"scenescribe/timescale"
	"scenescribe/types"
)

// Element is a scene projected into pixel space. IDs are sequential display
// numbers (1..N) assigned by sorted position, not stable identifiers.
type Element struct {
	ID        int
	Text      string
	Position  int // px from timeline origin
	Width     int // px
	StartTime int // ms
	EndTime   int // ms
	AudioFile string
	IsEdited  bool
}

// IsTalking reports whether the element projects a reserved speech interval.
func (e Element) IsTalking() bool {
	return types.Scene{Description: e.Text}.IsTalking()
}

// BuildElements projects scenes into pixel space, sorted by position with
// display ids reassigned 1..N.
func BuildElements(scenes []types.Scene) []Element {
	elements := make([]Element, 0, len(scenes))
	for _, s := range scenes {
		elements = append(elements, Element{
			Text:      s.Description,
			Position:  timescale.MsToPixels(s.StartTime),
			Width:     timescale.MsToPixels(s.EndTime - s.StartTime),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			AudioFile: s.AudioFile,
			IsEdited:  s.IsEdited,
		})
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].Position < elements[j].Position
	})
	for i := range elements {
		elements[i].ID = i + 1
	}
	return elements
}

// Scene converts an element back to its source-of-truth form.
func (e Element) Scene() types.Scene {
	return types.Scene{
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Text,
		AudioFile:   e.AudioFile,
		IsEdited:    e.IsEdited,
	}
}
