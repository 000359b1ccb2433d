// Package playback keeps per-scene narration audio phase-locked to a single
// transport clock. The video clock is authoritative: every sampled frame the
// synchronizer decides which scene is active and starts, seeks, or stops that
// scene's narration to match.
package playback

import (
	"log"
	"sync"

	"scenescribe/timescale"
	"scenescribe/types"
)

// Clock is the authoritative transport, typically backed by the video
// element's native playback position.
type Clock interface {
	// CurrentTime returns the playback position in seconds.
	CurrentTime() float64
	// Seek moves the playback position to t seconds.
	Seek(t float64)
}

// AudioHandle controls one scene's narration clip.
type AudioHandle interface {
	Paused() bool
	// Play starts playback; an error (autoplay restriction, decode failure)
	// is logged by the synchronizer and never propagates.
	Play() error
	Pause()
	// Seek positions the clip at offset seconds from its own origin.
	Seek(offset float64)
	// Duration returns the clip length in seconds.
	Duration() float64
}

// Synchronizer drives narration audio from the transport clock. Scenes are
// re-read from the source on every tick so the synchronizer never holds a
// stale copy across a mutation.
type Synchronizer struct {
	mu      sync.Mutex
	clock   Clock
	scenes  func() []types.Scene
	audio   map[int]AudioHandle // keyed by scene start time (ms)
	playing bool
	logf    func(format string, args ...any)
}

// NewSynchronizer wires a clock to a live scene source.
func NewSynchronizer(clock Clock, scenes func() []types.Scene) *Synchronizer {
	return &Synchronizer{
		clock:  clock,
		scenes: scenes,
		audio:  make(map[int]AudioHandle),
		logf:   log.Printf,
	}
}

// Attach registers the narration handle for the scene starting at startMs.
func (s *Synchronizer) Attach(startMs int, h AudioHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio[startMs] = h
}

// Detach removes a scene's handle, pausing it first.
func (s *Synchronizer) Detach(startMs int) {
	s.mu.Lock()
	h := s.audio[startMs]
	delete(s.audio, startMs)
	s.mu.Unlock()
	if h != nil && !h.Paused() {
		h.Pause()
	}
}

// SetPlaying flips the transport state. Pausing stops every narration clip
// immediately rather than waiting for the next sample.
func (s *Synchronizer) SetPlaying(playing bool) {
	s.mu.Lock()
	s.playing = playing
	s.mu.Unlock()
	if !playing {
		s.PauseAll()
	}
}

// Playing reports the transport state.
func (s *Synchronizer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// ActiveScene returns the scene whose [start,end) contains the clock, if any.
func (s *Synchronizer) ActiveScene() (types.Scene, bool) {
	now := s.clock.CurrentTime()
	for _, sc := range s.scenes() {
		if now >= timescale.MsToSeconds(sc.StartTime) && now < timescale.MsToSeconds(sc.EndTime) {
			return sc, true
		}
	}
	return types.Scene{}, false
}

// Tick samples the clock once and reconciles every narration clip against it.
// Called once per rendered frame while playing.
func (s *Synchronizer) Tick() {
	now := s.clock.CurrentTime()

	s.mu.Lock()
	playing := s.playing
	handles := make(map[int]AudioHandle, len(s.audio))
	for k, v := range s.audio {
		handles[k] = v
	}
	s.mu.Unlock()

	for _, sc := range s.scenes() {
		h, ok := handles[sc.StartTime]
		if !ok || sc.AudioFile == "" {
			continue
		}
		start := timescale.MsToSeconds(sc.StartTime)
		end := timescale.MsToSeconds(sc.EndTime)

		active := now >= start && now < end
		if active && playing {
			if h.Paused() {
				offset := now - start
				if offset > h.Duration() {
					// Narration shorter than its scene window: stay silent.
					continue
				}
				h.Seek(offset)
				if err := h.Play(); err != nil {
					s.logf("narration playback failed at %dms: %v", sc.StartTime, err)
				}
			}
			continue
		}
		if !h.Paused() {
			h.Pause()
		}
	}
}

// SeekTo moves the transport and, when the target lands inside a scene with
// narration, repositions that clip to the matching relative offset.
func (s *Synchronizer) SeekTo(t float64) {
	s.clock.Seek(t)

	s.mu.Lock()
	handles := make(map[int]AudioHandle, len(s.audio))
	for k, v := range s.audio {
		handles[k] = v
	}
	s.mu.Unlock()

	for _, sc := range s.scenes() {
		start := timescale.MsToSeconds(sc.StartTime)
		end := timescale.MsToSeconds(sc.EndTime)
		if t < start || t >= end {
			continue
		}
		if h, ok := handles[sc.StartTime]; ok && sc.AudioFile != "" {
			if offset := t - start; offset < h.Duration() {
				h.Seek(offset)
			}
		}
		break
	}
}

// PauseAll stops every registered narration clip.
func (s *Synchronizer) PauseAll() {
	s.mu.Lock()
	handles := make([]AudioHandle, 0, len(s.audio))
	for _, h := range s.audio {
		handles = append(handles, h)
	}
	s.mu.Unlock()
	for _, h := range handles {
		if !h.Paused() {
			h.Pause()
		}
	}
}
