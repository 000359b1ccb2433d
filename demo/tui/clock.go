package tui

import (
	"sync"
	"time"
)

// transportClock is the editor's authoritative playback clock. With no real
// video element behind the terminal it advances by frame ticks while playing.
type transportClock struct {
	mu       sync.Mutex
	t        float64
	duration float64
}

func newTransportClock(durationSec float64) *transportClock {
	return &transportClock{duration: durationSec}
}

func (c *transportClock) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *transportClock) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = clampSeconds(t, c.duration)
}

// Advance moves the clock forward one frame and reports whether the end of
// the timeline was reached.
func (c *transportClock) Advance(d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = clampSeconds(c.t+d.Seconds(), c.duration)
	return c.t >= c.duration
}

func (c *transportClock) SetDuration(durationSec float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = durationSec
	c.t = clampSeconds(c.t, c.duration)
}

func clampSeconds(t, max float64) float64 {
	if t < 0 {
		return 0
	}
	if t > max {
		return max
	}
	return t
}

// narrationClip satisfies the synchronizer's audio interface for terminal
// sessions, where narration state is tracked but nothing is audible.
type narrationClip struct {
	paused   bool
	position float64
	duration float64
}

func newNarrationClip(durationSec float64) *narrationClip {
	return &narrationClip{paused: true, duration: durationSec}
}

func (n *narrationClip) Paused() bool      { return n.paused }
func (n *narrationClip) Play() error       { n.paused = false; return nil }
func (n *narrationClip) Pause()            { n.paused = true }
func (n *narrationClip) Seek(off float64)  { n.position = off }
func (n *narrationClip) Duration() float64 { return n.duration }
