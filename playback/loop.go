package playback

import (
	"context"
	"time"

	"scenescribe/config"
)

// Run samples the clock once per frame interval while the transport is
// playing, until ctx is cancelled. Sampling is suspended (not torn down)
// while paused. On cancellation every narration clip is stopped, so no
// callback outlives the loop.
func (s *Synchronizer) Run(ctx context.Context) {
	ticker := time.NewTicker(config.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.PauseAll()
			return
		case <-ticker.C:
			if s.Playing() {
				s.Tick()
			}
		}
	}
}
