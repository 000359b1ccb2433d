package playback

import "scenescribe/config"

// ScrollTarget decides whether the timeline viewport needs to recenter on
// the play-head. It returns the new scroll offset and true when the
// play-head has left the visible window or come within the edge margin of
// its right side; otherwise the current offset stands.
func ScrollTarget(playheadPx, scrollLeft, viewportWidth int) (int, bool) {
	visibleStart := scrollLeft
	visibleEnd := scrollLeft + viewportWidth

	if playheadPx >= visibleStart && playheadPx <= visibleEnd-config.ScrollEdgeMarginPx {
		return scrollLeft, false
	}

	target := playheadPx - viewportWidth/2
	if target < 0 {
		target = 0
	}
	return target, true
}

// ScrollStep eases the viewport toward a target offset, one frame at a time,
// giving the smooth-scroll behavior instead of an instantaneous jump. It
// covers a quarter of the remaining distance per frame, with a 1px minimum
// so the animation always terminates.
func ScrollStep(current, target int) int {
	delta := target - current
	if delta == 0 {
		return current
	}
	step := delta / 4
	if step == 0 {
		if delta > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	return current + step
}
