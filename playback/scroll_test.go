package playback

import "testing"

func TestScrollTargetStaysPutInsideWindow(t *testing.T) {
	if _, moved := ScrollTarget(300, 0, 600); moved {
		t.Error("play-head well inside the window must not scroll")
	}
}

func TestScrollTargetRecentersNearRightEdge(t *testing.T) {
	// Within 50px of the right edge: recenter on the play-head.
	target, moved := ScrollTarget(560, 0, 600)
	if !moved {
		t.Fatal("expected a recenter")
	}
	if target != 260 {
		t.Errorf("target = %d, want 260 (playhead - half viewport)", target)
	}
}

func TestScrollTargetRecentersWhenOffscreen(t *testing.T) {
	target, moved := ScrollTarget(100, 500, 600)
	if !moved {
		t.Fatal("offscreen play-head must recenter")
	}
	if target != 0 {
		t.Errorf("target = %d, want clamped 0", target)
	}
}

func TestScrollStepConverges(t *testing.T) {
	current, target := 0, 500
	steps := 0
	for current != target {
		next := ScrollStep(current, target)
		if next == current {
			t.Fatal("scroll step stalled")
		}
		current = next
		steps++
		if steps > 1000 {
			t.Fatal("scroll step did not converge")
		}
	}
	// Smooth: first step covers a quarter of the distance, not the whole.
	if first := ScrollStep(0, 500); first != 125 {
		t.Errorf("first step = %d, want 125", first)
	}
}
