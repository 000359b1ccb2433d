package timeline

import (
	"testing"

	"scenescribe/types"
)

func twoScenes() ([]Element, []Container) {
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 2000, EndTime: 3000, Description: "B"},
	}
	elements := BuildElements(scenes)
	return elements, BuildContainers(elements, 500)
}

func TestDragCommitsFinalPosition(t *testing.T) {
	elements, containers := twoScenes()
	c := NewController()

	cont, _ := ContainerFor(containers, 1)
	if !c.BeginDrag(elements[0], cont) {
		t.Fatal("drag refused")
	}
	c.Drag(30)
	c.Drag(20)

	commit, ok := c.EndDrag()
	if !ok {
		t.Fatal("no commit")
	}
	if commit.StartMs != 500 || commit.EndMs != 1500 {
		t.Errorf("commit = [%d,%d), want [500,1500)", commit.StartMs, commit.EndMs)
	}
	if !c.Idle() {
		t.Error("controller should return to idle after commit")
	}
}

func TestDragOvershootClampedAtCommit(t *testing.T) {
	elements, containers := twoScenes()
	c := NewController()

	cont, _ := ContainerFor(containers, 1)
	c.BeginDrag(elements[0], cont)
	// Mid-gesture the element may pass through its container freely.
	c.Drag(400)
	if c.Position() != 400 {
		t.Errorf("mid-drag position = %d, want unclamped 400", c.Position())
	}

	commit, _ := c.EndDrag()
	// Container ends at B's start (200px): commit lands flush against it.
	if commit.StartMs != 1000 || commit.EndMs != 2000 {
		t.Errorf("commit = [%d,%d), want clamped [1000,2000)", commit.StartMs, commit.EndMs)
	}
}

func TestOnlyOneGestureAtATime(t *testing.T) {
	elements, containers := twoScenes()
	c := NewController()

	cont, _ := ContainerFor(containers, 1)
	c.BeginResize(elements[0], cont, ResizeRight)
	if c.BeginDrag(elements[0], cont) {
		t.Error("drag must be blocked while resizing")
	}
	c.EndResize()
	if !c.BeginDrag(elements[0], cont) {
		t.Error("drag should be accepted once idle again")
	}
}

func TestResizeRightClampedToContainer(t *testing.T) {
	elements, containers := twoScenes()
	c := NewController()

	cont, _ := ContainerFor(containers, 1)
	c.BeginResize(elements[0], cont, ResizeRight)

	// Grow past the container end (200px): width caps at 200.
	commit, ok := c.Resize(500)
	if !ok {
		t.Fatal("no commit")
	}
	if commit.StartMs != 0 || commit.EndMs != 2000 {
		t.Errorf("commit = [%d,%d), want [0,2000)", commit.StartMs, commit.EndMs)
	}
}

func TestResizeRightMinimumWidthFloor(t *testing.T) {
	elements, containers := twoScenes()
	c := NewController()

	cont, _ := ContainerFor(containers, 1)
	c.BeginResize(elements[0], cont, ResizeRight)

	// Shrinking below 50px stops at the floor, never under.
	commit, _ := c.Resize(-90)
	if commit.EndMs-commit.StartMs != 500 {
		t.Errorf("duration = %d ms, want 500 ms floor", commit.EndMs-commit.StartMs)
	}
	commit, _ = c.Resize(-100)
	if commit.EndMs-commit.StartMs != 500 {
		t.Errorf("duration after second shrink = %d ms, want 500 ms floor", commit.EndMs-commit.StartMs)
	}
}

func TestResizeLeftMovesStartOnly(t *testing.T) {
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 2000, EndTime: 3000, Description: "B"},
	}
	elements := BuildElements(scenes)
	containers := BuildContainers(elements, 500)
	c := NewController()

	cont, _ := ContainerFor(containers, 2)
	c.BeginResize(elements[1], cont, ResizeLeft)

	// Pull B's left edge toward A; it stops at A's end (100px = 1000ms).
	commit, _ := c.Resize(-200)
	if commit.StartMs != 1000 || commit.EndMs != 3000 {
		t.Errorf("commit = [%d,%d), want [1000,3000)", commit.StartMs, commit.EndMs)
	}

	// Pushing the left edge right stops 50px short of the right edge.
	commit, _ = c.Resize(400)
	if commit.EndMs-commit.StartMs != 500 {
		t.Errorf("duration = %d ms, want 500 ms floor", commit.EndMs-commit.StartMs)
	}
	if commit.EndMs != 3000 {
		t.Errorf("right edge moved during left resize: end = %d", commit.EndMs)
	}
}

func TestTalkingElementRefusesGestures(t *testing.T) {
	scenes := []types.Scene{{StartTime: 0, EndTime: 1000, Description: "TALKING"}}
	elements := BuildElements(scenes)
	containers := BuildContainers(elements, 500)
	c := NewController()

	cont, _ := ContainerFor(containers, 1)
	if c.BeginDrag(elements[0], cont) {
		t.Error("TALKING element accepted a drag")
	}
	if c.BeginResize(elements[0], cont, ResizeRight) {
		t.Error("TALKING element accepted a resize")
	}
}
