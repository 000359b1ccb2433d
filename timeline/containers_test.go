package timeline

import (
	"testing"

	"scenescribe/types"
)

func TestBuildElementsAssignsSortedIDs(t *testing.T) {
	scenes := []types.Scene{
		{StartTime: 2000, EndTime: 3000, Description: "second"},
		{StartTime: 0, EndTime: 1000, Description: "first"},
	}
	elements := BuildElements(scenes)

	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	if elements[0].Text != "first" || elements[0].ID != 1 {
		t.Errorf("first element wrong: %+v", elements[0])
	}
	if elements[1].Text != "second" || elements[1].ID != 2 {
		t.Errorf("second element wrong: %+v", elements[1])
	}
	if elements[0].Position != 0 || elements[0].Width != 100 {
		t.Errorf("pixel projection wrong: pos=%d width=%d", elements[0].Position, elements[0].Width)
	}
}

func TestContainersBoundedByNeighbors(t *testing.T) {
	// A=[0,1000) B=[2000,3000) on a 5000ms (500px) timeline.
	// A's container reaches B's start; B's runs from A's end to the edge.
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 2000, EndTime: 3000, Description: "B"},
	}
	containers := BuildContainers(BuildElements(scenes), 500)

	a := containers[0]
	if a.StartPosition != 0 || a.End() != 200 {
		t.Errorf("A container = [%d,%d), want [0,200)", a.StartPosition, a.End())
	}
	b := containers[1]
	if b.StartPosition != 100 || b.End() != 500 {
		t.Errorf("B container = [%d,%d), want [100,500)", b.StartPosition, b.End())
	}
}

func TestContainersTalkingIsFixed(t *testing.T) {
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 1000, EndTime: 2000, Description: "TALKING"},
		{StartTime: 2000, EndTime: 3000, Description: "B"},
	}
	containers := BuildContainers(BuildElements(scenes), 500)

	talking := containers[1]
	if !talking.Element.IsTalking() {
		t.Fatalf("expected TALKING element, got %q", talking.Element.Text)
	}
	if talking.StartPosition != 100 || talking.Width != 100 {
		t.Errorf("TALKING container = [%d,w=%d), want its own extent [100,w=100)", talking.StartPosition, talking.Width)
	}

	// A is boxed in by the TALKING obstacle.
	if containers[0].End() != 100 {
		t.Errorf("A container end = %d, want 100 (TALKING start)", containers[0].End())
	}
	// B starts at the TALKING end.
	if containers[2].StartPosition != 200 {
		t.Errorf("B container start = %d, want 200 (TALKING end)", containers[2].StartPosition)
	}
}

func TestContainersSingleElementSpansTimeline(t *testing.T) {
	scenes := []types.Scene{{StartTime: 1000, EndTime: 2000, Description: "only"}}
	containers := BuildContainers(BuildElements(scenes), 500)
	if containers[0].StartPosition != 0 || containers[0].End() != 500 {
		t.Errorf("container = [%d,%d), want [0,500)", containers[0].StartPosition, containers[0].End())
	}
}

func TestContainersPureFunctionOfScenes(t *testing.T) {
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 2000, EndTime: 3000, Description: "B"},
	}
	first := BuildContainers(BuildElements(scenes), 500)
	second := BuildContainers(BuildElements(scenes), 500)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("recomputation diverged at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
