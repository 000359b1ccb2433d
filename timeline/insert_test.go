package timeline

import (
	"testing"

	"scenescribe/config"
	"scenescribe/types"
)

func TestInsertFillsFreeSpan(t *testing.T) {
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 3000, EndTime: 4000, Description: "B"},
	}
	updated, ok := InsertAt(scenes, 1500, 500)
	if !ok {
		t.Fatal("insert rejected")
	}
	if len(updated) != 3 {
		t.Fatalf("expected 3 scenes, got %d", len(updated))
	}
	inserted := updated[1]
	if inserted.StartTime != 1500 || inserted.EndTime != 3000 {
		t.Errorf("inserted = [%d,%d), want [1500,3000) filling the span", inserted.StartTime, inserted.EndTime)
	}
	if inserted.Description != config.NewScenePlaceholder {
		t.Errorf("description = %q", inserted.Description)
	}
	if inserted.IsEdited || inserted.AudioFile != "" {
		t.Error("new scene must start unedited and without audio")
	}
	if !types.NonOverlapping(updated) {
		t.Error("overlap after insert")
	}
}

func TestInsertRejectedInsideScene(t *testing.T) {
	scenes := []types.Scene{{StartTime: 1000, EndTime: 2000, Description: "A"}}
	updated, ok := InsertAt(scenes, 1500, 500)
	if ok {
		t.Error("insert inside an existing scene must be rejected")
	}
	if len(updated) != 1 {
		t.Errorf("scene array changed on rejection: %d scenes", len(updated))
	}
}

func TestInsertRejectedAtSceneStartBoundary(t *testing.T) {
	// [start, end) is half-open: inserting exactly at start overlaps.
	scenes := []types.Scene{{StartTime: 1000, EndTime: 2000, Description: "A"}}
	if _, ok := InsertAt(scenes, 1000, 500); ok {
		t.Error("insert at scene start must be rejected")
	}
	// Exactly at end is free space.
	if _, ok := InsertAt(scenes, 2000, 500); !ok {
		t.Error("insert at scene end should be accepted")
	}
}

func TestInsertRejectedWhenSpanTooNarrow(t *testing.T) {
	// Free gap of 400ms (40px) is under the 50px floor.
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 1400, EndTime: 2400, Description: "B"},
	}
	if _, ok := InsertAt(scenes, 1000, 500); ok {
		t.Error("insert into a sub-minimum gap must be rejected")
	}
}

func TestInsertIntoEmptyTimeline(t *testing.T) {
	updated, ok := InsertAt(nil, 0, 500)
	if !ok {
		t.Fatal("insert into empty timeline rejected")
	}
	if updated[0].StartTime != 0 || updated[0].EndTime != 5000 {
		t.Errorf("inserted = [%d,%d), want [0,5000)", updated[0].StartTime, updated[0].EndTime)
	}
}

func TestInsertOffGridPlayheadRespectsDurationFloor(t *testing.T) {
	// The play-head is not pinned to the 10ms pixel grid (frame ticks land
	// anywhere), and the flooring px conversion must not let a sub-500ms
	// scene through the width check.
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 1500, EndTime: 2500, Description: "B"},
	}
	if _, ok := InsertAt(scenes, 1009, 500); ok {
		t.Error("insert at 1009ms would commit a 491ms scene, must be rejected")
	}

	// With enough room to the next scene an off-grid start is fine.
	scenes[1].StartTime = 1600
	scenes[1].EndTime = 2600
	updated, ok := InsertAt(scenes, 1003, 500)
	if !ok {
		t.Fatal("off-grid insert with 597ms of room rejected")
	}
	inserted := updated[1]
	if inserted.StartTime != 1003 || inserted.EndTime != 1600 {
		t.Errorf("inserted = [%d,%d), want [1003,1600)", inserted.StartTime, inserted.EndTime)
	}
	if inserted.DurationMs() < config.MinSceneDurationMs {
		t.Errorf("scene [%d,%d) under minimum duration", inserted.StartTime, inserted.EndTime)
	}
}

func TestInsertMinimumDurationNeverViolated(t *testing.T) {
	scenes := []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "A"},
		{StartTime: 1500, EndTime: 2500, Description: "B"},
	}
	updated, ok := InsertAt(scenes, 1000, 500)
	if !ok {
		t.Fatal("500ms gap should fit exactly")
	}
	for _, s := range updated {
		if s.DurationMs() < config.MinSceneDurationMs {
			t.Errorf("scene [%d,%d) under minimum duration", s.StartTime, s.EndTime)
		}
	}
}
