package dirty

import (
	"testing"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(80, 24)

	if tracker.Len() != 0 {
		t.Error("New tracker should have no coordinates")
	}
	if !tracker.Mark(23, 79) {
		t.Error("bottom-right corner should be markable")
	}
	if tracker.Mark(24, 0) {
		t.Error("row 24 is outside a 24 row screen")
	}
}

func TestNewTrackerNegativeSize(t *testing.T) {
	tracker := NewTracker(-5, -1)

	if tracker.Mark(0, 0) {
		t.Error("Mark on empty screen should fail")
	}
	if tracker.Len() != 0 {
		t.Errorf("Len = %d, want 0", tracker.Len())
	}
}

func TestTrackerMark(t *testing.T) {
	tracker := NewTracker(80, 24)

	if !tracker.Mark(5, 10) {
		t.Error("first Mark should report added")
	}
	if tracker.Len() != 1 {
		t.Errorf("Len = %d, want 1", tracker.Len())
	}
	got := tracker.Drain()
	if len(got) != 1 || got[0] != (Coord{Row: 5, Col: 10}) {
		t.Errorf("Drain = %+v, want [{5 10}]", got)
	}
}

func TestTrackerMarkIdempotent(t *testing.T) {
	tracker := NewTracker(80, 24)

	tracker.Mark(3, 3)
	if tracker.Mark(3, 3) {
		t.Error("second Mark of same coordinate should report not added")
	}
	if tracker.Len() != 1 {
		t.Errorf("Len = %d, want 1", tracker.Len())
	}
}

func TestTrackerMarkOutOfBounds(t *testing.T) {
	tracker := NewTracker(10, 5)

	tests := []struct {
		row, col int
	}{
		{-1, 0},
		{0, -1},
		{5, 0},
		{0, 10},
	}

	for _, tt := range tests {
		if tracker.Mark(tt.row, tt.col) {
			t.Errorf("Mark(%d, %d) should fail", tt.row, tt.col)
		}
	}
	if tracker.Len() != 0 {
		t.Errorf("Len = %d, want 0", tracker.Len())
	}
}

func TestTrackerDrainOrderAndReset(t *testing.T) {
	tracker := NewTracker(80, 24)

	tracker.Mark(7, 2)
	tracker.Mark(0, 9)
	tracker.Mark(7, 1)
	tracker.Mark(0, 3)

	got := tracker.Drain()
	want := []Coord{{0, 3}, {0, 9}, {7, 1}, {7, 2}}
	if len(got) != len(want) {
		t.Fatalf("Drain returned %d coords, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Drain()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if tracker.Len() != 0 {
		t.Error("Drain should empty the tracker")
	}
	if !tracker.Mark(7, 2) {
		t.Error("coordinate should be markable again after Drain")
	}
}

func TestTrackerSetScreenSizeClears(t *testing.T) {
	tracker := NewTracker(80, 24)
	tracker.Mark(1, 1)

	tracker.SetScreenSize(100, 30)

	if tracker.Len() != 0 {
		t.Error("resize should discard pending coordinates")
	}
	if !tracker.Mark(29, 99) {
		t.Error("new bottom-right corner should be markable")
	}
	if !tracker.Mark(1, 1) {
		t.Error("coordinate marked before the resize should be markable again")
	}
}

func TestTrackerClear(t *testing.T) {
	tracker := NewTracker(4, 4)
	for r := 0; r < 4; r++ {
		tracker.Mark(r, r)
	}

	tracker.Clear()

	if tracker.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", tracker.Len())
	}
	for r := 0; r < 4; r++ {
		if !tracker.Mark(r, r) {
			t.Errorf("(%d,%d) should be markable after Clear", r, r)
		}
	}
}

func TestCoordCompare(t *testing.T) {
	tests := []struct {
		a, b Coord
		want int
	}{
		{Coord{0, 5}, Coord{1, 0}, -1},
		{Coord{1, 0}, Coord{0, 5}, 1},
		{Coord{2, 1}, Coord{2, 3}, -1},
		{Coord{2, 3}, Coord{2, 1}, 1},
		{Coord{2, 3}, Coord{2, 3}, 0},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%+v.Compare(%+v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
