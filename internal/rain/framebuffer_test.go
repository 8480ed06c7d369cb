package rain

import (
	"testing"

	"github.com/dshills/glyphfall/internal/renderer"
	"github.com/dshills/glyphfall/internal/renderer/dirty"
)

func litCell(r rune, fade float64) Cell {
	return Cell{Rune: r, Style: 2, Fade: fade}
}

func TestNewFrameBuffer(t *testing.T) {
	fb := NewFrameBuffer(24, 80, testParams())

	if fb.Rows() != 24 || fb.Cols() != 80 {
		t.Errorf("size = %dx%d, want 24x80", fb.Rows(), fb.Cols())
	}
	if fb.Lit() != 0 {
		t.Errorf("Lit = %d, want 0", fb.Lit())
	}
	if !fb.Get(0, 0).Equals(BackgroundCell(' ')) {
		t.Errorf("Get(0,0) = %+v, want background", fb.Get(0, 0))
	}
}

func TestFrameBufferGetOutOfBounds(t *testing.T) {
	fb := NewFrameBuffer(5, 5, testParams())
	fb.Set(0, 0, litCell('A', 5))

	for _, c := range []dirty.Coord{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 5, Col: 0}, {Row: 0, Col: 5}} {
		if got := fb.Get(c.Row, c.Col); !got.IsBackground() {
			t.Errorf("Get(%d,%d) = %+v, want background", c.Row, c.Col, got)
		}
		if fb.Set(c.Row, c.Col, litCell('B', 1)) {
			t.Errorf("Set(%d,%d) should be ignored", c.Row, c.Col)
		}
	}
}

func TestFrameBufferSetMarksDirty(t *testing.T) {
	fb := NewFrameBuffer(10, 10, testParams())

	if !fb.Set(3, 4, litCell('A', 5)) {
		t.Error("Set of new value should report change")
	}

	got := fb.DirtyCoordinates()
	if len(got) != 1 || got[0] != (dirty.Coord{Row: 3, Col: 4}) {
		t.Errorf("DirtyCoordinates = %v, want [{3 4}]", got)
	}
	if len(fb.DirtyCoordinates()) != 0 {
		t.Error("second drain should be empty")
	}
}

func TestFrameBufferSetIdempotent(t *testing.T) {
	fb := NewFrameBuffer(10, 10, testParams())
	c := litCell('A', 5)

	fb.Set(1, 1, c)
	if fb.Set(1, 1, c) {
		t.Error("second identical Set should report no change")
	}
	if got := fb.DirtyCoordinates(); len(got) != 1 {
		t.Errorf("DirtyCoordinates len = %d, want 1", len(got))
	}

	// Same value as flushed: never dirty.
	if fb.Set(1, 1, c) {
		t.Error("Set of flushed value should report no change")
	}
	if got := fb.DirtyCoordinates(); len(got) != 0 {
		t.Errorf("DirtyCoordinates = %v, want none", got)
	}
}

func TestFrameBufferRevertBeforeFlush(t *testing.T) {
	fb := NewFrameBuffer(10, 10, testParams())

	fb.Set(2, 2, litCell('A', 5))
	fb.Set(2, 2, fb.Background())

	if got := fb.DirtyCoordinates(); len(got) != 0 {
		t.Errorf("DirtyCoordinates = %v, want none for reverted cell", got)
	}
}

func TestFrameBufferDirtyOrder(t *testing.T) {
	fb := NewFrameBuffer(10, 10, testParams())
	fb.Set(5, 1, litCell('A', 1))
	fb.Set(0, 9, litCell('B', 1))
	fb.Set(5, 0, litCell('C', 1))

	got := fb.DirtyCoordinates()
	want := []dirty.Coord{{Row: 0, Col: 9}, {Row: 5, Col: 0}, {Row: 5, Col: 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d coords, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("coord[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFrameBufferErase(t *testing.T) {
	fb := NewFrameBuffer(4, 4, testParams())

	if fb.Erase(0, 0) {
		t.Error("Erase of background cell should report no change")
	}
	if fb.Pending() != 0 {
		t.Error("Erase of background cell should not mark dirty")
	}

	fb.Set(0, 0, litCell('A', 3))
	fb.DirtyCoordinates()

	if !fb.Erase(0, 0) {
		t.Error("Erase of lit cell should report change")
	}
	if !fb.Get(0, 0).IsBackground() {
		t.Error("erased cell should be background")
	}
	if got := fb.DirtyCoordinates(); len(got) != 1 {
		t.Errorf("DirtyCoordinates len = %d, want 1", len(got))
	}
}

func TestFrameBufferDecayTopRow(t *testing.T) {
	fb := NewFrameBuffer(20, 1, testParams())
	fb.Set(0, 0, litCell('A', 10))
	fb.DirtyCoordinates()

	fb.Decay(1, 1)

	if got := fb.Get(0, 0).Fade; got != 9.875 {
		t.Errorf("Fade = %v, want 9.875", got)
	}
	if got := fb.DirtyCoordinates(); len(got) != 1 {
		t.Errorf("decayed cell should be dirty, got %v", got)
	}
}

func TestFrameBufferDecayBottomBoost(t *testing.T) {
	fb := NewFrameBuffer(20, 1, testParams())
	fb.Set(10, 0, litCell('A', 10))

	fb.Decay(1, 1)

	// 0.125 × (1 + 1.0 × 10/20) = 0.1875
	if got := fb.Get(10, 0).Fade; got != 9.8125 {
		t.Errorf("Fade = %v, want 9.8125", got)
	}
}

func TestFrameBufferDecayScales(t *testing.T) {
	tests := []struct {
		name             string
		pulse, intensity float64
		want             float64
	}{
		{"unit", 1, 1, 9.875},
		{"pulse", 2, 1, 9.75},
		{"intensity", 1, 0.5, 9.9375},
		{"both", 2, 0.5, 9.875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(20, 1, testParams())
			fb.Set(0, 0, litCell('A', 10))
			fb.Decay(tt.pulse, tt.intensity)
			if got := fb.Get(0, 0).Fade; got != tt.want {
				t.Errorf("Fade = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrameBufferDecayReachesZero(t *testing.T) {
	fb := NewFrameBuffer(20, 1, testParams())
	fb.Set(0, 0, Cell{Rune: 'A', Style: 3, Attrs: renderer.AttrBold, Fade: 10})

	prev := 10.0
	ticks := 0
	for !fb.Get(0, 0).IsBackground() {
		fb.Decay(1, 1)
		ticks++
		got := fb.Get(0, 0).Fade
		if got < 0 {
			t.Fatalf("Fade went negative: %v", got)
		}
		if got >= prev {
			t.Fatalf("Fade did not decrease: %v -> %v", prev, got)
		}
		prev = got
		if ticks > 80 {
			t.Fatalf("cell still lit after %d ticks", ticks)
		}
	}

	if got := fb.Get(0, 0); !got.Equals(fb.Background()) {
		t.Errorf("faded cell = %+v, want background", got)
	}
}

func TestFrameBufferDecayLeavesBackground(t *testing.T) {
	fb := NewFrameBuffer(5, 5, testParams())
	fb.Decay(1, 1)
	if fb.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", fb.Pending())
	}
}

func TestFrameBufferResize(t *testing.T) {
	fb := NewFrameBuffer(24, 80, testParams())
	for i := 0; i < 24; i++ {
		fb.Set(i, i, litCell('A', 4))
	}

	fb.Resize(30, 100)

	if fb.Rows() != 30 || fb.Cols() != 100 {
		t.Fatalf("size = %dx%d, want 30x100", fb.Rows(), fb.Cols())
	}
	if fb.Lit() != 0 {
		t.Errorf("Lit = %d, want 0", fb.Lit())
	}
	if fb.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", fb.Pending())
	}
	for r := 0; r < 30; r++ {
		for c := 0; c < 100; c++ {
			if !fb.Get(r, c).Equals(fb.Background()) {
				t.Fatalf("Get(%d,%d) = %+v, want background", r, c, fb.Get(r, c))
			}
		}
	}
	if got := fb.DirtyCoordinates(); len(got) != 0 {
		t.Errorf("DirtyCoordinates after resize = %v, want none", got)
	}
}

func TestFrameBufferCustomBackground(t *testing.T) {
	p := testParams()
	p.Background = '.'
	fb := NewFrameBuffer(2, 2, p)

	if got := fb.Get(1, 1).Rune; got != '.' {
		t.Errorf("background rune = %q, want '.'", got)
	}
}
