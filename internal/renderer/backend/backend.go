// Package backend provides the display surface abstraction for the renderer.
package backend

import (
	"errors"
	"fmt"

	"github.com/dshills/glyphfall/internal/renderer"
)

// ErrOutOfBounds is returned by SetCell for coordinates outside the
// surface's current size. Callers treat it as a benign resize race.
var ErrOutOfBounds = errors.New("cell out of bounds")

// ErrInvalidStyleIndex is returned by RegisterStyle for indices below 1.
var ErrInvalidStyleIndex = errors.New("style index must be >= 1")

// EventType identifies the type of surface event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event represents a surface input event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyCtrlC
	KeyOther
)

// IsQuit reports whether the event is one of the quit keys:
// q, Q, Escape or Ctrl+C.
func (e Event) IsQuit() bool {
	if e.Type != EventKey {
		return false
	}
	switch e.Key {
	case KeyEscape, KeyCtrlC:
		return true
	case KeyRune:
		return e.Rune == 'q' || e.Rune == 'Q'
	default:
		return false
	}
}

// Surface defines the interface for character-cell display surfaces.
// Implementations handle the actual drawing to a terminal or a test double.
type Surface interface {
	// Init initializes the surface for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases surface resources and restores terminal state.
	Shutdown()

	// Size returns the current surface dimensions.
	Size() (width, height int)

	// SetCell writes one cell. Coordinates outside the current size
	// return ErrOutOfBounds and leave the surface unchanged.
	SetCell(row, col int, r rune, style renderer.StyleToken, attrs renderer.Attribute) error

	// Clear blanks the whole surface with the default style.
	Clear()

	// Show pushes pending writes to the display.
	Show()

	// PollEvent returns the next pending key or resize event, if any.
	// It never blocks; ok is false when nothing is waiting.
	PollEvent() (ev Event, ok bool)

	// HasTrueColor reports whether the surface renders 24-bit color.
	// Otherwise colors are mapped onto the terminal palette.
	HasTrueColor() bool

	// RegisterStyle binds a foreground color to a style slot and returns
	// the token that selects it. Index 0 is reserved for the default style.
	RegisterStyle(index int, fg renderer.Color) (renderer.StyleToken, error)
}

// Cell is a cell as recorded by NullBackend.
type Cell struct {
	Rune  rune
	Style renderer.StyleToken
	Attrs renderer.Attribute
}

// blank is the content of an untouched NullBackend cell.
var blank = Cell{Rune: ' '}

// NullBackend is an in-memory surface for testing.
type NullBackend struct {
	width, height int
	cells         [][]Cell
	styles        map[renderer.StyleToken]renderer.Color
	events        []Event
	trueColor     bool
	writes        int
	shows         int
	clears        int
	initialized   bool
	shutdown      bool

	// FailWrites makes every in-bounds SetCell fail with this error.
	FailWrites error
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		styles:    make(map[renderer.StyleToken]renderer.Color),
		trueColor: true,
	}
	b.setSize(width, height)
	return b
}

func (b *NullBackend) Init() error {
	b.initialized = true
	return nil
}

func (b *NullBackend) Shutdown() {
	b.shutdown = true
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(row, col int, r rune, style renderer.StyleToken, attrs renderer.Attribute) error {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return fmt.Errorf("set (%d,%d) on %dx%d: %w", row, col, b.width, b.height, ErrOutOfBounds)
	}
	if b.FailWrites != nil {
		return b.FailWrites
	}
	b.cells[row][col] = Cell{Rune: r, Style: style, Attrs: attrs}
	b.writes++
	return nil
}

// GetCell returns the cell at the given position.
// Returns a blank cell for positions outside the surface.
func (b *NullBackend) GetCell(row, col int) Cell {
	if col >= 0 && col < b.width && row >= 0 && row < b.height {
		return b.cells[row][col]
	}
	return blank
}

func (b *NullBackend) Clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = blank
		}
	}
	b.clears++
}

func (b *NullBackend) Show() {
	b.shows++
}

func (b *NullBackend) PollEvent() (Event, bool) {
	if len(b.events) == 0 {
		return Event{}, false
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev, true
}

func (b *NullBackend) HasTrueColor() bool {
	return b.trueColor
}

// SetTrueColor sets what HasTrueColor reports. A new NullBackend reports true.
func (b *NullBackend) SetTrueColor(on bool) {
	b.trueColor = on
}

func (b *NullBackend) RegisterStyle(index int, fg renderer.Color) (renderer.StyleToken, error) {
	if index < 1 {
		return renderer.StyleDefault, fmt.Errorf("register style %d: %w", index, ErrInvalidStyleIndex)
	}
	token := renderer.StyleToken(index)
	b.styles[token] = fg
	return token, nil
}

// PostKey queues a key event for PollEvent.
func (b *NullBackend) PostKey(ev Event) {
	if ev.Type == EventNone {
		ev.Type = EventKey
	}
	b.events = append(b.events, ev)
}

// Resize simulates a terminal resize for testing: content is discarded
// and a resize event is queued for PollEvent.
func (b *NullBackend) Resize(width, height int) {
	b.setSize(width, height)
	b.events = append(b.events, Event{Type: EventResize, Width: b.width, Height: b.height})
}

func (b *NullBackend) setSize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = blank
		}
	}
}

// StyleColor returns the color registered for a token.
func (b *NullBackend) StyleColor(token renderer.StyleToken) (renderer.Color, bool) {
	c, ok := b.styles[token]
	return c, ok
}

// Writes returns the number of successful SetCell calls.
func (b *NullBackend) Writes() int { return b.writes }

// Shows returns the number of Show calls.
func (b *NullBackend) Shows() int { return b.shows }

// Clears returns the number of Clear calls.
func (b *NullBackend) Clears() int { return b.clears }

// Initialized reports whether Init was called.
func (b *NullBackend) Initialized() bool { return b.initialized }

// IsShutdown reports whether Shutdown was called.
func (b *NullBackend) IsShutdown() bool { return b.shutdown }
