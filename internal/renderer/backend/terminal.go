package backend

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glyphfall/internal/renderer"
)

// Terminal implements Surface using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	styles map[renderer.StyleToken]tcell.Style
	mu     sync.Mutex
}

// NewTerminal creates a new terminal surface on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing tcell screen, such as a
// simulation screen in tests. Init must still be called.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		styles: map[renderer.StyleToken]tcell.Style{
			renderer.StyleDefault: tcell.StyleDefault,
		},
	}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	t.screen.HideCursor()
	t.screen.Clear()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(row, col int, r rune, style renderer.StyleToken, attrs renderer.Attribute) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if col < 0 || col >= width || row < 0 || row >= height {
		return fmt.Errorf("set (%d,%d) on %dx%d: %w", row, col, width, height, ErrOutOfBounds)
	}

	base, ok := t.styles[style]
	if !ok {
		base = tcell.StyleDefault
	}
	t.screen.SetContent(col, row, r, nil, applyAttributes(base, attrs))
	return nil
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// PollEvent returns the next pending key press or resize. A resize is
// answered with a full Sync before it is reported. Other events are skipped.
func (t *Terminal) PollEvent() (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return Event{}, false
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			return convertKeyEvent(e), true
		case *tcell.EventResize:
			t.screen.Sync()
			w, h := e.Size()
			return Event{Type: EventResize, Width: w, Height: h}, true
		}
	}

	return Event{}, false
}

func (t *Terminal) RegisterStyle(index int, fg renderer.Color) (renderer.StyleToken, error) {
	if index < 1 {
		return renderer.StyleDefault, fmt.Errorf("register style %d: %w", index, ErrInvalidStyleIndex)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	token := renderer.StyleToken(index)
	t.styles[token] = tcell.StyleDefault.Foreground(convertColor(fg))
	return token, nil
}

// HasTrueColor returns true if the terminal supports 24-bit color.
func (t *Terminal) HasTrueColor() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Colors() > 256
}

// applyAttributes adds emphasis flags to a registered style.
func applyAttributes(style tcell.Style, attrs renderer.Attribute) tcell.Style {
	if attrs.Has(renderer.AttrBold) {
		style = style.Bold(true)
	}
	if attrs.Has(renderer.AttrDim) {
		style = style.Dim(true)
	}
	return style
}

// convertColor converts our Color to tcell.Color.
func convertColor(c renderer.Color) tcell.Color {
	switch {
	case c.IsDefault():
		return tcell.ColorDefault
	case c.Indexed:
		return tcell.PaletteColor(int(c.R))
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

// convertKeyEvent converts a tcell key event to our Event type.
func convertKeyEvent(e *tcell.EventKey) Event {
	return Event{
		Type: EventKey,
		Key:  convertKey(e.Key()),
		Rune: e.Rune(),
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyCtrlC:
		return KeyCtrlC
	default:
		return KeyOther
	}
}
