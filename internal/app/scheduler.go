package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/dshills/glyphfall/internal/rain"
	"github.com/dshills/glyphfall/internal/renderer"
	"github.com/dshills/glyphfall/internal/renderer/backend"
)

// SchedulerConfig holds the collaborators of a Scheduler.
type SchedulerConfig struct {
	Params   rain.Params
	Gradient *rain.Gradient
	Rand     *rand.Rand

	// Logger and Metrics are optional.
	Logger  *Logger
	Metrics *Metrics
}

// Scheduler drives the frame loop. Each tick it decays the frame buffer,
// advances every column, flushes the changed cells to the surface and
// polls for a quit key. It owns the frame buffer and columns; nothing
// else touches them.
type Scheduler struct {
	surface  backend.Surface
	params   rain.Params
	gradient *rain.Gradient
	rng      *rand.Rand
	logger   *Logger
	metrics  *Metrics

	fb            *rain.FrameBuffer
	columns       []*rain.Column
	width, height int
	sized         bool
	stale         bool
	start         time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewScheduler creates a scheduler drawing onto surface. The frame buffer
// and columns are built on the first tick, once the surface size is known.
func NewScheduler(surface backend.Surface, cfg SchedulerConfig) *Scheduler {
	s := &Scheduler{
		surface:  surface,
		params:   cfg.Params,
		gradient: cfg.Gradient,
		rng:      cfg.Rand,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		now:      time.Now,
		sleep:    sleepContext,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.logger == nil {
		s.logger = NullLogger
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.logger = s.logger.WithComponent("scheduler")
	return s
}

// FrameBuffer returns the current frame buffer, nil before the first tick.
func (s *Scheduler) FrameBuffer() *rain.FrameBuffer { return s.fb }

// Columns returns the current columns in slot order.
func (s *Scheduler) Columns() []*rain.Column { return s.columns }

// Run ticks until a quit key is pressed or ctx is cancelled. It returns
// ErrQuit for a quit key and ctx.Err() on cancellation. A tick in progress
// always completes.
func (s *Scheduler) Run(ctx context.Context) error {
	interval := s.params.FrameInterval()
	s.logger.Info("starting at %.1f fps", s.params.FrameRate)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		started := s.now()
		quit := s.Tick(started)
		work := s.now().Sub(started)

		s.metrics.RecordFrame(work)
		if work > interval {
			s.metrics.RecordDroppedFrame()
		}
		if quit {
			s.logger.Info("quit key pressed")
			return ErrQuit
		}

		if err := s.sleep(ctx, interval); err != nil {
			return err
		}
	}
}

// Tick runs one iteration of the frame loop at time now and reports
// whether a quit key was seen. A tick that detects a size change, or
// follows a resize event for another size, only rebuilds state; decay,
// column updates and the flush wait for the next.
func (s *Scheduler) Tick(now time.Time) bool {
	if s.start.IsZero() {
		s.start = now
	}

	width, height := s.surface.Size()
	if !s.sized || s.stale || width != s.width || height != s.height {
		s.rebuild(width, height, now)
	} else {
		s.fb.Decay(s.params.PulseFactor(now.Sub(s.start)), s.params.Intensity)
		for i, col := range s.columns {
			col.Advance(s.fb, rain.SlotX(i, len(s.columns), width), now)
		}
		s.flush()
	}

	s.surface.Show()
	return s.pollEvents()
}

// rebuild discards all animation state and starts over at the new size.
// The first build also sprinkles the screen fill.
func (s *Scheduler) rebuild(width, height int, now time.Time) {
	first := !s.sized
	if !first {
		s.metrics.RecordResize()
		s.logger.Debug("resize %dx%d -> %dx%d", s.width, s.height, width, height)
	}
	s.width, s.height = width, height
	s.sized = true
	s.stale = false

	if s.fb == nil {
		s.fb = rain.NewFrameBuffer(height, width, s.params)
	} else {
		s.fb.Resize(height, width)
	}

	n := s.params.ColumnCount(width)
	s.columns = make([]*rain.Column, n)
	for i := range s.columns {
		s.columns[i] = rain.NewColumn(height, s.params, s.gradient, s.rng, now)
	}

	s.surface.Clear()
	if first {
		s.fill()
	}
}

// fill writes dim glyphs in the first tail style straight to the surface
// at ScreenFillRate. The frame buffer does not track them, so they stay
// until a trail passes over and fades out.
func (s *Scheduler) fill() {
	rate := s.params.ScreenFillRate
	if rate <= 0 {
		return
	}
	symbols := s.params.Symbols()
	style := s.gradient.At(1)

	n := 0
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			if s.rng.Float64() >= rate {
				continue
			}
			if s.write(row, col, symbols[s.rng.IntN(len(symbols))], style, renderer.AttrDim) {
				n++
			}
		}
	}
	s.logger.Debug("screen fill: %d cells", n)
}

// flush writes every dirty cell to the surface.
func (s *Scheduler) flush() {
	written := 0
	for _, c := range s.fb.DirtyCoordinates() {
		cell := s.fb.Get(c.Row, c.Col)
		style, attrs := s.present(cell)
		if s.write(c.Row, c.Col, cell.Rune, style, attrs) {
			written++
		}
	}
	s.metrics.RecordFlush(written)
}

// write sets one surface cell and reports whether it landed. Errors are
// counted and discarded; out of bounds errors are expected while a resize
// is in flight and are not logged.
func (s *Scheduler) write(row, col int, r rune, style renderer.StyleToken, attrs renderer.Attribute) bool {
	err := s.surface.SetCell(row, col, r, style, attrs)
	if err == nil {
		return true
	}
	s.metrics.RecordSwallowedWrite()
	if !errors.Is(err, backend.ErrOutOfBounds) {
		s.logger.Warn("write (%d,%d): %v", row, col, err)
	}
	return false
}

// present merges the fade tier into the cell's own emphasis. Bold wins
// over dim.
func (s *Scheduler) present(cell rain.Cell) (renderer.StyleToken, renderer.Attribute) {
	if cell.IsBackground() {
		return renderer.StyleDefault, renderer.AttrNone
	}
	attrs := cell.Attrs.With(s.params.Emphasis(cell.Fade))
	if attrs.Has(renderer.AttrBold) {
		attrs = attrs.Without(renderer.AttrDim)
	}
	return cell.Style, attrs
}

// pollEvents drains pending events and reports whether any of them is a
// quit key. A resize to a size other than the one in use marks the state
// stale so the next tick rebuilds even if the size has since changed back.
func (s *Scheduler) pollEvents() bool {
	quit := false
	for {
		ev, ok := s.surface.PollEvent()
		if !ok {
			return quit
		}
		switch {
		case ev.IsQuit():
			quit = true
		case ev.Type == backend.EventResize:
			if ev.Width != s.width || ev.Height != s.height {
				s.stale = true
			}
			s.logger.Debug("resize event %dx%d", ev.Width, ev.Height)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
