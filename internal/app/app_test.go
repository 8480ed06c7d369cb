package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/glyphfall/internal/renderer"
	"github.com/dshills/glyphfall/internal/renderer/backend"
)

func testOptions() Options {
	return Options{
		Params: testParams(),
		Head:   renderer.ColorWhite,
		Tail:   []renderer.Color{renderer.ColorGreen, renderer.ColorFromRGB(0, 64, 0)},
		Seed:   99,
	}
}

func TestNewApplication(t *testing.T) {
	app, err := New(testOptions())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false before Run()")
	}
	if app.Seed() != 99 {
		t.Errorf("Seed = %d, want 99", app.Seed())
	}
	if app.Logger() != NullLogger {
		t.Error("expected NullLogger by default")
	}
	if app.Metrics() == nil {
		t.Error("expected default metrics")
	}
}

func TestNewApplicationRandomSeed(t *testing.T) {
	opts := testOptions()
	opts.Seed = 0

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if app.Seed() == 0 {
		t.Error("expected a random seed to be chosen")
	}
}

func TestNewApplicationInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no tail", func(o *Options) { o.Tail = nil }},
		{"no alphabet", func(o *Options) { o.Params.Alphabet = nil }},
		{"tail min 0", func(o *Options) { o.Params.TailMin = 0 }},
		{"tail inverted", func(o *Options) { o.Params.TailMin, o.Params.TailMax = 9, 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)
			if _, err := New(opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("New() error = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestApplication_RunNoBackend(t *testing.T) {
	app, _ := New(testOptions())

	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() = %v, want ErrNoBackend", err)
	}
	if app.IsRunning() {
		t.Error("IsRunning should be false after Run returns")
	}
}

func TestApplication_RunUntilQuit(t *testing.T) {
	app, _ := New(testOptions())
	surface := backend.NewNullBackend(30, 10)
	if err := app.SetBackend(surface); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}
	surface.PostKey(backend.Event{Key: backend.KeyRune, Rune: 'q'})

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	if !surface.Initialized() {
		t.Error("surface was not initialized")
	}
	if !surface.IsShutdown() {
		t.Error("surface was not shut down")
	}
	head, ok := surface.StyleColor(1)
	if !ok || !head.Equals(renderer.ColorWhite) {
		t.Errorf("style 1 = %v, want head color", head)
	}
	if _, ok := surface.StyleColor(3); !ok {
		t.Error("last tail style not registered")
	}
	if app.Scheduler() == nil {
		t.Error("Scheduler should be kept after the run")
	}
	if app.Metrics().Snapshot().FrameCount != 1 {
		t.Errorf("FrameCount = %d, want 1", app.Metrics().Snapshot().FrameCount)
	}
}

func TestApplication_RunContextDone(t *testing.T) {
	app, _ := New(testOptions())
	surface := backend.NewNullBackend(30, 10)
	_ = app.SetBackend(surface)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, want nil on deadline", err)
	}
	if app.Metrics().Snapshot().FrameCount == 0 {
		t.Error("expected frames before the deadline")
	}
	if !surface.IsShutdown() {
		t.Error("surface was not shut down")
	}
}

func TestApplication_TailRamp(t *testing.T) {
	tests := []struct {
		name      string
		trueColor bool
		steps     int
		last      renderer.StyleToken
	}{
		{"true color ramps", true, 6, 7},
		{"palette keeps stops", false, 6, 3},
		{"no steps keeps stops", true, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.TailSteps = tt.steps
			app, _ := New(opts)
			surface := backend.NewNullBackend(10, 4)
			surface.SetTrueColor(tt.trueColor)
			_ = app.SetBackend(surface)
			surface.PostKey(backend.Event{Key: backend.KeyEscape})

			if err := app.Run(context.Background()); err != nil {
				t.Fatalf("Run() = %v", err)
			}
			if _, ok := surface.StyleColor(tt.last); !ok {
				t.Errorf("style %d not registered", tt.last)
			}
			if _, ok := surface.StyleColor(tt.last + 1); ok {
				t.Errorf("style %d registered, want %d styles", tt.last+1, tt.last)
			}
		})
	}
}

func TestApplication_RunResetsMetrics(t *testing.T) {
	app, _ := New(testOptions())
	surface := backend.NewNullBackend(10, 4)
	_ = app.SetBackend(surface)

	for i := 0; i < 2; i++ {
		surface.PostKey(backend.Event{Key: backend.KeyEscape})
		if err := app.Run(context.Background()); err != nil {
			t.Fatalf("Run() = %v", err)
		}
		if got := app.Metrics().Snapshot().FrameCount; got != 1 {
			t.Errorf("run %d: FrameCount = %d, want 1", i, got)
		}
	}
}

type failingSurface struct {
	*backend.NullBackend
	initErr     error
	registerErr error
}

func (s *failingSurface) Init() error { return s.initErr }

func (s *failingSurface) RegisterStyle(index int, fg renderer.Color) (renderer.StyleToken, error) {
	if s.registerErr != nil {
		return 0, s.registerErr
	}
	return s.NullBackend.RegisterStyle(index, fg)
}

func TestApplication_RunInitFailure(t *testing.T) {
	app, _ := New(testOptions())
	inner := errors.New("not a terminal")
	_ = app.SetBackend(&failingSurface{NullBackend: backend.NewNullBackend(1, 1), initErr: inner})

	err := app.Run(context.Background())
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "surface" {
		t.Fatalf("Run() = %v, want InitError for surface", err)
	}
	if !errors.Is(err, inner) {
		t.Error("InitError should wrap the surface error")
	}
}

func TestApplication_RunStyleFailure(t *testing.T) {
	app, _ := New(testOptions())
	surface := &failingSurface{NullBackend: backend.NewNullBackend(1, 1), registerErr: errors.New("no colors")}
	_ = app.SetBackend(surface)

	err := app.Run(context.Background())
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "styles" {
		t.Fatalf("Run() = %v, want InitError for styles", err)
	}
	if !surface.IsShutdown() {
		t.Error("surface should be shut down after a failed start")
	}
}

func TestApplication_SameSeedSameFrames(t *testing.T) {
	run := func() *backend.NullBackend {
		app, _ := New(testOptions())
		surface := backend.NewNullBackend(25, 8)
		_ = app.SetBackend(surface)

		// The run stops after its first tick, which only sizes the
		// buffers; later ticks are driven by hand on the same scheduler.
		surface.PostKey(backend.Event{Key: backend.KeyEscape})
		if err := app.Run(context.Background()); err != nil {
			t.Fatalf("Run() = %v", err)
		}

		s := app.Scheduler()
		start := time.Unix(0, 0)
		for n := 0; n < 50; n++ {
			s.Tick(start.Add(time.Duration(n) * time.Second / 30))
		}
		return surface
	}

	a, b := run(), run()
	for r := 0; r < 8; r++ {
		for c := 0; c < 25; c++ {
			if a.GetCell(r, c) != b.GetCell(r, c) {
				t.Fatalf("(%d,%d) differs between runs with the same seed", r, c)
			}
		}
	}
}
