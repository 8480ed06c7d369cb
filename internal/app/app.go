package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/dshills/glyphfall/internal/rain"
	"github.com/dshills/glyphfall/internal/renderer"
	"github.com/dshills/glyphfall/internal/renderer/backend"
)

// Application owns one animation run: it initializes the display
// surface, registers the gradient styles and hands control to the
// Scheduler until quit.
type Application struct {
	mu sync.RWMutex

	surface   backend.Surface
	scheduler *Scheduler

	params rain.Params
	head      renderer.Color
	tail      []renderer.Color
	tailSteps int
	seed      uint64

	logger  *Logger
	metrics *Metrics

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// Params are the simulation tunables.
	Params rain.Params

	// Head is the color of the leading glyph; Tail lists the tail
	// colors from brightest to dimmest.
	Head renderer.Color
	Tail []renderer.Color

	// TailSteps expands Tail into a smooth ramp of this many colors on
	// surfaces with true color. Palette surfaces get Tail as given.
	TailSteps int

	// Seed fixes the random source. Zero picks a random seed.
	Seed uint64

	// Logger defaults to NullLogger.
	Logger *Logger

	// Metrics defaults to a fresh tracker.
	Metrics *Metrics
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if len(opts.Tail) == 0 {
		return nil, fmt.Errorf("%w: no tail colors", ErrInvalidOptions)
	}
	if len(opts.Params.Alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrInvalidOptions)
	}
	if opts.Params.TailMin < 1 || opts.Params.TailMax < opts.Params.TailMin {
		return nil, fmt.Errorf("%w: tail length bounds [%d, %d]", ErrInvalidOptions, opts.Params.TailMin, opts.Params.TailMax)
	}

	app := &Application{
		params:  opts.Params,
		head:    opts.Head,
		tail:      append([]renderer.Color(nil), opts.Tail...),
		tailSteps: opts.TailSteps,
		seed:      opts.Seed,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
	if app.seed == 0 {
		app.seed = rand.Uint64()
	}
	if app.logger == nil {
		app.logger = NullLogger
	}
	if app.metrics == nil {
		app.metrics = NewMetrics()
	}

	return app, nil
}

// SetBackend sets the display surface.
// Must be called before Run().
func (app *Application) SetBackend(s backend.Surface) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.surface = s
	return nil
}

// Run initializes the surface and runs the animation until a quit key,
// ctx cancellation or ctx deadline, all of which return nil. Metrics are
// reset at the start of every run.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	surface := app.surface
	app.mu.RUnlock()

	if surface == nil {
		return ErrNoBackend
	}

	if err := surface.Init(); err != nil {
		return &InitError{Component: "surface", Err: err}
	}
	defer surface.Shutdown()

	tail := app.tail
	if surface.HasTrueColor() {
		tail = renderer.Ramp(tail, app.tailSteps)
	}
	gradient, err := rain.RegisterGradient(surface, app.head, tail)
	if err != nil {
		return &InitError{Component: "styles", Err: err}
	}

	app.metrics.Reset()
	app.logger.Info("run start: seed=%d styles=%d", app.seed, gradient.Len())

	sched := NewScheduler(surface, SchedulerConfig{
		Params:   app.params,
		Gradient: gradient,
		Rand:     rand.New(rand.NewPCG(app.seed, app.seed^0x9e3779b97f4a7c15)),
		Logger:   app.logger,
		Metrics:  app.metrics,
	})

	app.mu.Lock()
	app.scheduler = sched
	app.mu.Unlock()

	err = sched.Run(ctx)
	if IsCleanExit(err) || errors.Is(err, context.DeadlineExceeded) {
		app.logger.Info("run end: %v", err)
		return nil
	}
	app.logger.Error("run failed: %v", err)
	return err
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Seed returns the seed of the random source, for replaying a run.
func (app *Application) Seed() uint64 {
	return app.seed
}

// Metrics returns the application's metrics instance.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Scheduler returns the scheduler of the current or last run.
func (app *Application) Scheduler() *Scheduler {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.scheduler
}
