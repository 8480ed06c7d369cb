package app

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Metrics tracks frame loop statistics. Counters are atomic so a
// snapshot can be taken from another goroutine while the loop runs.
type Metrics struct {
	// Frame timing
	frameCount    atomic.Uint64
	frameTotalNs  atomic.Int64
	frameMinNs    atomic.Int64
	frameMaxNs    atomic.Int64
	lastFrameNs   atomic.Int64
	droppedFrames atomic.Uint64

	// Flush
	cellsFlushed    atomic.Uint64
	swallowedWrites atomic.Uint64

	resizes atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the time spent on one tick's work.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordDroppedFrame records a tick whose work overran the frame budget.
func (m *Metrics) RecordDroppedFrame() {
	m.droppedFrames.Add(1)
}

// RecordFlush records the number of cells written to the surface.
func (m *Metrics) RecordFlush(cells int) {
	m.cellsFlushed.Add(uint64(cells))
}

// RecordSwallowedWrite records a surface write error that was discarded.
func (m *Metrics) RecordSwallowedWrite() {
	m.swallowedWrites.Add(1)
}

// RecordResize records a surface size change.
func (m *Metrics) RecordResize() {
	m.resizes.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:          time.Since(m.startTime),
		FrameCount:      frameCount,
		AvgFrameTimeNs:  avgFrameNs,
		MinFrameTimeNs:  minFrameNs,
		MaxFrameTimeNs:  m.frameMaxNs.Load(),
		LastFrameNs:     m.lastFrameNs.Load(),
		DroppedFrames:   m.droppedFrames.Load(),
		CellsFlushed:    m.cellsFlushed.Load(),
		SwallowedWrites: m.swallowedWrites.Load(),
		Resizes:         m.resizes.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotalNs.Store(0)
	m.frameMinNs.Store(1<<63 - 1)
	m.frameMaxNs.Store(0)
	m.lastFrameNs.Store(0)
	m.droppedFrames.Store(0)
	m.cellsFlushed.Store(0)
	m.swallowedWrites.Store(0)
	m.resizes.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime          time.Duration
	FrameCount      uint64
	AvgFrameTimeNs  int64
	MinFrameTimeNs  int64
	MaxFrameTimeNs  int64
	LastFrameNs     int64
	DroppedFrames   uint64
	CellsFlushed    uint64
	SwallowedWrites uint64
	Resizes         uint64
}

// DropRate returns the percentage of frames that overran their budget.
func (s MetricsSnapshot) DropRate() float64 {
	if s.FrameCount == 0 {
		return 0
	}
	return float64(s.DroppedFrames) / float64(s.FrameCount) * 100
}

// CellsPerFrame returns the average number of cells flushed per frame.
func (s MetricsSnapshot) CellsPerFrame() float64 {
	if s.FrameCount == 0 {
		return 0
	}
	return float64(s.CellsFlushed) / float64(s.FrameCount)
}

// WriteTo prints a human readable summary.
func (s MetricsSnapshot) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"frames: %d over %s\n"+
			"frame time: avg %s, min %s, max %s\n"+
			"dropped: %d (%.1f%%)\n"+
			"cells flushed: %d (%.1f per frame)\n"+
			"swallowed writes: %d\n"+
			"resizes: %d\n",
		s.FrameCount, s.Uptime.Round(time.Millisecond),
		time.Duration(s.AvgFrameTimeNs), time.Duration(s.MinFrameTimeNs), time.Duration(s.MaxFrameTimeNs),
		s.DroppedFrames, s.DropRate(),
		s.CellsFlushed, s.CellsPerFrame(),
		s.SwallowedWrites,
		s.Resizes,
	)
	return int64(n), err
}
