package app

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dshills/buttongroup/internal/event"
)

// Metrics counts application activity. It is safe for concurrent use.
type Metrics struct {
	mounts       atomic.Uint64
	reloads      atomic.Uint64
	reloadErrors atomic.Uint64

	presses      atomic.Uint64
	pressErrors  atomic.Uint64
	pressTotalNs atomic.Int64
	pressMaxNs   atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordMount records a layout mount.
func (m *Metrics) RecordMount() {
	m.mounts.Add(1)
}

// RecordReload records a live reload attempt.
func (m *Metrics) RecordReload(err error) {
	m.reloads.Add(1)
	if err != nil {
		m.reloadErrors.Add(1)
	}
}

// RecordPress records a button press and the time it took to settle,
// including the group's action and re-broadcast.
func (m *Metrics) RecordPress(duration time.Duration, err error) {
	ns := duration.Nanoseconds()

	m.presses.Add(1)
	m.pressTotalNs.Add(ns)
	if err != nil {
		m.pressErrors.Add(1)
	}

	for {
		old := m.pressMaxNs.Load()
		if ns <= old || m.pressMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Mounts:       m.mounts.Load(),
		Reloads:      m.reloads.Load(),
		ReloadErrors: m.reloadErrors.Load(),
		Presses:      m.presses.Load(),
		PressErrors:  m.pressErrors.Load(),
		MaxPress:     time.Duration(m.pressMaxNs.Load()),
	}
	if s.Presses > 0 {
		s.AvgPress = time.Duration(m.pressTotalNs.Load() / int64(s.Presses))
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Mounts       uint64
	Reloads      uint64
	ReloadErrors uint64
	Presses      uint64
	PressErrors  uint64
	AvgPress     time.Duration
	MaxPress     time.Duration
}

// Stats summarizes runtime counters.
type Stats struct {
	Groups     int
	Buttons    int
	Bus        event.Stats
	TasksRun   uint64
	TaskPanics uint64
	Metrics    MetricsSnapshot
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics { return app.metrics }

// Stats returns runtime counters. Call it on the loop goroutine or after
// Run returns.
func (app *Application) Stats() Stats {
	s := Stats{
		Groups:  len(app.mounts),
		Bus:     app.bus.Stats(),
		Metrics: app.metrics.Snapshot(),
	}
	for _, m := range app.mounts {
		s.Buttons += len(m.Buttons)
	}
	s.TasksRun, s.TaskPanics = app.loop.Stats()
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("groups=%d buttons=%d presses=%d reloads=%d published=%d delivered=%d errors=%d panics=%d tasks=%d",
		s.Groups, s.Buttons, s.Metrics.Presses, s.Metrics.Reloads,
		s.Bus.Published, s.Bus.Delivered, s.Bus.HandlerErrors, s.Bus.HandlerPanics, s.TasksRun)
}
