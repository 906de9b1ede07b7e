package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	s := m.Snapshot()
	if s.Presses != 0 || s.AvgPress != 0 || s.MaxPress != 0 {
		t.Errorf("fresh snapshot = %+v", s)
	}
}

func TestMetrics_RecordPress(t *testing.T) {
	m := NewMetrics()

	m.RecordPress(10*time.Millisecond, nil)
	m.RecordPress(30*time.Millisecond, errors.New("boom"))
	m.RecordPress(20*time.Millisecond, nil)

	s := m.Snapshot()
	if s.Presses != 3 {
		t.Errorf("Presses = %d, want 3", s.Presses)
	}
	if s.PressErrors != 1 {
		t.Errorf("PressErrors = %d, want 1", s.PressErrors)
	}
	if s.AvgPress != 20*time.Millisecond {
		t.Errorf("AvgPress = %v, want 20ms", s.AvgPress)
	}
	if s.MaxPress != 30*time.Millisecond {
		t.Errorf("MaxPress = %v, want 30ms", s.MaxPress)
	}
}

func TestMetrics_RecordReload(t *testing.T) {
	m := NewMetrics()

	m.RecordReload(nil)
	m.RecordReload(errors.New("bad layout"))

	s := m.Snapshot()
	if s.Reloads != 2 || s.ReloadErrors != 1 {
		t.Errorf("Reloads = %d, ReloadErrors = %d, want 2 and 1", s.Reloads, s.ReloadErrors)
	}
}

func TestApplication_MetricsWiring(t *testing.T) {
	app, _, _ := newTestApp(t)
	if err := app.Mount(testLayout()); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	app.Loop().Flush()

	app.Press(context.Background(), "size", "s")
	app.Press(context.Background(), "color", "red")

	s := app.Stats()
	if s.Metrics.Mounts != 1 {
		t.Errorf("Mounts = %d, want 1", s.Metrics.Mounts)
	}
	if s.Metrics.Presses != 2 {
		t.Errorf("Presses = %d, want 2", s.Metrics.Presses)
	}
	if got := s.String(); got == "" {
		t.Error("String() is empty")
	}
}
