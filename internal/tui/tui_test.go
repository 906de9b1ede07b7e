package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/buttongroup/internal/app"
	"github.com/dshills/buttongroup/internal/config"
)

func newTestHost(t *testing.T) (*Host, *app.Application, tcell.SimulationScreen) {
	t.Helper()

	a, err := app.NewWithConfig(config.Default(), io.Discard)
	if err != nil {
		t.Fatalf("NewWithConfig failed: %v", err)
	}
	layout := &config.Layout{Groups: []config.GroupSpec{
		{
			Name:  "size",
			Value: "m",
			Buttons: []config.ButtonSpec{
				{Value: "s", Label: "Small"},
				{Value: "m", Label: "Medium"},
				{Value: "l", Label: "Large"},
			},
		},
		{
			Name:    "color",
			Buttons: []config.ButtonSpec{{Value: "red"}, {Value: "blue"}},
		},
	}}
	if err := a.Mount(layout); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	a.Loop().Flush()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen Init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 10)

	return New(a, screen), a, screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestHost_CursorStartsOnPressed(t *testing.T) {
	h, _, _ := newTestHost(t)

	if got := h.Cursor(); got != 1 {
		t.Errorf("Cursor() = %d, want 1", got)
	}
}

func TestHost_MoveAndPress(t *testing.T) {
	h, a, _ := newTestHost(t)
	m := a.Mounts()[0]

	h.HandleKey(key(tcell.KeyRight))
	h.HandleKey(key(tcell.KeyEnter))

	if got := m.Group.Value(); got != "l" {
		t.Errorf("group value = %q, want %q", got, "l")
	}
	if b, ok := m.Pressed(); !ok || b.Value() != "l" {
		t.Errorf("pressed button = %v, want l", b)
	}

	// Wraps around to the first button.
	h.HandleKey(key(tcell.KeyRight))
	h.HandleKey(char(' '))
	if got := m.Group.Value(); got != "s" {
		t.Errorf("group value = %q, want %q", got, "s")
	}
}

func TestHost_FocusCycles(t *testing.T) {
	h, a, _ := newTestHost(t)
	mounts := a.Mounts()

	tests := []struct {
		key  *tcell.EventKey
		want *app.Mount
	}{
		{key(tcell.KeyTab), mounts[1]},
		{key(tcell.KeyTab), mounts[0]},
		{key(tcell.KeyBacktab), mounts[1]},
		{key(tcell.KeyBacktab), mounts[0]},
	}

	for i, tt := range tests {
		h.HandleKey(tt.key)
		if got := h.Focus(); got != tt.want {
			t.Errorf("step %d: focus = %q, want %q", i, got.Group.Name(), tt.want.Group.Name())
		}
	}
}

func TestHost_ToggleDisabled(t *testing.T) {
	h, a, _ := newTestHost(t)
	m := a.Mounts()[0]

	h.HandleKey(char('d'))
	if !m.Group.Disabled() {
		t.Fatal("group should be disabled")
	}
	for _, b := range m.Buttons {
		if !b.Disabled() {
			t.Errorf("button %s should be disabled", b.Value())
		}
	}

	// Presses are ignored while disabled.
	h.HandleKey(key(tcell.KeyLeft))
	h.HandleKey(key(tcell.KeyEnter))
	if got := m.Group.Value(); got != "m" {
		t.Errorf("group value = %q, want %q", got, "m")
	}

	h.HandleKey(char('d'))
	if m.Group.Disabled() {
		t.Error("group should be enabled")
	}
}

func TestHost_Draw(t *testing.T) {
	h, _, screen := newTestHost(t)

	h.Draw()

	if got, want := row(screen, 0), "size:  Small  [Medium]  Large"; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
	if got, want := row(screen, 2), "color:  red   blue"; got != want {
		t.Errorf("row 2 = %q, want %q", got, want)
	}
	if got := row(screen, 9); got != Help {
		t.Errorf("help row = %q, want %q", got, Help)
	}

	_, _, style, _ := screen.GetContent(15, 0) //nolint:staticcheck // GetContent is the correct API
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("pressed button should be drawn reversed")
	}
}

func TestHost_DrawDisabled(t *testing.T) {
	h, _, screen := newTestHost(t)

	h.HandleKey(char('d'))
	h.Draw()

	if got := row(screen, 0); !strings.HasPrefix(got, "size (disabled): ") {
		t.Errorf("row 0 = %q, want disabled marker", got)
	}
}

func TestHost_Quit(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", char('q')},
		{"escape", key(tcell.KeyEscape)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, a, _ := newTestHost(t)
			h.HandleKey(tt.ev)

			if err := a.Post(func() {}); err == nil {
				t.Error("Post should fail after quit")
			}
		})
	}
}

func TestHost_RemountDropsOldCursors(t *testing.T) {
	h, a, screen := newTestHost(t)
	old := a.Mounts()

	h.HandleKey(key(tcell.KeyRight))
	h.HandleKey(key(tcell.KeyTab))
	h.HandleKey(key(tcell.KeyRight))
	h.Draw()

	layout := &config.Layout{Groups: []config.GroupSpec{{
		Name:    "shape",
		Value:   "sq",
		Buttons: []config.ButtonSpec{{Value: "ci"}, {Value: "sq"}},
	}}}
	if err := a.Mount(layout); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	a.Loop().Flush()
	h.Draw()

	for _, m := range old {
		if _, ok := h.cursors[m]; ok {
			t.Errorf("cursor kept for replaced mount %q", m.Group.Name())
		}
	}
	if len(h.cursors) != 1 {
		t.Errorf("len(cursors) = %d, want 1", len(h.cursors))
	}
	if got := h.Focus(); got != a.Mounts()[0] {
		t.Errorf("focus = %v, want the new mount", got)
	}
	if got := h.Cursor(); got != 1 {
		t.Errorf("Cursor() = %d, want 1", got)
	}
	if got, want := row(screen, 0), "shape:  ci  [sq]"; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
}
