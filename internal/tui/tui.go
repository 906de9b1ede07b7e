// Package tui hosts mounted button groups in a terminal using tcell.
//
// Drawing and key handling run on the application loop goroutine; the
// only work done on the input goroutine is polling the screen and posting
// events to the loop.
package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/buttongroup/internal/app"
	"github.com/dshills/buttongroup/internal/logging"
)

// Help is the key summary drawn on the last row.
const Help = "tab/shift-tab: group  ←/→: move  enter/space: press  d: disable  q: quit"

// Styles used to draw widgets.
var (
	StyleDefault  = tcell.StyleDefault
	StyleTitle    = tcell.StyleDefault.Bold(true)
	StyleFocus    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	StyleDisabled = tcell.StyleDefault.Dim(true)
	StyleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Host draws the application's mounts and turns key presses into widget
// operations.
type Host struct {
	app    *app.Application
	screen tcell.Screen
	logger *logging.Logger

	// Cursors belong to the mounts they were set on and are dropped when
	// the application remounts.
	mounts  []*app.Mount
	focus   int
	cursors map[*app.Mount]int
}

// New creates a host that draws on screen. The screen is initialized by Run.
func New(a *app.Application, screen tcell.Screen) *Host {
	return &Host{
		app:     a,
		screen:  screen,
		logger:  a.Logger().WithComponent("tui"),
		cursors: make(map[*app.Mount]int),
	}
}

// NewTerminal creates a host on the controlling terminal.
func NewTerminal(a *app.Application) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(a, screen), nil
}

// Run initializes the screen, runs the application and restores the
// terminal when the application stops.
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	h.screen.HideCursor()
	h.app.OnUpdate(h.Draw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.pollEvents()
	}()

	err := h.app.Run(ctx)

	// Fini makes PollEvent return nil, which ends the input goroutine.
	h.screen.Fini()
	<-done
	return err
}

func (h *Host) pollEvents() {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}

		var task func()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			task = func() {
				h.HandleKey(ev)
				h.Draw()
			}
		case *tcell.EventResize:
			task = func() {
				h.screen.Sync()
				h.Draw()
			}
		default:
			continue
		}

		if err := h.app.Post(task); err != nil {
			return
		}
	}
}

// sync returns the current mounts, forgetting cursors kept for mounts
// that have been replaced.
func (h *Host) sync() []*app.Mount {
	mounts := h.app.Mounts()
	if !slices.Equal(mounts, h.mounts) {
		h.mounts = slices.Clone(mounts)
		clear(h.cursors)
	}
	return mounts
}

// Focus returns the focused mount, or nil when nothing is mounted.
func (h *Host) Focus() *app.Mount {
	mounts := h.sync()
	if len(mounts) == 0 {
		return nil
	}
	if h.focus >= len(mounts) {
		h.focus = len(mounts) - 1
	}
	return mounts[h.focus]
}

// Cursor returns the index of the highlighted button in the focused mount.
func (h *Host) Cursor() int {
	m := h.Focus()
	if m == nil {
		return 0
	}
	return h.cursor(m)
}

func (h *Host) cursor(m *app.Mount) int {
	i, ok := h.cursors[m]
	if !ok {
		// Start on the pressed button.
		for j, b := range m.Buttons {
			if b.Pressed() {
				i = j
				break
			}
		}
		h.cursors[m] = i
	}
	if i >= len(m.Buttons) {
		i = max(len(m.Buttons)-1, 0)
	}
	return i
}

// HandleKey applies one key event. It must run on the loop goroutine.
func (h *Host) HandleKey(ev *tcell.EventKey) {
	m := h.Focus()
	mounts := h.mounts

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		h.app.Shutdown()
	case tcell.KeyTab:
		if len(mounts) > 0 {
			h.focus = (h.focus + 1) % len(mounts)
		}
	case tcell.KeyBacktab:
		if len(mounts) > 0 {
			h.focus = (h.focus - 1 + len(mounts)) % len(mounts)
		}
	case tcell.KeyLeft:
		h.move(m, -1)
	case tcell.KeyRight:
		h.move(m, 1)
	case tcell.KeyEnter:
		h.press(m)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			h.app.Shutdown()
		case ' ':
			h.press(m)
		case 'd':
			if m != nil {
				m.Disabled.Toggle()
			}
		case 'h':
			h.move(m, -1)
		case 'l':
			h.move(m, 1)
		}
	}
}

func (h *Host) move(m *app.Mount, delta int) {
	if m == nil || len(m.Buttons) == 0 {
		return
	}
	n := len(m.Buttons)
	h.cursors[m] = (h.cursor(m) + delta + n) % n
}

func (h *Host) press(m *app.Mount) {
	if m == nil || len(m.Buttons) == 0 {
		return
	}
	b := m.Buttons[h.cursor(m)]
	if err := h.app.PressButton(context.Background(), b); err != nil {
		h.logger.Warn("press %s=%s: %v", m.Group.Name(), b.Value(), err)
	}
}

// Draw renders every mount, one group per pair of rows.
func (h *Host) Draw() {
	h.screen.Clear()
	_, height := h.screen.Size()

	focus := h.Focus()
	y := 0
	for _, m := range h.mounts {
		title := StyleTitle
		if m == focus {
			title = StyleFocus
		}
		name := m.Group.Name()
		if name == "" {
			name = "(unnamed)"
		}
		if m.Group.Disabled() {
			name += " (disabled)"
		}
		x := h.text(0, y, name, title)
		x = h.text(x, y, ": ", StyleDefault)

		cursor := h.cursor(m)
		for i, b := range m.Buttons {
			style := StyleDefault
			if b.Disabled() {
				style = StyleDisabled
			}
			if b.Pressed() {
				style = style.Reverse(true)
			}
			label := " " + b.Label() + " "
			if m == focus && i == cursor {
				label = "[" + b.Label() + "]"
				style = style.Underline(true)
			}
			x = h.text(x, y, label, style)
			x = h.text(x, y, " ", StyleDefault)
		}
		y += 2
	}

	if height > 0 {
		h.text(0, height-1, Help, StyleHelp)
	}
	h.screen.Show()
}

// text draws s at (x, y) and returns the column after it.
func (h *Host) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
