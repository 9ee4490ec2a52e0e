// Package termhost runs the letterfall overlay inside a terminal. It adapts
// a tcell screen to the letterfall.Host capability surface: terminal cells
// stand in for the pixel lattice (one cell per grid pitch step), eased alpha
// becomes foreground color dimming, and tcell's resize and key events drive
// the Driver's resize and teardown paths.
package termhost

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/letterfall"
)

// defaultFPS is the frame rate of the terminal tick loop.
const defaultFPS = 30

// Config controls a terminal host. Zero values select the defaults.
type Config struct {
	// PageTitle is the title string the grid characters derive from.
	PageTitle string
	// ThemeColor is the primary color channel triple, e.g. "100, 255, 218".
	ThemeColor string
	// FPS is the tick rate. Defaults to 30.
	FPS int
}

// Host implements letterfall.Host on a tcell screen. All callbacks are
// dispatched from the single Run loop goroutine.
type Host struct {
	cfg     Config
	screen  tcell.Screen
	surface *cellSurface

	frameFn    func(now float64)
	resizeFn   func()
	teardownFn func()
}

// New initializes the terminal and returns a host ready for a Driver.
func New(cfg Config) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termhost: create screen: %w", err)
	}
	return newWithScreen(screen, cfg)
}

// newWithScreen finishes host setup on an arbitrary screen; tests pass a
// tcell simulation screen here.
func newWithScreen(screen tcell.Screen, cfg Config) (*Host, error) {
	if cfg.ThemeColor == "" {
		cfg.ThemeColor = "100, 255, 218"
	}
	if cfg.FPS <= 0 {
		cfg.FPS = defaultFPS
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("termhost: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	return &Host{cfg: cfg, screen: screen}, nil
}

// Run drives the event and tick loop until the context is cancelled or the
// user quits (Esc, q, or Ctrl-C). The teardown notification fires before the
// terminal is restored.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go h.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.FPS))
	defer ticker.Stop()
	start := time.Now()

	defer func() {
		if fn := h.teardownFn; fn != nil {
			fn()
		}
		close(quit)
		h.screen.Fini()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				h.screen.Sync()
				if fn := h.resizeFn; fn != nil {
					fn()
				}
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			}

		case <-ticker.C:
			if fn := h.frameFn; fn != nil {
				fn(time.Since(start).Seconds())
			}
			h.screen.Show()
		}
	}
}

// --- letterfall.Host ---

// AcquireSurface returns the terminal-cell surface.
func (h *Host) AcquireSurface() (letterfall.Surface, error) {
	if h.screen == nil {
		return nil, fmt.Errorf("termhost: screen not initialized")
	}
	if h.surface == nil {
		h.surface = &cellSurface{screen: h.screen}
	}
	return h.surface, nil
}

// ViewportSize reports the terminal size scaled up to the pixel lattice, so
// the grid builder produces exactly one cell per terminal cell.
func (h *Host) ViewportSize() (w, hgt float64) {
	cols, rows := h.screen.Size()
	return float64(cols * letterfall.CellWidth), float64(rows * letterfall.CellHeight)
}

// PrimaryColor returns the configured theme channel triple.
func (h *Host) PrimaryColor() string {
	return h.cfg.ThemeColor
}

// Title returns the configured page title.
func (h *Host) Title() string {
	return h.cfg.PageTitle
}

// WaitFont resolves immediately; the terminal's font is always ready.
func (h *Host) WaitFont(ctx context.Context) error {
	return ctx.Err()
}

// Schedule registers the per-frame dispatch function. The tick loop stops
// invoking it the moment cancel returns.
func (h *Host) Schedule(fn func(now float64)) (cancel func()) {
	h.frameFn = fn
	return func() { h.frameFn = nil }
}

// NotifyResize registers the resize handler fired on terminal resize events.
func (h *Host) NotifyResize(fn func()) (detach func()) {
	h.resizeFn = fn
	return func() { h.resizeFn = nil }
}

// NotifyTeardown registers the handler fired before the terminal is
// restored.
func (h *Host) NotifyTeardown(fn func()) (detach func()) {
	h.teardownFn = fn
	return func() { h.teardownFn = nil }
}

// cellSurface maps glyph draws onto terminal cells. Alpha becomes foreground
// dimming: the theme color scaled toward black, bold above half intensity.
type cellSurface struct {
	screen tcell.Screen
}

func (s *cellSurface) Clear() {
	s.screen.Clear()
}

func (s *cellSurface) DrawGlyph(ch rune, x, y float64, style letterfall.GlyphStyle) {
	alpha := style.Fill.A
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	col := int(x) / letterfall.CellWidth
	row := int(y) / letterfall.CellHeight

	fg := tcell.NewRGBColor(
		int32(style.Fill.R*alpha*255),
		int32(style.Fill.G*alpha*255),
		int32(style.Fill.B*alpha*255),
	)
	st := tcell.StyleDefault.Foreground(fg).Bold(alpha > 0.5)
	s.screen.SetContent(col, row, ch, nil, st)
}
