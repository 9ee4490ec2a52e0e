package letterfall

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// wakeDuration is how long the canvas takes to fade in after a build or a
// resize rebuild, in seconds.
const wakeDuration = 0.8

// defaultChannelTriple matches defaultPrimaryColor in string form.
const defaultChannelTriple = "100, 255, 218"

// WindowConfig controls a WindowHost. Zero values select the defaults.
type WindowConfig struct {
	// PageTitle is the title string the grid characters derive from.
	PageTitle string
	// ThemeColor is the primary color channel triple, e.g. "100, 255, 218".
	ThemeColor string
	// ClearColor fills the window behind the overlay.
	ClearColor Color
}

// WindowHost implements Host and ebiten.Game, running the overlay in a
// desktop window. The Driver's dispatch function is pumped from Update, the
// canvas is composited in Draw, and Layout doubles as the resize
// notification source.
//
// The canvas blit alpha eases from 0 to 1 after every (re)build, so resizes
// wake the overlay back in instead of popping.
type WindowHost struct {
	cfg    WindowConfig
	canvas *CanvasSurface

	w, h float64

	frameFn    func(now float64)
	resizeFn   func()
	teardownFn func()
	elapsed    float64

	wake      *gween.Tween
	wakeAlpha float64
}

// NewWindowHost creates a windowed host. Call Run after starting a Driver
// against it.
func NewWindowHost(cfg WindowConfig) *WindowHost {
	if cfg.ThemeColor == "" {
		cfg.ThemeColor = defaultChannelTriple
	}
	return &WindowHost{cfg: cfg, wakeAlpha: 1}
}

// Run opens the window and blocks until it is closed, then fires the
// teardown notification.
func (h *WindowHost) Run(title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(h)
	if fn := h.teardownFn; fn != nil {
		fn()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// --- Host ---

// AcquireSurface returns the offscreen canvas, creating it on first use.
func (h *WindowHost) AcquireSurface() (Surface, error) {
	if h.canvas == nil {
		h.canvas = NewCanvasSurface(int(h.w), int(h.h))
	}
	return h.canvas, nil
}

// ViewportSize returns the window content size in pixels.
func (h *WindowHost) ViewportSize() (w, hgt float64) {
	return h.w, h.h
}

// PrimaryColor returns the configured theme channel triple.
func (h *WindowHost) PrimaryColor() string {
	return h.cfg.ThemeColor
}

// Title returns the configured page title.
func (h *WindowHost) Title() string {
	return h.cfg.PageTitle
}

// WaitFont parses the bundled face. The bundled font makes this resolve
// immediately, but the Driver still sequences it before the first frame.
func (h *WindowHost) WaitFont(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.canvas == nil {
		h.canvas = NewCanvasSurface(int(h.w), int(h.h))
	}
	return h.canvas.loadFace()
}

// Schedule registers the per-frame dispatch function. Update stops invoking
// it the moment cancel returns.
func (h *WindowHost) Schedule(fn func(now float64)) (cancel func()) {
	h.frameFn = fn
	h.wake = gween.New(0, 1, wakeDuration, ease.OutQuad)
	return func() { h.frameFn = nil }
}

// NotifyResize registers the resize handler fired from Layout.
func (h *WindowHost) NotifyResize(fn func()) (detach func()) {
	h.resizeFn = fn
	return func() { h.resizeFn = nil }
}

// NotifyTeardown registers the handler fired when the window closes.
func (h *WindowHost) NotifyTeardown(fn func()) (detach func()) {
	h.teardownFn = fn
	return func() { h.teardownFn = nil }
}

// --- ebiten.Game ---

// Update pumps the frame dispatch function and advances the wake fade.
func (h *WindowHost) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	h.elapsed += dt

	if h.wake != nil {
		v, _ := h.wake.Update(float32(dt))
		h.wakeAlpha = float64(v)
	}
	if fn := h.frameFn; fn != nil {
		fn(h.elapsed)
	}
	return nil
}

// Draw composites the canvas onto the screen, modulated by the wake alpha.
func (h *WindowHost) Draw(screen *ebiten.Image) {
	screen.Fill(h.cfg.ClearColor.toRGBA())
	if h.canvas == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(h.wakeAlpha))
	screen.DrawImage(h.canvas.Image(), op)
}

// Layout tracks the window content size, resizing the canvas and firing the
// resize notification when it changes.
func (h *WindowHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, hgt := float64(outsideWidth), float64(outsideHeight)
	if w != h.w || hgt != h.h {
		h.w, h.h = w, hgt
		if h.canvas != nil {
			h.canvas.Resize(outsideWidth, outsideHeight)
		}
		if fn := h.resizeFn; fn != nil {
			fn()
		}
		if h.wake != nil {
			h.wake = gween.New(0, 1, wakeDuration, ease.OutQuad)
			h.wakeAlpha = 0
		}
	}
	return outsideWidth, outsideHeight
}
