package letterfall

import "context"

// GlyphStyle carries the colors for one glyph draw: the fill and a glow
// (shadow) rendered behind it with the given blur radius. Alpha channels may
// arrive outside [0, 1] because the easing wind-down is unclamped; surfaces
// clamp at the draw boundary.
type GlyphStyle struct {
	Fill Color
	Glow Color
	Blur float64
}

// Surface is the drawing capability the overlay renders through. It must
// support clearing the whole drawable region and filling a single character
// at a pixel position in a fixed bold monospace font with left/top alignment.
//
// Surfaces are mutated only from inside a frame tick or a resize handler,
// never concurrently.
type Surface interface {
	// Clear erases the entire drawable region.
	Clear()
	// DrawGlyph fills ch at (x, y) with the given style. Out-of-range alpha
	// must be treated as invisible (clamped), not an error.
	DrawGlyph(ch rune, x, y float64, style GlyphStyle)
}

// Host supplies the page-side capabilities the Driver orchestrates against.
// All callbacks registered through a Host fire on the host's frame callback
// queue, one at a time.
type Host interface {
	// AcquireSurface returns the drawing surface. An error here is fatal to
	// animation setup; there is nothing to draw with.
	AcquireSurface() (Surface, error)

	// ViewportSize returns the current content width and height in pixels,
	// accounting for scrollable overflow rather than just the visible
	// viewport.
	ViewportSize() (w, h float64)

	// PrimaryColor returns the theme's primary color as three
	// comma-separated numeric channels, e.g. "100, 255, 218".
	PrimaryColor() string

	// Title returns the page title the grid characters derive from.
	Title() string

	// WaitFont blocks until the display font is ready, so the first frame
	// never renders with a fallback face. One-shot; subsequent calls return
	// immediately.
	WaitFont(ctx context.Context) error

	// Schedule registers fn to be invoked once per frame with the current
	// time in seconds. The returned cancel function guarantees that fn is
	// not invoked again after cancel returns, including any already-queued
	// pending callback.
	Schedule(fn func(now float64)) (cancel func())

	// NotifyResize registers fn to be invoked when the viewport or content
	// size changes. The returned detach function unregisters it.
	NotifyResize(fn func()) (detach func())

	// NotifyTeardown registers fn to be invoked once before the host goes
	// away. The returned detach function unregisters it.
	NotifyTeardown(fn func()) (detach func())
}
