package letterfall

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomonobold"
)

// glyphFontSize is the point size of the overlay face, sized to sit inside
// the (17, 35) cell pitch.
const glyphFontSize = 16

// glowPassAlpha scales the glow passes so the stacked offsets read as a soft
// halo rather than a solid outline.
const glowPassAlpha = 0.22

// CanvasSurface implements Surface on an offscreen ebiten image. Glyphs are
// filled with a fixed bold monospace face, left/top aligned; the glow is
// approximated by stacking offset passes behind the fill, in the same manner
// text outlines are rendered.
type CanvasSurface struct {
	image *ebiten.Image
	face  *text.GoTextFace
}

// NewCanvasSurface creates a canvas of w by h pixels. The face is attached
// later by loadFace, once font readiness resolves.
func NewCanvasSurface(w, h int) *CanvasSurface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &CanvasSurface{image: ebiten.NewImage(w, h)}
}

// Image returns the backing offscreen image for compositing onto the screen.
func (c *CanvasSurface) Image() *ebiten.Image {
	return c.image
}

// Resize replaces the backing image with one of the given dimensions. The
// old content is discarded; the next tick redraws everything anyway.
func (c *CanvasSurface) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	b := c.image.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return
	}
	c.image.Deallocate()
	c.image = ebiten.NewImage(w, h)
}

// loadFace parses the bundled bold monospace face. One-shot; this is the
// font-readiness dependency the Driver awaits before the first frame.
func (c *CanvasSurface) loadFace() error {
	if c.face != nil {
		return nil
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		return fmt.Errorf("letterfall: parse overlay face: %w", err)
	}
	c.face = &text.GoTextFace{Source: source, Size: glyphFontSize}
	return nil
}

// Clear erases the canvas to transparent.
func (c *CanvasSurface) Clear() {
	c.image.Clear()
}

// DrawGlyph fills ch at (x, y). Alpha outside [0, 1] is clamped, so the
// unclamped easing wind-down renders as invisible rather than erroring.
func (c *CanvasSurface) DrawGlyph(ch rune, x, y float64, style GlyphStyle) {
	if c.face == nil {
		return
	}
	fill := clampAlpha(style.Fill)
	glow := clampAlpha(style.Glow)
	s := string(ch)

	// Glow pass: the blur radius becomes four diagonal offsets at reduced
	// alpha, stacked behind the fill.
	if glow.A > 0 && style.Blur > 0 {
		r := style.Blur / 2
		offsets := [4][2]float64{{-r, -r}, {r, -r}, {-r, r}, {r, r}}
		for _, off := range offsets {
			op := &text.DrawOptions{}
			op.GeoM.Translate(x+off[0], y+off[1])
			op.ColorScale.Scale(
				float32(glow.R), float32(glow.G), float32(glow.B),
				float32(glow.A*glowPassAlpha),
			)
			op.Blend = ebiten.BlendLighter
			text.Draw(c.image, s, c.face, op)
		}
	}

	if fill.A > 0 {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.Scale(
			float32(fill.R), float32(fill.G), float32(fill.B), float32(fill.A),
		)
		text.Draw(c.image, s, c.face, op)
	}
}

// clampAlpha clamps a color's alpha into [0, 1].
func clampAlpha(c Color) Color {
	if c.A < 0 {
		c.A = 0
	} else if c.A > 1 {
		c.A = 1
	}
	return c
}
