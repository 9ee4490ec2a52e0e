package letterfall

import (
	"math"
	"math/rand/v2"
)

// defaultFadeRange is the uniform interval fade durations are drawn from,
// in seconds.
var defaultFadeRange = Range{Min: 2, Max: 7}

// defaultGlowBlur is the shadow blur radius applied behind each glyph.
const defaultGlowBlur = 8.0

// FadeInstance is one currently-animating cell: its position and character
// plus the start and fadeout timestamps of its fade interval. Fadeout is
// always strictly greater than Start.
type FadeInstance struct {
	X, Y    float64
	Char    rune
	Start   float64
	Fadeout float64
}

// FieldConfig controls a Field. Zero values select the package defaults.
type FieldConfig struct {
	// FadeRange is the interval fade durations are drawn from, in seconds.
	// Defaults to [2, 7]. Min must be > 0 when set.
	FadeRange Range
	// GlowBlur is the glyph shadow blur radius in pixels. Defaults to 8.
	GlowBlur float64
	// Rand is the randomness source for sampling and durations. Defaults to
	// a fresh PCG-seeded source.
	Rand *rand.Rand
}

// Field owns the grid and the animated subset of its cells. It exclusively
// mutates both; all calls happen inside a frame tick or a resize handler.
//
// The active set holds round(rows x 0.75) instances at steady state. Every
// expired instance is replaced in the same tick by a freshly sampled cell
// (which may repeat a currently-animating position), so the population is a
// self-sustaining stochastic process that never grows or shrinks between
// rebuilds.
type Field struct {
	surface Surface
	color   Color
	text    string

	fadeRange Range
	glowBlur  float64
	rng       *rand.Rand

	grid   Grid
	active []FadeInstance
}

// NewField creates a Field drawing through surface with the given theme
// color and character source text. The field is empty until Rebuild.
func NewField(surface Surface, color Color, text string, cfg FieldConfig) *Field {
	fade := cfg.FadeRange
	if fade == (Range{}) {
		fade = defaultFadeRange
	}
	blur := cfg.GlowBlur
	if blur == 0 {
		blur = defaultGlowBlur
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{
		surface:   surface,
		color:     color,
		text:      text,
		fadeRange: fade,
		glowBlur:  blur,
		rng:       rng,
	}
}

// Grid returns the current lattice. The returned value MUST NOT be mutated.
func (f *Field) Grid() Grid {
	return f.grid
}

// ActiveCount returns the number of currently-animating instances.
func (f *Field) ActiveCount() int {
	return len(f.active)
}

// Rebuild discards the grid and every active instance and recomputes both
// for a viewport of w by h pixels. No instance survives a rebuild.
func (f *Field) Rebuild(w, h, now float64) {
	f.grid = BuildGrid(w, h, f.text)
	f.active = f.active[:0]
	f.seed(now)
}

// seed populates the initial fade instances and renders them immediately
// (at opacity 0: now == start falls into the in-interval easing branch at
// progress 0).
func (f *Field) seed(now float64) {
	target := int(math.Round(float64(f.grid.Rows) * activeRowsFactor))
	if target > len(f.grid.Cells) {
		target = len(f.grid.Cells)
	}

	indices, err := SampleIndices(f.rng, len(f.grid.Cells), target)
	if err != nil {
		// target is clamped to the population above; unreachable.
		panic(err)
	}
	for _, idx := range indices {
		inst := f.newInstance(f.grid.Cells[idx], now)
		f.active = append(f.active, inst)
		f.draw(inst, Ease(now, inst.Start, inst.Fadeout))
	}
}

// newInstance starts a fade at now over a freshly sampled duration.
func (f *Field) newInstance(c Cell, now float64) FadeInstance {
	return FadeInstance{
		X:       c.X,
		Y:       c.Y,
		Char:    c.Char,
		Start:   now,
		Fadeout: now + f.fadeRange.Random(f.rng),
	}
}

// Advance runs one frame tick: clears the surface, eases and draws every
// active instance, and swaps expired ones for fresh cells.
//
// An instance is retired only once its fadeout has passed AND its eased
// alpha is currently <= 0. Because the post-expiry curve is a full unclamped
// sine, alpha can swing positive again after the deadline, briefly deferring
// retirement; that boundary is part of the effect's look and is preserved
// as-is.
func (f *Field) Advance(now float64) {
	f.surface.Clear()

	// Rebuild the slice in place rather than splicing mid-iteration. Each
	// element is read before the slot can be overwritten, and ordering of
	// the active set carries no meaning.
	out := f.active[:0]
	for _, inst := range f.active {
		alpha := Ease(now, inst.Start, inst.Fadeout)
		if inst.Fadeout <= now && alpha <= 0 {
			out = append(out, f.replace(now))
		} else {
			out = append(out, inst)
		}
		f.draw(inst, alpha)
	}
	f.active = out
}

// replace samples one fresh cell from the full grid. The replacement may
// land on a position that is already animating; no exclusion is applied.
func (f *Field) replace(now float64) FadeInstance {
	indices, err := SampleIndices(f.rng, len(f.grid.Cells), 1)
	if err != nil {
		// A non-empty active set implies a non-empty grid; unreachable.
		panic(err)
	}
	return f.newInstance(f.grid.Cells[indices[0]], now)
}

// draw issues the glyph draw call with alpha as both fill and glow
// intensity. Raw eased alpha is passed through; the surface clamps.
func (f *Field) draw(inst FadeInstance, alpha float64) {
	f.surface.DrawGlyph(inst.Char, inst.X, inst.Y, GlyphStyle{
		Fill: f.color.WithAlpha(alpha),
		Glow: f.color.WithAlpha(alpha),
		Blur: f.glowBlur,
	})
}
