package letterfall

import (
	"testing"
)

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	clears int
	draws  []glyphDraw
}

type glyphDraw struct {
	ch    rune
	x, y  float64
	style GlyphStyle
}

func (s *recordingSurface) Clear() {
	s.clears++
}

func (s *recordingSurface) DrawGlyph(ch rune, x, y float64, style GlyphStyle) {
	s.draws = append(s.draws, glyphDraw{ch: ch, x: x, y: y, style: style})
}

// newTestField builds a field over a 10x10-cell viewport (170x350 px) with a
// deterministic random source.
func newTestField(t *testing.T, cfg FieldConfig) (*Field, *recordingSurface) {
	t.Helper()
	if cfg.Rand == nil {
		cfg.Rand = testRand()
	}
	surface := &recordingSurface{}
	f := NewField(surface, Color{R: 1, G: 1, B: 1, A: 1}, "letterfall", cfg)
	return f, surface
}

func TestSeedPopulationSize(t *testing.T) {
	f, _ := newTestField(t, FieldConfig{})
	f.Rebuild(170, 350, 0) // 10 columns x 10 rows

	// round(10 rows x 0.75) = 8. Keyed to row count, not total cells.
	if got := f.ActiveCount(); got != 8 {
		t.Errorf("ActiveCount = %d, want 8", got)
	}
}

func TestSeedRendersImmediatelyAtZeroOpacity(t *testing.T) {
	f, surface := newTestField(t, FieldConfig{})
	f.Rebuild(170, 350, 12.5)

	if len(surface.draws) != 8 {
		t.Fatalf("seed issued %d draws, want 8", len(surface.draws))
	}
	for i, d := range surface.draws {
		if d.style.Fill.A != 0 {
			t.Errorf("seed draw %d alpha = %f, want 0 (now == start)", i, d.style.Fill.A)
		}
	}
}

func TestSeedCellsDistinct(t *testing.T) {
	f, _ := newTestField(t, FieldConfig{})
	f.Rebuild(170, 350, 0)

	seen := make(map[[2]float64]bool)
	for _, inst := range f.active {
		key := [2]float64{inst.X, inst.Y}
		if seen[key] {
			t.Errorf("seed placed two instances at (%v, %v)", inst.X, inst.Y)
		}
		seen[key] = true
	}
}

func TestFadeoutAlwaysAfterStart(t *testing.T) {
	f, _ := newTestField(t, FieldConfig{})
	f.Rebuild(170, 350, 100)

	for i, inst := range f.active {
		if inst.Fadeout <= inst.Start {
			t.Errorf("instance %d: fadeout %f <= start %f", i, inst.Fadeout, inst.Start)
		}
		d := inst.Fadeout - inst.Start
		if d < defaultFadeRange.Min || d > defaultFadeRange.Max {
			t.Errorf("instance %d: duration %f outside default range", i, d)
		}
	}
}

func TestAdvancePopulationStaysConstant(t *testing.T) {
	f, surface := newTestField(t, FieldConfig{})
	f.Rebuild(170, 350, 0)
	seeded := f.ActiveCount()

	// Sweep far past every possible fadeout so plenty of retirements and
	// replacements happen along the way.
	ticks := 0
	for now := 0.0; now <= 60.0; now += 0.05 {
		f.Advance(now)
		ticks++
		if got := f.ActiveCount(); got != seeded {
			t.Fatalf("ActiveCount = %d after Advance(%v), want %d", got, now, seeded)
		}
	}
	if surface.clears != ticks {
		t.Errorf("clears = %d, want one per tick (%d)", surface.clears, ticks)
	}
}

func TestAdvanceReplacesExpired(t *testing.T) {
	f, _ := newTestField(t, FieldConfig{FadeRange: Range{Min: 1, Max: 1}})
	f.Rebuild(170, 350, 0) // every instance fades over [0, 1]

	// At now = 2 the wind-down has run a full cycle: sin(2*pi) <= 0, so
	// every instance retires and is replaced by one starting at 2.
	f.Advance(2)
	if got := f.ActiveCount(); got != 8 {
		t.Fatalf("ActiveCount = %d, want 8", got)
	}
	for i, inst := range f.active {
		if inst.Start != 2 {
			t.Errorf("instance %d start = %f, want 2 (fresh replacement)", i, inst.Start)
		}
	}
}

func TestExpiredInstanceWithPositiveAlphaSurvives(t *testing.T) {
	// Known boundary: the retirement guard requires both "past fadeout" and
	// "alpha <= 0". The wind-down sine swings positive again right after
	// the deadline, so at now = fadeout + duration/4 the eased alpha is 1
	// and the expired instance is deliberately kept for another tick.
	f, _ := newTestField(t, FieldConfig{FadeRange: Range{Min: 1, Max: 1}})
	f.Rebuild(170, 350, 0)

	f.Advance(1.25)
	for i, inst := range f.active {
		if inst.Start != 0 {
			t.Errorf("instance %d start = %f, want 0 (no retirement yet)", i, inst.Start)
		}
	}
}

func TestAdvancePassesRawAlphaToSurface(t *testing.T) {
	f, surface := newTestField(t, FieldConfig{})
	f.grid = BuildGrid(170, 350, "x")
	f.active = []FadeInstance{{X: 17, Y: 35, Char: 'x', Start: 0, Fadeout: 1}}

	// now = 1.75: wind-down progress 1.5, sin(1.5*pi) = -1. The field hands
	// the surface the unclamped value; clamping is the surface's job.
	surface.draws = nil
	f.Advance(1.75)
	if len(surface.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(surface.draws))
	}
	assertNear(t, "fill alpha", surface.draws[0].style.Fill.A, -1)
	assertNear(t, "glow alpha", surface.draws[0].style.Glow.A, -1)
}

func TestRebuildDiscardsEverything(t *testing.T) {
	f, _ := newTestField(t, FieldConfig{})
	f.Rebuild(170, 350, 0)
	for now := 0.0; now < 3.0; now += 0.1 {
		f.Advance(now)
	}

	f.Rebuild(340, 700, 5) // 20 columns x 20 rows
	if got := len(f.grid.Cells); got != 400 {
		t.Errorf("grid cells = %d, want 400", got)
	}
	if got := f.ActiveCount(); got != 15 {
		t.Errorf("ActiveCount = %d, want round(20*0.75) = 15", got)
	}
	for i, inst := range f.active {
		if inst.Start != 5 {
			t.Errorf("instance %d start = %f, want 5 (nothing survives a rebuild)", i, inst.Start)
		}
	}
}

func TestRebuildOnTinyViewport(t *testing.T) {
	f, _ := newTestField(t, FieldConfig{})
	f.Rebuild(1, 1, 0) // 1 column x 1 row
	// round(1*0.75) = 1 and the grid has exactly one cell.
	if got := f.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}
	f.Advance(100)
	if got := f.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d after advance, want 1", got)
	}
}

func TestDrawUsesThemeColor(t *testing.T) {
	surface := &recordingSurface{}
	f := NewField(surface, Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, "abc", FieldConfig{Rand: testRand()})
	f.Rebuild(170, 350, 0)

	for _, d := range surface.draws {
		if d.style.Fill.R != 0.25 || d.style.Fill.G != 0.5 || d.style.Fill.B != 0.75 {
			t.Fatalf("fill channels = (%v, %v, %v), want theme (0.25, 0.5, 0.75)",
				d.style.Fill.R, d.style.Fill.G, d.style.Fill.B)
		}
		if d.style.Blur != defaultGlowBlur {
			t.Fatalf("blur = %v, want %v", d.style.Blur, defaultGlowBlur)
		}
	}
}

func BenchmarkFieldAdvance(b *testing.B) {
	surface := &recordingSurface{}
	f := NewField(surface, Color{R: 1, G: 1, B: 1, A: 1}, "letterfall", FieldConfig{Rand: testRand()})
	f.Rebuild(1920, 1080, 0)

	now := 0.0
	b.ReportAllocs()
	for b.Loop() {
		now += 1.0 / 60.0
		surface.draws = surface.draws[:0]
		f.Advance(now)
	}
}
