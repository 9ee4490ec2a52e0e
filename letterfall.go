package letterfall

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Grid pitch in pixels. One cell per step, anchored at the cell's top-left.
const (
	CellWidth  = 17
	CellHeight = 35
)

// activeRowsFactor sizes the animated population relative to the number of
// grid rows (not total cells).
const activeRowsFactor = 0.75

// defaultSourceText is the character source used when the derived title text
// is empty.
const defaultSourceText = "letterfall"

// defaultPrimaryColor is the fallback theme color (mint on dark) used when
// the host's channel triple is missing or malformed.
var defaultPrimaryColor = Color{R: 100.0 / 255.0, G: 1, B: 218.0 / 255.0, A: 1}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// WithAlpha returns the color with its alpha channel replaced. The value is
// stored as given; surfaces clamp out-of-range alpha at draw time.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts the color to 8-bit premultiplied RGBA.
func (c Color) toRGBA() color.RGBA {
	a := c.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(c.R * a * 255),
		G: uint8(c.G * a * 255),
		B: uint8(c.B * a * 255),
		A: uint8(a * 255),
	}
}

// Range is a min/max interval. Used for fade durations, drawn uniformly.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// DeriveText converts a page title into the character source for the grid:
// lower-cased, truncated at the first " | " separator. An empty result falls
// back to a fixed default so the grid always has characters to cycle.
func DeriveText(title string) string {
	t := strings.ToLower(title)
	if i := strings.Index(t, " | "); i >= 0 {
		t = t[:i]
	}
	if t == "" {
		return defaultSourceText
	}
	return t
}

// ParseChannelTriple parses a theme color expressed as three comma-separated
// numeric channels in [0, 255] (e.g. "100, 255, 218") into a Color with full
// alpha.
func ParseChannelTriple(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("letterfall: color triple %q: want 3 channels, got %d", s, len(parts))
	}
	var ch [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("letterfall: color triple %q: %w", s, err)
		}
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("letterfall: color triple %q: channel %v out of range", s, v)
		}
		ch[i] = v / 255.0
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: 1}, nil
}
