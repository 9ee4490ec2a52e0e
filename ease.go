package letterfall

import "math"

// Ease maps a point in time to the opacity of a letter fading over the
// interval [start, end]. It is pure and stateless.
//
// Before start the letter is invisible. Inside the interval the opacity rises
// on a cosine curve from 0 at start to 1 at end. Past end the curve switches
// to a half-sine wind-down over half the interval's duration:
//
//	sin(((now-end) / ((end-start)/2)) * pi)
//
// The wind-down branch is deliberately unclamped and oscillates for large
// overruns; callers treat values outside (0, 1] as effectively invisible.
func Ease(now, start, end float64) float64 {
	if now < start {
		return 0
	}
	if now > end {
		progressAfterEnd := (now - end) / ((end - start) / 2)
		return math.Sin(progressAfterEnd * math.Pi)
	}
	progress := (now - start) / (end - start)
	return math.Max(0, 0.5-0.5*math.Cos(progress*math.Pi))
}
