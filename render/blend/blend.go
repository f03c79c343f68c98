// Package blend implements the W3C separable and non-separable blend modes
// and the Porter-Duff alpha compositing wrapper around them. Every exported
// Mode function has the signature func(backdrop, source color.RGBA)
// color.RGBA and already performs the alpha composite — callers never
// blend premultiplied channels themselves.
package blend

import (
	"image/color"
	"math"
)

// Mode blends a source color over a backdrop color, already alpha-composited
// per the Porter-Duff "over" operator with the channel-blend formula named
// by the function.
type Mode func(backdrop, source color.RGBA) color.RGBA

// separableFunc computes the blended (non-composited) channel-space color
// for one of the thirteen separable modes, operating on normalized [0,1]
// per-channel floats.
type separableFunc func(cb, cs float64) float64

func toFloat(v byte) float64 { return float64(v) / 255 }

func toInt(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return math.RoundToEven(v * 255)
}

// compose applies the Porter-Duff "source over backdrop" alpha composite to
// already-blended channel values cc, given the backdrop/source alphas and
// their pre-computed union alpha ao.
func compose(ba, sa, oa, bc, sc, cc float64) byte {
	if oa == 0 {
		return 0
	}
	term1 := (1 - sa/oa) * (bc * 255)
	term2 := (sa / oa) * math.RoundToEven((1-ba)*(sc*255)+ba*(cc*255))
	return byte(math.RoundToEven(term1 + term2))
}

// separable wraps a per-channel blend function f into a full Mode: it
// normalizes both colors, blends R/G/B independently, and composites the
// result with Porter-Duff "over".
func separable(f separableFunc) Mode {
	return func(backdrop, source color.RGBA) color.RGBA {
		ba, sa := toFloat(backdrop.A), toFloat(source.A)
		oa := sa + ba - sa*ba
		bc := [3]float64{toFloat(backdrop.R), toFloat(backdrop.G), toFloat(backdrop.B)}
		sc := [3]float64{toFloat(source.R), toFloat(source.G), toFloat(source.B)}
		var out [3]byte
		for i := range bc {
			cc := f(bc[i], sc[i])
			out[i] = compose(ba, sa, oa, bc[i], sc[i], cc)
		}
		return color.RGBA{R: out[0], G: out[1], B: out[2], A: byte(toInt(oa))}
	}
}

// nonSeparable wraps a full-color blend function f (one that needs all three
// channels at once, e.g. Hue/Saturation/Color/Luminosity) into a Mode.
func nonSeparable(f func(backdrop, source [3]float64) [3]float64) Mode {
	return func(backdrop, source color.RGBA) color.RGBA {
		ba, sa := toFloat(backdrop.A), toFloat(source.A)
		oa := sa + ba - sa*ba
		bc := [3]float64{toFloat(backdrop.R), toFloat(backdrop.G), toFloat(backdrop.B)}
		sc := [3]float64{toFloat(source.R), toFloat(source.G), toFloat(source.B)}
		cc := f(bc, sc)
		var out [3]byte
		for i := range bc {
			out[i] = compose(ba, sa, oa, bc[i], sc[i], cc[i])
		}
		return color.RGBA{R: out[0], G: out[1], B: out[2], A: byte(toInt(oa))}
	}
}

// The thirteen separable modes.
var (
	Normal     = separable(func(_, cs float64) float64 { return cs })
	Multiply   = separable(func(cb, cs float64) float64 { return cb * cs })
	Screen     = separable(func(cb, cs float64) float64 { return cb + cs - cb*cs })
	HardLight  = separable(hardLight)
	Overlay    = separable(func(cb, cs float64) float64 { return hardLight(cs, cb) })
	Darken     = separable(math.Min)
	Lighten    = separable(math.Max)
	ColorDodge = separable(colorDodge)
	ColorBurn  = separable(colorBurn)
	SoftLight  = separable(softLight)
	Difference = separable(func(cb, cs float64) float64 { return math.Abs(cb - cs) })
	Exclusion  = separable(func(cb, cs float64) float64 { return cb + cs - 2*cb*cs })
)

// The four non-separable modes.
var (
	Hue        = nonSeparable(func(b, s [3]float64) [3]float64 { return setLum(setSat(s, sat(b)), lum(b)) })
	Saturation = nonSeparable(func(b, s [3]float64) [3]float64 { return setLum(setSat(b, sat(s)), lum(b)) })
	Color      = nonSeparable(func(b, s [3]float64) [3]float64 { return setLum(s, lum(b)) })
	Luminosity = nonSeparable(func(b, s [3]float64) [3]float64 { return setLum(b, lum(s)) })
)

func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb * (2 * cs)
	}
	return cb + (2*cs-1) - cb*(2*cs-1)
}

func colorDodge(cb, cs float64) float64 {
	if cb == 0 {
		return 0
	}
	if cs == 1 {
		return 1
	}
	return math.Min(1, cb/(1-cs))
}

func colorBurn(cb, cs float64) float64 {
	if cb == 1 {
		return 1
	}
	if cs == 0 {
		return 0
	}
	return 1 - math.Min(1, (1-cb)/cs)
}

func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	return cb + (2*cs-1)*(softLightD(cb)-cb)
}

func softLightD(cb float64) float64 {
	if cb <= 0.25 {
		return ((16*cb-12)*cb + 4) * cb
	}
	return math.Sqrt(cb)
}

func lum(c [3]float64) float64 { return 0.3*c[0] + 0.59*c[1] + 0.11*c[2] }

func clipColor(c [3]float64) [3]float64 {
	l := lum(c)
	n := math.Min(c[0], math.Min(c[1], c[2]))
	x := math.Max(c[0], math.Max(c[1], c[2]))
	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c [3]float64, l float64) [3]float64 {
	d := l - lum(c)
	for i := range c {
		c[i] += d
	}
	return clipColor(c)
}

func sat(c [3]float64) float64 {
	return math.Max(c[0], math.Max(c[1], c[2])) - math.Min(c[0], math.Min(c[1], c[2]))
}

// setSat scales c's middle channel so its (max-min) spread equals s, zeroing
// the min and max channels' relative positions per the W3C algorithm, via
// an explicit index sort rather than in-place pointer juggling.
func setSat(c [3]float64, s float64) [3]float64 {
	idx := [3]int{0, 1, 2}
	if c[idx[0]] > c[idx[1]] {
		idx[0], idx[1] = idx[1], idx[0]
	}
	if c[idx[1]] > c[idx[2]] {
		idx[1], idx[2] = idx[2], idx[1]
	}
	if c[idx[0]] > c[idx[1]] {
		idx[0], idx[1] = idx[1], idx[0]
	}
	minI, midI, maxI := idx[0], idx[1], idx[2]
	var out [3]float64
	if c[maxI] > c[minI] {
		out[midI] = (c[midI] - c[minI]) * s / (c[maxI] - c[minI])
		out[maxI] = s
	}
	out[minI] = 0
	return out
}
