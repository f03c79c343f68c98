package blend

import (
	"image/color"
)

// weighted implements utility::color::blend(a,b,h): a Porter-Duff "a over
// b" composite in which b's channels are first scaled by h/128. a and b
// both contribute through their own alpha, unlike the W3C modes above
// which always treat the second argument as fully replacing the first
// where opaque. h is the pre-W3C "legacy" blend's bias, in [0,255] with
// 128 meaning b is used unscaled.
func weighted(a, b color.RGBA, h int) color.RGBA {
	if b.A == 0 {
		return a
	}
	if a.A == 0 {
		return b
	}
	const inv255 = 1.0 / 255.0
	aa := float64(a.A) * inv255
	ab := float64(b.A) * inv255
	pa := ab * (1 - aa)
	alpha := aa + pa

	var c color.RGBA
	if alpha > 0 {
		ph := float64(h) / 128.0
		c.R = byte((float64(a.R)*aa + float64(b.R)*ph*pa) / alpha)
		c.G = byte((float64(a.G)*aa + float64(b.G)*ph*pa) / alpha)
		c.B = byte((float64(a.B)*aa + float64(b.B)*ph*pa) / alpha)
		c.A = byte(alpha * 255)
	}
	if b.A == 255 {
		c.A = 255
	}
	return c
}

// Legacy is the pre-W3C default compositing mode (blockpass.hpp's
// Blend::LEGACY): it runs the ray walk's accumulated nearer color through
// weighted against the freshly sampled backdrop, at a fixed h of 128 (no
// scaling), with the two swapped relative to weighted's own a/b order.
func Legacy(backdrop, source color.RGBA) color.RGBA {
	return weighted(source, backdrop, 128)
}

// Tint applies weighted directly, a over b at bias h, for callers (the
// Heightmap and Heightline passes) that need the pre-swap, variable-h form
// rather than the fixed Blend.Mode shape of Legacy.
func Tint(a, b color.RGBA, h byte) color.RGBA {
	return weighted(a, b, int(h))
}

// Interpolate linearly blends a towards b by fraction n in [0,1], keeping
// a's alpha.
func Interpolate(a, b color.RGBA, n float64) color.RGBA {
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	return color.RGBA{
		R: byte((1-n)*float64(a.R) + n*float64(b.R)),
		G: byte((1-n)*float64(a.G) + n*float64(b.G)),
		B: byte((1-n)*float64(a.B) + n*float64(b.B)),
		A: a.A,
	}
}
