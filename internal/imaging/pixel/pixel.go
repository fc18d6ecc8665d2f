// Package pixel defines the scalar and small-vector pixel types the
// imaging and panorama packages operate on.
package pixel

import "github.com/chewxy/math32"

// ColorF is a linear RGB triple of 32-bit floats.
type ColorF struct {
	R, G, B float32
}

// Add returns the componentwise sum.
func (c ColorF) Add(o ColorF) ColorF {
	return ColorF{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Sub returns the componentwise difference.
func (c ColorF) Sub(o ColorF) ColorF {
	return ColorF{c.R - o.R, c.G - o.G, c.B - o.B}
}

// Scale returns the componentwise product with a scalar.
func (c ColorF) Scale(s float32) ColorF {
	return ColorF{c.R * s, c.G * s, c.B * s}
}

// Div returns the componentwise quotient by a scalar. Division by zero is
// the caller's responsibility to avoid; callers in this module always
// guard with an epsilon first.
func (c ColorF) Div(s float32) ColorF {
	return ColorF{c.R / s, c.G / s, c.B / s}
}

// MaxZero clamps every channel to be non-negative.
func (c ColorF) MaxZero() ColorF {
	return ColorF{math32.Max(c.R, 0), math32.Max(c.G, 0), math32.Max(c.B, 0)}
}

// Log returns the natural log of each channel, clamped from below at eps
// before taking the log (spec's HDR log-space encoding).
func (c ColorF) Log(eps float32) ColorF {
	return ColorF{
		math32.Log(math32.Max(eps, c.R)),
		math32.Log(math32.Max(eps, c.G)),
		math32.Log(math32.Max(eps, c.B)),
	}
}

// Exp returns e^channel for each channel (inverse of Log).
func (c ColorF) Exp() ColorF {
	return ColorF{math32.Exp(c.R), math32.Exp(c.G), math32.Exp(c.B)}
}

// ColorA is ColorF with an alpha channel.
type ColorA struct {
	R, G, B, A float32
}

// RGB returns the color without alpha.
func (c ColorA) RGB() ColorF { return ColorF{c.R, c.G, c.B} }

// MaskPx is an unsigned byte; nonzero means valid.
type MaskPx uint8

// Valid reports whether the mask pixel marks a valid sample.
func (m MaskPx) Valid() bool { return m != 0 }

// WeightPx is a nonnegative float weight.
type WeightPx = float32

// LabelPx is an unsigned view-id, with NoOwner as the reserved sentinel
// meaning "no view has claimed this pixel".
type LabelPx uint32

// NoOwner is the reserved sentinel LabelPx value meaning "no owner".
const NoOwner LabelPx = ^LabelPx(0)
