package kernel

import (
	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

var colorOps = ops[pixel.ColorF]{
	add:   func(a, b pixel.ColorF) pixel.ColorF { return a.Add(b) },
	sub:   func(a, b pixel.ColorF) pixel.ColorF { return a.Sub(b) },
	scale: func(a pixel.ColorF, s float32) pixel.ColorF { return a.Scale(s) },
}

var weightOps = ops[float32]{
	add:   func(a, b float32) float32 { return a + b },
	sub:   func(a, b float32) float32 { return a - b },
	scale: func(a float32, s float32) float32 { return a * s },
}

// ConvolveColor applies the separable 5x5 Gaussian blur to a color image
// (spec §4.1). wrapHorizontal selects horizontal wrap vs mirror boundary
// handling.
func ConvolveColor(input image.Image[pixel.ColorF], wrapHorizontal bool) image.Image[pixel.ColorF] {
	return convolve5x5(colorOps, input, wrapHorizontal)
}

// ConvolveWeight applies the separable 5x5 Gaussian blur to a weight
// image.
func ConvolveWeight(input image.Image[float32], wrapHorizontal bool) image.Image[float32] {
	return convolve5x5(weightOps, input, wrapHorizontal)
}

// DownsampleColor halves both dimensions, keeping every second pixel
// (spec §4.2). Caller must Gaussian-blur first.
func DownsampleColor(input image.Image[pixel.ColorF]) image.Image[pixel.ColorF] {
	return downsample2x(input)
}

// DownsampleWeight is DownsampleColor for weight images.
func DownsampleWeight(input image.Image[float32]) image.Image[float32] {
	return downsample2x(input)
}

// UpsampleColor doubles both dimensions, placing each source pixel at the
// bottom-right of its 2x2 output block and zeroing the other three (spec
// §4.2).
func UpsampleColor(input image.Image[pixel.ColorF]) image.Image[pixel.ColorF] {
	return upsample2x(input)
}

// UpsampleWeight is UpsampleColor for weight images.
func UpsampleWeight(input image.Image[float32]) image.Image[float32] {
	return upsample2x(input)
}

// UpsampleColorTo is UpsampleColor but sized to an explicit destination
// extent instead of exactly 2x the source. Use this whenever the expand
// result is about to be combined with a level whose size wasn't produced
// by evenly halving it. The pyramid's Rebuild and its shared
// decompose-and-merge loop (used by both Apply and Augment) call this.
func UpsampleColorTo(input image.Image[pixel.ColorF], destWidth, destHeight int) image.Image[pixel.ColorF] {
	return upsample2xTo(input, destWidth, destHeight)
}

// AddColor returns a+b pixelwise.
func AddColor(a, b image.Image[pixel.ColorF]) image.Image[pixel.ColorF] { return add(colorOps, a, b) }

// SubColor returns a-b pixelwise.
func SubColor(a, b image.Image[pixel.ColorF]) image.Image[pixel.ColorF] { return sub(colorOps, a, b) }

// ScaleColor returns a*s pixelwise.
func ScaleColor(a image.Image[pixel.ColorF], s float32) image.Image[pixel.ColorF] {
	return scaleImg(colorOps, a, s)
}
