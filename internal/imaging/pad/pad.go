// Package pad computes the padded canvas and corrected offset a view
// needs before it can be merged into a K-band Laplacian pyramid (spec
// §4.4): the placement and size must round cleanly down to the coarsest
// level, with slack left over for convolution at every level.
package pad

import (
	"math"

	"github.com/itohio/panostitch/internal/imaging/image"
)

// Pad returns a padded copy of input and the corrected (ox, oy) such that
// both divide evenly by 2^(bands-1). The right and bottom edges get at
// least 3 pixels of slack. The corrected offset is never negative, so the
// left/top slack is at least 3 pixels only where the offset leaves room
// for it; an offset of 0 gets no left/top slack. The original content is copied into the interior at
// (ox-correctedOx, oy-correctedOy); the rest of the canvas is
// zero-valued.
func Pad[T any](input image.Image[T], ox, oy, bands int) (padded image.Image[T], correctedOx, correctedOy int) {
	if bands <= 0 {
		panic("pad: bands must be positive")
	}
	w, h := input.Size()
	scale := 1.0 / math.Pow(2.0, float64(bands-1))

	correctedOx = correctedOffset(ox, scale)
	correctedOy = correctedOffset(oy, scale)

	dOx := ox - correctedOx
	dOy := oy - correctedOy

	paddedW := correctedSize(w, dOx, scale)
	paddedH := correctedSize(h, dOy, scale)

	padded = image.New[T](paddedW, paddedH)
	padded.Block(dOy, dOx, input)
	return padded, correctedOx, correctedOy
}

func correctedOffset(offset int, scale float64) int {
	low := math.Floor(float64(offset)*scale) - 3
	if low < 0 {
		low = 0
	}
	return int(low / scale)
}

func correctedSize(size, delta int, scale float64) int {
	large := float64(size + delta)
	low := math.Ceil(large*scale) + 3
	return int(low / scale)
}
