// Package seam computes the panorama-wide seam-label map: for every
// panorama pixel, which view's contribution has the highest weight (spec
// §4.5). Despite the name inherited from the original implementation this
// is an argmax over weights, not a distance transform — see spec §9.
package seam

import (
	"errors"
	"fmt"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// ErrSizeMismatch is returned by Append when mask and weight sizes
// disagree.
var ErrSizeMismatch = errors.New("seam: mask and weight sizes disagree")

// Accumulator is DistanceSeams: a running argmax of per-view weights over
// the whole panorama, with the winning view id recorded per pixel.
type Accumulator struct {
	weights image.Image[float32]
	labels  image.Image[pixel.LabelPx]
}

// New allocates an accumulator for a panorama of the given size. Every
// pixel starts unowned (pixel.NoOwner) with weight 0.
func New(panoWidth, panoHeight int) *Accumulator {
	return &Accumulator{
		weights: image.New[float32](panoWidth, panoHeight),
		labels:  image.Fill[pixel.LabelPx](panoWidth, panoHeight, pixel.NoOwner),
	}
}

// Append folds one view's contribution into the running argmax. For
// every valid pixel whose mapped panorama coordinate has a strictly
// greater weight than what's recorded there, the label is updated to
// viewID (spec §4.5: strict inequality, first writer wins on ties).
// Rows that map past the panorama height are silently dropped (no
// vertical wrap); columns wrap horizontally modulo panorama width.
func (a *Accumulator) Append(mask image.Image[pixel.MaskPx], weight image.Image[float32], viewID pixel.LabelPx, offsetX, offsetY int) error {
	mw, mh := mask.Size()
	ww, wh := weight.Size()
	if mw != ww || mh != wh {
		return fmt.Errorf("%w: mask %dx%d vs weight %dx%d", ErrSizeMismatch, mw, mh, ww, wh)
	}

	panoW, panoH := a.weights.Size()
	for i := 0; i < mh; i++ {
		di := i + offsetY
		if di < 0 || di >= panoH {
			continue
		}
		for j := 0; j < mw; j++ {
			if !mask.At(i, j).Valid() {
				continue
			}
			dj := j + offsetX
			if dj >= panoW {
				dj -= panoW
			}
			w := weight.At(i, j)
			if w > a.weights.At(di, dj) {
				a.weights.Set(di, dj, w)
				a.labels.Set(di, dj, viewID)
			}
		}
	}
	return nil
}

// Labels returns the final panorama-sized label map.
func (a *Accumulator) Labels() image.Image[pixel.LabelPx] {
	return a.labels
}

// MaskFromLabels derives a binary hard-seam weight map for one view: 1.0
// at every panorama pixel the label map assigns to viewID, 0.0
// elsewhere, sampled at the view's own (width, height) placement at
// (offsetX, offsetY) with horizontal wrap. This is the "binary seam
// weight" spec §4.5 describes and replaces the soft weight map fed to
// the multi-band compositor.
func MaskFromLabels(labels image.Image[pixel.LabelPx], viewID pixel.LabelPx, width, height, offsetX, offsetY int) image.Image[float32] {
	panoW, panoH := labels.Size()
	out := image.New[float32](width, height)
	for i := 0; i < height; i++ {
		di := i + offsetY
		if di < 0 || di >= panoH {
			continue
		}
		for j := 0; j < width; j++ {
			dj := j + offsetX
			if dj >= panoW {
				dj -= panoW
			}
			if labels.At(di, dj) == viewID {
				out.Set(i, j, 1.0)
			}
		}
	}
	return out
}
