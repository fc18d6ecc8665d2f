// Package overlay draws an optional border or seam-label polyline onto a
// finished panorama (spec §4.8). Both modes check the same six of each
// pixel's eight neighbors the original implementation checked — the four
// diagonals plus left/right, never straight up/down — preserved exactly
// rather than "corrected" to a full 8-neighborhood.
package overlay

import (
	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// Kind selects which overlay the driver draws after rebuild, matching
// the CLI's --overlayType surface (spec §6).
type Kind int

const (
	None Kind = iota
	Borders
	Seams
)

var red = pixel.ColorA{R: 1, G: 0, B: 0, A: 1}

func wrapColumn(col, panoWidth int) int {
	if col >= panoWidth {
		return col - panoWidth
	}
	return col
}

// DrawBorders marks every panorama pixel that is valid in mask and either
// lies on the mask's rectangular edge or has at least one invalid
// neighbor inside the mask, opaque red (spec §4.8 borders mode). Only the
// six neighbors named in the package doc are checked; the pixels straight
// above and below are not.
// Horizontal wrap applies to the placement.
func DrawBorders(panorama image.Image[pixel.ColorA], mask image.Image[pixel.MaskPx], offsetX, offsetY int) {
	panoW, panoH := panorama.Size()
	w, h := mask.Size()

	mark := func(i, j int) {
		di := i + offsetY
		if di < 0 || di >= panoH {
			return
		}
		if !mask.At(i, j).Valid() {
			return
		}
		dj := wrapColumn(j+offsetX, panoW)
		panorama.Set(di, dj, red)
	}

	for i := 0; i < h; i++ {
		mark(i, 0)
		mark(i, w-1)
	}
	for j := 0; j < w; j++ {
		mark(0, j)
		mark(h-1, j)
	}

	for i := 1; i < h-1; i++ {
		for j := 1; j < w-1; j++ {
			if !mask.At(i, j).Valid() {
				continue
			}
			allValid := mask.At(i-1, j-1).Valid() &&
				mask.At(i-1, j+1).Valid() &&
				mask.At(i, j-1).Valid() &&
				mask.At(i, j+1).Valid() &&
				mask.At(i+1, j-1).Valid() &&
				mask.At(i+1, j+1).Valid()
			if allValid {
				continue
			}
			mark(i, j)
		}
	}
}

// DrawSeams marks every label-image pixel opaque red if any of its six
// diagonal/axial neighbors (spec §4.8 seams mode: up/down are excluded)
// carries a different view label.
func DrawSeams(panorama image.Image[pixel.ColorA], labels image.Image[pixel.LabelPx]) {
	w, h := labels.Size()
	for i := 1; i < h-1; i++ {
		for j := 1; j < w-1; j++ {
			label := labels.At(i, j)
			same := labels.At(i-1, j-1) == label &&
				labels.At(i-1, j+1) == label &&
				labels.At(i, j-1) == label &&
				labels.At(i, j+1) == label &&
				labels.At(i+1, j-1) == label &&
				labels.At(i+1, j+1) == label
			if same {
				continue
			}
			panorama.Set(i, j, red)
		}
	}
}
