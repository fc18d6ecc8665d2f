// Package compositor implements the three compositor kinds the driver
// dispatches between — replace, alpha, and multiband — behind one
// interface (spec §9's "dynamic dispatch -> tagged variants" note).
package compositor

import (
	"errors"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// ErrDegenerateScale is returned by the multiband compositor's Append
// when a view's optimal scale is smaller than the pyramid's current band
// count. The driver sorts views by ascending optimal scale specifically
// so this never happens in normal operation (spec §5, §7); seeing it
// means the sort order was violated upstream.
var ErrDegenerateScale = errors.New("compositor: view requires a smaller pyramid than already built")

// Kind selects which compositor implementation the driver builds.
type Kind int

const (
	// Replace overwrites each panorama pixel with the last (in view
	// order) valid contribution; no blending.
	Replace Kind = iota
	// Alpha is a weighted-average compositor: every contribution is
	// blended by its own weight, normalized at Terminate.
	Alpha
	// Multiband is the Laplacian-pyramid compositor (spec §4.6/§4.7).
	Multiband
)

// Compositor accepts per-view contributions and produces the final
// panorama. Append/Terminate/Panorama is the "append / terminate /
// get_panorama" triple spec §9 describes.
type Compositor interface {
	// Append folds one view's color/mask/weight contribution into the
	// panorama at the given placement.
	Append(color image.Image[pixel.ColorF], mask image.Image[pixel.MaskPx], weight image.Image[float32], offsetX, offsetY int) error
	// Terminate finalizes the panorama (normalization, reconstruction).
	// It must be called exactly once, after the last Append.
	Terminate() error
	// Panorama returns the finished RGBA output. Only valid after
	// Terminate.
	Panorama() image.Image[pixel.ColorA]
}

// New builds a Compositor of the given kind for a panorama of the given
// size. bands seeds the multiband compositor's initial band count (spec
// §3 "Band count K"); it's ignored by the other kinds.
func New(kind Kind, panoWidth, panoHeight, bands int) Compositor {
	switch kind {
	case Alpha:
		return newAlpha(panoWidth, panoHeight)
	case Multiband:
		return newMultiband(panoWidth, panoHeight, bands)
	default:
		return newReplace(panoWidth, panoHeight)
	}
}

// wrapColumn applies the panorama's horizontal periodicity to a column
// index that may have overflowed past panoWidth.
func wrapColumn(col, panoWidth int) int {
	if col >= panoWidth {
		return col - panoWidth
	}
	return col
}
