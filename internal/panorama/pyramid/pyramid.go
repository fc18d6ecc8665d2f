// Package pyramid implements the Laplacian pyramid accumulator at the
// heart of the multi-band compositor (spec §4.6): a bank of K color
// levels and K matching weight levels that accepts weighted contributions
// via Apply, can grow mid-run via Augment, and produces the final
// panorama via Rebuild.
package pyramid

import (
	"github.com/itohio/panostitch/internal/imaging/feather"
	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/kernel"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// epsilon is the minimum total weight below which a pixel is considered
// unclaimed (spec §7).
const epsilon = 1e-6

type level struct {
	color  image.Image[pixel.ColorF]
	weight image.Image[float32]
}

// Accumulator is the Laplacian pyramid panorama. Level 0 has the
// panorama's own dimensions; level l>0 is floor(prev/2) in each
// dimension.
type Accumulator struct {
	levels []level
}

// New allocates a K-level accumulator sized for a (baseWidth x
// baseHeight) panorama.
func New(baseWidth, baseHeight, bands int) *Accumulator {
	if bands <= 0 {
		panic("pyramid: bands must be positive")
	}
	a := &Accumulator{levels: make([]level, bands)}
	w, h := baseWidth, baseHeight
	for l := 0; l < bands; l++ {
		a.levels[l] = level{
			color:  image.New[pixel.ColorF](w, h),
			weight: image.New[float32](w, h),
		}
		w, h = w/2, h/2
	}
	return a
}

// Bands returns the current number of pyramid levels (K).
func (a *Accumulator) Bands() int { return len(a.levels) }

// Apply decomposes source into band-pass layers and accumulates its
// weighted contribution into every level at the given placement (spec
// §4.6). source and weight must already be padded (internal/imaging/pad)
// for the accumulator's current band count.
func (a *Accumulator) Apply(source image.Image[pixel.ColorF], weight image.Image[float32], offsetX, offsetY int) {
	a.decomposeAndMerge(source, weight, offsetX, offsetY, 0)
}

// decomposeAndMerge runs the §4.6 apply loop starting at pyramid level
// startLevel (0 for Apply, K-1's predecessor chain for Augment).
func (a *Accumulator) decomposeAndMerge(source image.Image[pixel.ColorF], weight image.Image[float32], offsetX, offsetY, startLevel int) {
	current := source
	currentW := weight
	ox, oy := offsetX, offsetY

	for l := startLevel; l < len(a.levels)-1; l++ {
		curW, curH := current.Size()

		blurredColor := kernel.ConvolveColor(current, false)
		nextColor := kernel.DownsampleColor(blurredColor)

		blurredWeight := kernel.ConvolveWeight(currentW, false)
		nextWeight := kernel.DownsampleWeight(blurredWeight)

		// Upsample back to current's own size rather than exactly 2x
		// nextColor's size: they only coincide when curW/curH are even.
		up := kernel.UpsampleColorTo(nextColor, curW, curH)
		band := kernel.ScaleColor(kernel.ConvolveColor(up, false), 4.0)

		bandPass := kernel.SubColor(current, band)

		a.merge(bandPass, currentW, l, ox, oy)

		current = nextColor
		currentW = nextWeight
		ox, oy = ox/2, oy/2
	}

	a.merge(current, currentW, len(a.levels)-1, ox, oy)
}

// merge accumulates oimg*oweight and oweight into level l at the given
// placement (spec §4.6 merge): horizontal wrap, no vertical wrap.
func (a *Accumulator) merge(oimg image.Image[pixel.ColorF], oweight image.Image[float32], l, offsetX, offsetY int) {
	lvl := a.levels[l]
	levelW, levelH := lvl.color.Size()
	srcW, srcH := oimg.Size()

	for i := 0; i < srcH; i++ {
		di := i + offsetY
		if di >= levelH {
			continue
		}
		for j := 0; j < srcW; j++ {
			dj := j + offsetX
			if dj >= levelW {
				dj -= levelW
			}
			c := oimg.At(i, j)
			w := oweight.At(i, j)
			lvl.color.Set(di, dj, lvl.color.At(di, dj).Add(c.Scale(w)))
			lvl.weight.Set(di, dj, lvl.weight.At(di, dj)+w)
		}
	}
}

// Augment grows the pyramid from its current band count to newBands,
// preserving the accumulated panorama content (spec §4.6 augment): the
// existing coarsest level is normalized, feathered, and re-decomposed
// into the newly added levels.
func (a *Accumulator) Augment(newBands int) {
	if newBands <= len(a.levels) {
		return
	}

	top := len(a.levels) - 1
	topLvl := a.levels[top]
	w, h := topLvl.color.Size()
	origWeight := topLvl.weight.Clone()

	normalized := image.New[pixel.ColorF](w, h)
	mask := image.New[pixel.MaskPx](w, h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			wv := origWeight.At(i, j)
			if wv < epsilon {
				continue
			}
			normalized.Set(i, j, topLvl.color.At(i, j).Div(wv))
			mask.Set(i, j, 1)
		}
	}

	// Zero the coarsest level's accumulators; they're rewritten below as
	// part of the new decomposition chain.
	a.levels[top] = level{
		color:  image.New[pixel.ColorF](w, h),
		weight: image.New[float32](w, h),
	}

	feathered := feather.Feather(normalized, mask)

	for l := len(a.levels); l < newBands; l++ {
		pw, ph := a.levels[l-1].color.Size()
		a.levels = append(a.levels, level{
			color:  image.New[pixel.ColorF](pw/2, ph/2),
			weight: image.New[float32](pw/2, ph/2),
		})
	}

	// Re-decompose using the original accumulated weight magnitude (not
	// a uniform 1.0), so merging back in restores the same total weight
	// the coarsest level held before augmenting.
	a.decomposeAndMerge(feathered, origWeight, 0, 0, top)
}

// Rebuild normalizes every level, reconstructs band-pass layers bottom-up
// with horizontal-wrap convolution, and emits the final RGBA panorama
// (spec §4.6 rebuild). Pixels whose level-0 accumulated weight is below
// epsilon are transparent with finite-but-undefined RGB.
func (a *Accumulator) Rebuild() image.Image[pixel.ColorA] {
	for l := range a.levels {
		lvl := a.levels[l]
		w, h := lvl.color.Size()
		for i := 0; i < h; i++ {
			for j := 0; j < w; j++ {
				wv := lvl.weight.At(i, j)
				if wv < epsilon {
					lvl.color.Set(i, j, pixel.ColorF{})
					continue
				}
				lvl.color.Set(i, j, lvl.color.At(i, j).Div(wv))
			}
		}
	}

	top := len(a.levels) - 1
	a.clampNonNegative(a.levels[top].color)

	for l := top - 1; l >= 0; l-- {
		destW, destH := a.levels[l].color.Size()
		up := kernel.UpsampleColorTo(a.levels[l+1].color, destW, destH)
		blurred := kernel.ConvolveColor(up, true) // horizontal wrap: spec §4.6
		band := kernel.ScaleColor(blurred, 4.0)
		a.levels[l].color = kernel.AddColor(a.levels[l].color, band)
		a.clampNonNegative(a.levels[l].color)
	}

	base := a.levels[0]
	w, h := base.color.Size()
	out := image.New[pixel.ColorA](w, h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			c := base.color.At(i, j)
			alpha := float32(0)
			if base.weight.At(i, j) > epsilon {
				alpha = 1
			}
			out.Set(i, j, pixel.ColorA{R: c.R, G: c.G, B: c.B, A: alpha})
		}
	}
	return out
}

// clampNonNegative implements the §9 open-question correction for
// removeNegativeValues: a direct componentwise max(pix, 0), replacing the
// original's dead exp(pix)<0 guard.
func (a *Accumulator) clampNonNegative(img image.Image[pixel.ColorF]) {
	w, h := img.Size()
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			img.Set(i, j, img.At(i, j).MaxZero())
		}
	}
}
