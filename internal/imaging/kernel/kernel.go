// Package kernel implements the separable 5x5 Gaussian blur, 2x
// decimation / nearest-neighbour upsample, and pixelwise add/subtract
// used to build and reconstruct the Laplacian pyramid (spec §4.1, §4.2).
package kernel

import (
	"github.com/itohio/panostitch/internal/imaging/image"
)

// ops bundles the arithmetic a pixel type needs to be convolved: addition,
// subtraction, and scalar multiplication. Pixel types (ColorF, float32
// weights) don't share a common arithmetic interface in Go, so operations
// here take the arithmetic as explicit function values, mirroring how the
// teacher's x/math/vec package threads float32 math through generic
// helpers without requiring an operator-overload interface.
type ops[T any] struct {
	add   func(a, b T) T
	sub   func(a, b T) T
	scale func(a T, s float32) T
}

// weights5x5 holds the unnormalized binomial Gaussian taps (1,4,6,4,1);
// each convolution divides by the sum of the taps it used (16).
var weights5x5 = [5]float32{1, 4, 6, 4, 1}

func mirrorIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// convolveRow1D applies the 5-tap kernel horizontally to one row of src,
// writing into dst. wrap selects horizontal wrap-around vs mirror-at-edge
// boundary handling (spec §4.1).
func convolveRow1D[T any](o ops[T], dst, src []T, wrap bool) {
	n := len(src)
	for j := 0; j < n; j++ {
		var sum T
		var sumw float32
		first := true
		for k := 0; k < 5; k++ {
			col := j + k - 2
			if wrap {
				col = wrapIndex(col, n)
			} else {
				col = mirrorIndex(col, n)
			}
			w := weights5x5[k]
			term := o.scale(src[col], w)
			if first {
				sum = term
				first = false
			} else {
				sum = o.add(sum, term)
			}
			sumw += w
		}
		dst[j] = o.scale(sum, 1/sumw)
	}
}

// convolve5x5 runs the separable Gaussian: a horizontal pass (wrap or
// mirror per wrapHorizontal) followed by a vertical pass (always mirror —
// vertical wrap is never meaningful for a panorama, spec §4.1).
func convolve5x5[T any](o ops[T], input image.Image[T], wrapHorizontal bool) image.Image[T] {
	w, h := input.Size()
	rowBlurred := image.New[T](w, h)
	forEachRowRange(h, func(start, end int) {
		for r := start; r < end; r++ {
			convolveRow1D(o, rowBlurred.Row(r), input.Row(r), wrapHorizontal)
		}
	})

	out := image.New[T](w, h)
	forEachRowRange(h, func(start, end int) {
		for r := start; r < end; r++ {
			for c := 0; c < w; c++ {
				var sum T
				var sumw float32
				for k := 0; k < 5; k++ {
					rr := mirrorIndex(r+k-2, h)
					w := weights5x5[k]
					term := o.scale(rowBlurred.At(rr, c), w)
					if k == 0 {
						sum = term
					} else {
						sum = o.add(sum, term)
					}
					sumw += w
				}
				out.Set(r, c, o.scale(sum, 1/sumw))
			}
		}
	})
	return out
}

// downsample2x keeps the top-left pixel of each 2x2 block: output(i,j) =
// input(2i,2j). Callers Gaussian-blur first; no pre-filter here (spec
// §4.2).
func downsample2x[T any](input image.Image[T]) image.Image[T] {
	w, h := input.Size()
	out := image.New[T](w/2, h/2)
	forEachRowRange(out.Height(), func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < out.Width(); j++ {
				out.Set(i, j, input.At(2*i, 2*j))
			}
		}
	})
	return out
}

// upsample2x writes input(i,j) into output(2i+1,2j+1) and zero into the
// other three cells of each 2x2 block (spec §4.2). A subsequent
// convolve5x5 + *4 restores energy; implementers MUST keep this exact
// placement, or the *4 factor stops being correct.
func upsample2x[T any](input image.Image[T]) image.Image[T] {
	w, h := input.Size()
	return upsample2xTo(input, w*2, h*2)
}

// upsample2xTo is upsample2x but sized to an explicit destination extent
// rather than exactly 2x the source. The pyramid's levels don't always
// halve evenly (an odd destination-level dimension floors when building
// the next-coarser level), so expanding a level back up must target the
// destination level's own size, not 2x the coarser level's size, or the
// two would differ by one pixel on that axis. Source pixels that would
// land outside destW/destH are dropped, matching the original's
// destination-sized expand buffer.
func upsample2xTo[T any](input image.Image[T], destW, destH int) image.Image[T] {
	w, h := input.Size()
	out := image.New[T](destW, destH)
	forEachRowRange(h, func(start, end int) {
		for i := start; i < end; i++ {
			di := 2*i + 1
			if di >= destH {
				continue
			}
			for j := 0; j < w; j++ {
				dj := 2*j + 1
				if dj >= destW {
					continue
				}
				out.Set(di, dj, input.At(i, j))
			}
		}
	})
	return out
}

func add[T any](o ops[T], a, b image.Image[T]) image.Image[T] {
	w, h := a.Size()
	out := image.New[T](w, h)
	forEachRowRange(h, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < w; j++ {
				out.Set(i, j, o.add(a.At(i, j), b.At(i, j)))
			}
		}
	})
	return out
}

func sub[T any](o ops[T], a, b image.Image[T]) image.Image[T] {
	w, h := a.Size()
	out := image.New[T](w, h)
	forEachRowRange(h, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < w; j++ {
				out.Set(i, j, o.sub(a.At(i, j), b.At(i, j)))
			}
		}
	})
	return out
}

func scaleImg[T any](o ops[T], a image.Image[T], s float32) image.Image[T] {
	w, h := a.Size()
	out := image.New[T](w, h)
	forEachRowRange(h, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < w; j++ {
				out.Set(i, j, o.scale(a.At(i, j), s))
			}
		}
	})
	return out
}
