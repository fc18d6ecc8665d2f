// Package feather extends a color image into its masked-out region by
// pull-push through a successive-halving pyramid, so that convolution
// downstream never sees undefined pixels (spec §4.3).
package feather

import (
	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// Feather returns a color image of the same size as color where every
// pixel invalid in mask has been replaced by a color inherited from the
// nearest valid region via hierarchical inpainting. Pixels valid in mask
// are returned unchanged.
func Feather(color image.Image[pixel.ColorF], mask image.Image[pixel.MaskPx]) image.Image[pixel.ColorF] {
	colors := []image.Image[pixel.ColorF]{color}
	masks := []image.Image[pixel.MaskPx]{mask}

	w, h := color.Size()
	for w >= 2 && h >= 2 {
		halfW, halfH := w/2, h/2
		if halfW < 1 || halfH < 1 {
			break
		}
		half := image.New[pixel.ColorF](halfW, halfH)
		halfMask := image.New[pixel.MaskPx](halfW, halfH)

		src := colors[len(colors)-1]
		srcMask := masks[len(masks)-1]
		for i := 0; i < halfH; i++ {
			di := i * 2
			for j := 0; j < halfW; j++ {
				dj := j * 2
				var sum pixel.ColorF
				count := 0
				for _, off := range [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
					r, c := di+off[0], dj+off[1]
					if srcMask.At(r, c).Valid() {
						sum = sum.Add(src.At(r, c))
						count++
					}
				}
				if count > 0 {
					half.Set(i, j, sum.Scale(1/float32(count)))
					halfMask.Set(i, j, 1)
				}
			}
		}

		colors = append(colors, half)
		masks = append(masks, halfMask)

		if halfW < 2 || halfH < 2 {
			break
		}
		w, h = halfW, halfH
	}

	for lvl := len(colors) - 2; lvl >= 0; lvl-- {
		src := colors[lvl]
		srcMask := masks[lvl]
		ref := colors[lvl+1]
		refMask := masks[lvl+1]
		refW, refH := ref.Size()

		sh, sw := src.Height(), src.Width()
		for i := 0; i < sh; i++ {
			for j := 0; j < sw; j++ {
				if srcMask.At(i, j).Valid() {
					continue
				}
				mi, mj := i/2, j/2
				if mi >= refH {
					mi = refH - 1
				}
				if mj >= refW {
					mj = refW - 1
				}
				srcMask.Set(i, j, refMask.At(mi, mj))
				src.Set(i, j, ref.At(mi, mj))
			}
		}
	}

	return colors[0]
}
