package compositor

import (
	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

const alphaEpsilon = 1e-6

// alphaCompositor is the weighted-average sibling: every valid pixel's
// color is accumulated scaled by its weight, and the panorama's alpha
// channel doubles as the running weight sum until Terminate normalizes
// it.
type alphaCompositor struct {
	panorama image.Image[pixel.ColorA]
}

func newAlpha(width, height int) *alphaCompositor {
	return &alphaCompositor{panorama: image.New[pixel.ColorA](width, height)}
}

func (c *alphaCompositor) Append(color image.Image[pixel.ColorF], mask image.Image[pixel.MaskPx], weight image.Image[float32], offsetX, offsetY int) error {
	panoW, panoH := c.panorama.Size()
	w, h := color.Size()
	for i := 0; i < h; i++ {
		di := offsetY + i
		if di >= panoH {
			continue
		}
		for j := 0; j < w; j++ {
			if !mask.At(i, j).Valid() {
				continue
			}
			dj := wrapColumn(offsetX+j, panoW)
			wc := weight.At(i, j)
			cf := color.At(i, j)
			cur := c.panorama.At(di, dj)
			c.panorama.Set(di, dj, pixel.ColorA{
				R: cur.R + wc*cf.R,
				G: cur.G + wc*cf.G,
				B: cur.B + wc*cf.B,
				A: cur.A + wc,
			})
		}
	}
	return nil
}

func (c *alphaCompositor) Terminate() error {
	w, h := c.panorama.Size()
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			p := c.panorama.At(i, j)
			if p.A < alphaEpsilon {
				c.panorama.Set(i, j, pixel.ColorA{})
				continue
			}
			c.panorama.Set(i, j, pixel.ColorA{R: p.R / p.A, G: p.G / p.A, B: p.B / p.A, A: 1})
		}
	}
	return nil
}

func (c *alphaCompositor) Panorama() image.Image[pixel.ColorA] { return c.panorama }
