package compositor

import (
	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// replaceCompositor overwrites panorama pixels directly, with no
// blending: the simplest compositor, used when --compositerType=replace.
type replaceCompositor struct {
	panorama image.Image[pixel.ColorA]
}

func newReplace(width, height int) *replaceCompositor {
	return &replaceCompositor{panorama: image.New[pixel.ColorA](width, height)}
}

func (c *replaceCompositor) Append(color image.Image[pixel.ColorF], mask image.Image[pixel.MaskPx], _ image.Image[float32], offsetX, offsetY int) error {
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
			cf := color.At(i, j)
			c.panorama.Set(di, dj, pixel.ColorA{R: cf.R, G: cf.G, B: cf.B, A: 1})
		}
	}
	return nil
}

func (c *replaceCompositor) Terminate() error { return nil }

func (c *replaceCompositor) Panorama() image.Image[pixel.ColorA] { return c.panorama }
