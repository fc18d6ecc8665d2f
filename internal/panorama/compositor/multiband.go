package compositor

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/itohio/panostitch/internal/imaging/feather"
	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pad"
	"github.com/itohio/panostitch/internal/imaging/pixel"
	"github.com/itohio/panostitch/internal/panorama/pyramid"
)

// hdrEpsilon is the floor applied before taking the log of a color
// channel, so a zero or negative sample never produces -Inf/NaN (spec
// §4.7, "High dynamic range" in the glossary).
const hdrEpsilon = 1e-8

// multibandCompositor is the Laplacian-pyramid compositor: the only
// compositor kind the driver's seam-label pass feeds (spec §4.7).
type multibandCompositor struct {
	pyr      *pyramid.Accumulator
	bands    int
	panorama image.Image[pixel.ColorA]
}

func newMultiband(width, height, bands int) *multibandCompositor {
	if bands < 1 {
		bands = 1
	}
	return &multibandCompositor{
		pyr:   pyramid.New(width, height, bands),
		bands: bands,
	}
}

// OptimalScale is spec §3's K_opt = floor(log2(min(w,h)/8)): the deepest
// useful pyramid band for a view of the given dimensions. Exported so the
// driver can sort views by ascending K_opt before any view reaches the
// pyramid (spec §4.7, §5).
func OptimalScale(w, h int) int {
	minSize := w
	if h < minSize {
		minSize = h
	}
	return int(math32.Floor(math32.Log2(float32(minSize) / 8.0)))
}

func (c *multibandCompositor) Append(color image.Image[pixel.ColorF], mask image.Image[pixel.MaskPx], weight image.Image[float32], offsetX, offsetY int) error {
	w, h := color.Size()
	scale := OptimalScale(w, h)
	if scale < c.bands {
		return fmt.Errorf("%w: view's optimal scale %d < current bands %d", ErrDegenerateScale, scale, c.bands)
	}
	if scale > c.bands {
		c.bands = scale
		c.pyr.Augment(c.bands)
	}

	colorPadded, ox, oy := pad.Pad(color, offsetX, offsetY, c.bands)
	maskPadded, _, _ := pad.Pad(mask, offsetX, offsetY, c.bands)
	weightPadded, _, _ := pad.Pad(weight, offsetX, offsetY, c.bands)

	feathered := feather.Feather(colorPadded, maskPadded)
	logSpace := image.Map(feathered, func(c pixel.ColorF) pixel.ColorF { return c.Log(hdrEpsilon) })

	c.pyr.Apply(logSpace, weightPadded, ox, oy)
	return nil
}

func (c *multibandCompositor) Terminate() error {
	rebuilt := c.pyr.Rebuild()
	c.panorama = image.Map(rebuilt, func(p pixel.ColorA) pixel.ColorA {
		rgb := p.RGB().Exp()
		return pixel.ColorA{R: rgb.R, G: rgb.G, B: rgb.B, A: p.A}
	})
	return nil
}

func (c *multibandCompositor) Panorama() image.Image[pixel.ColorA] { return c.panorama }
