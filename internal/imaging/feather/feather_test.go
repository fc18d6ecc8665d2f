package feather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

func TestFeather_ValidPixelsUnchanged(t *testing.T) {
	color := image.New[pixel.ColorF](8, 8)
	mask := image.New[pixel.MaskPx](8, 8)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			color.Set(i, j, pixel.ColorF{R: float32(i), G: float32(j)})
			mask.Set(i, j, 1)
		}
	}

	out := Feather(color, mask)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			assert.Equal(t, color.At(i, j), out.At(i, j))
		}
	}
}

func TestFeather_FillsInvalidRegionFromNeighbors(t *testing.T) {
	const n = 16
	color := image.New[pixel.ColorF](n, n)
	mask := image.New[pixel.MaskPx](n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j < n/2 {
				color.Set(i, j, pixel.ColorF{R: 1})
				mask.Set(i, j, 1)
			}
		}
	}

	out := Feather(color, mask)
	require.Equal(t, n, out.Width())

	// Every pixel of the invalid half must now hold a finite,
	// non-zero-by-default color derived from the valid half.
	for i := 0; i < n; i++ {
		for j := n / 2; j < n; j++ {
			assert.Greater(t, out.At(i, j).R, float32(0), "pixel (%d,%d) should have inherited a color", i, j)
		}
	}
}

func TestFeather_Idempotent(t *testing.T) {
	const n = 16
	color := image.New[pixel.ColorF](n, n)
	mask := image.New[pixel.MaskPx](n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (i+j)%3 == 0 {
				color.Set(i, j, pixel.ColorF{R: 0.4, G: 0.6, B: 0.8})
				mask.Set(i, j, 1)
			}
		}
	}

	once := Feather(color, mask)
	fullMask := image.Fill[pixel.MaskPx](n, n, 1)
	twice := Feather(once, fullMask)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b := once.At(i, j), twice.At(i, j)
			assert.InDelta(t, a.R, b.R, 1e-6)
			assert.InDelta(t, a.G, b.G, 1e-6)
			assert.InDelta(t, a.B, b.B, 1e-6)
		}
	}
}
