package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

func constantColor(w, h int, c pixel.ColorF) image.Image[pixel.ColorF] {
	return image.Fill[pixel.ColorF](w, h, c)
}

func TestConvolveColor_ConstantImageIsUnchanged(t *testing.T) {
	for _, wrap := range []bool{true, false} {
		img := constantColor(9, 9, pixel.ColorF{R: 0.25, G: 0.5, B: 0.75})
		out := ConvolveColor(img, wrap)
		w, h := out.Size()
		for i := 0; i < h; i++ {
			for j := 0; j < w; j++ {
				p := out.At(i, j)
				assert.InDelta(t, 0.25, p.R, 1e-5)
				assert.InDelta(t, 0.5, p.G, 1e-5)
				assert.InDelta(t, 0.75, p.B, 1e-5)
			}
		}
	}
}

func TestConvolveColor_WrapVsMirrorDiffer(t *testing.T) {
	img := image.New[pixel.ColorF](9, 9)
	img.Set(4, 0, pixel.ColorF{R: 1})

	wrapped := ConvolveColor(img, true)
	mirrored := ConvolveColor(img, false)

	// Under wrap, the impulse at column 0 bleeds into column 8 (its wrapped
	// neighbor); under mirror, column 8 is untouched by an impulse at 0.
	assert.Greater(t, wrapped.At(4, 8).R, float32(0))
	assert.Equal(t, float32(0), mirrored.At(4, 8).R)
}

func TestUpsample_PlacementConvention(t *testing.T) {
	input := image.New[pixel.ColorF](2, 2)
	input.Set(0, 0, pixel.ColorF{R: 1})
	input.Set(0, 1, pixel.ColorF{R: 2})
	input.Set(1, 0, pixel.ColorF{R: 3})
	input.Set(1, 1, pixel.ColorF{R: 4})

	up := UpsampleColor(input)
	w, h := up.Size()
	require.Equal(t, 4, w)
	require.Equal(t, 4, h)

	// Source pixel (i,j) must land at (2i+1, 2j+1); the other three cells
	// of its 2x2 block stay zero.
	assert.Equal(t, float32(1), up.At(1, 1).R)
	assert.Equal(t, float32(2), up.At(1, 3).R)
	assert.Equal(t, float32(3), up.At(3, 1).R)
	assert.Equal(t, float32(4), up.At(3, 3).R)
	assert.Equal(t, float32(0), up.At(0, 0).R)
	assert.Equal(t, float32(0), up.At(2, 2).R)
}

func TestDownsample_KeepsTopLeftOfEachBlock(t *testing.T) {
	input := image.New[pixel.ColorF](4, 4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			input.Set(i, j, pixel.ColorF{R: float32(i*4 + j)})
		}
	}
	out := DownsampleColor(input)
	w, h := out.Size()
	require.Equal(t, 2, w)
	require.Equal(t, 2, h)
	assert.Equal(t, input.At(0, 0).R, out.At(0, 0).R)
	assert.Equal(t, input.At(0, 2).R, out.At(0, 1).R)
	assert.Equal(t, input.At(2, 0).R, out.At(1, 0).R)
	assert.Equal(t, input.At(2, 2).R, out.At(1, 1).R)
}

func TestAddSubScaleColor(t *testing.T) {
	a := constantColor(3, 3, pixel.ColorF{R: 1, G: 2, B: 3})
	b := constantColor(3, 3, pixel.ColorF{R: 0.5, G: 0.5, B: 0.5})

	sum := AddColor(a, b)
	assert.Equal(t, pixel.ColorF{R: 1.5, G: 2.5, B: 3.5}, sum.At(1, 1))

	diff := SubColor(a, b)
	assert.Equal(t, pixel.ColorF{R: 0.5, G: 1.5, B: 2.5}, diff.At(1, 1))

	scaled := ScaleColor(a, 4)
	assert.Equal(t, pixel.ColorF{R: 4, G: 8, B: 12}, scaled.At(1, 1))
}
