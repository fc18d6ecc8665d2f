package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

func TestDrawBorders_MarksEdgeAndOutline(t *testing.T) {
	panorama := image.New[pixel.ColorA](8, 8)
	mask := image.Fill[pixel.MaskPx](4, 4, 1)

	DrawBorders(panorama, mask, 2, 2)

	// Top-left corner of the mask's placement is on its rectangular edge.
	assert.Equal(t, red, panorama.At(2, 2))
	// Interior pixel, fully surrounded by valid neighbors, untouched.
	assert.Equal(t, pixel.ColorA{}, panorama.At(3, 3))
	// Outside the mask's placement entirely, untouched.
	assert.Equal(t, pixel.ColorA{}, panorama.At(0, 0))
}

func TestDrawBorders_InteriorEdgeOfSmallMaskMarked(t *testing.T) {
	panorama := image.New[pixel.ColorA](6, 6)
	mask := image.Fill[pixel.MaskPx](2, 2, 1)
	DrawBorders(panorama, mask, 1, 1)

	// A 2x2 mask has every pixel on its own rectangular edge.
	assert.Equal(t, red, panorama.At(1, 1))
	assert.Equal(t, red, panorama.At(1, 2))
	assert.Equal(t, red, panorama.At(2, 1))
	assert.Equal(t, red, panorama.At(2, 2))
}

func TestDrawSeams_MarksLabelBoundary(t *testing.T) {
	panorama := image.New[pixel.ColorA](6, 6)
	labels := image.Fill[pixel.LabelPx](6, 6, 1)
	for i := 0; i < 6; i++ {
		labels.Set(i, 4, 2)
		labels.Set(i, 5, 2)
	}

	DrawSeams(panorama, labels)

	assert.Equal(t, red, panorama.At(3, 3), "adjacent to the label boundary diagonally")
	assert.Equal(t, pixel.ColorA{}, panorama.At(3, 1), "far from any boundary")
}
