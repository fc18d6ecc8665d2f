package panorama

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
	"github.com/itohio/panostitch/internal/ioview"
	"github.com/itohio/panostitch/internal/panorama/compositor"
	"github.com/itohio/panostitch/internal/panorama/overlay"
	"github.com/itohio/panostitch/internal/scene"
)

// fakeReader is an in-memory ioview.Reader fixture, so the driver can be
// exercised without any real EXR files on disk.
type fakeReader struct {
	meta   map[string]ioview.Metadata
	color  map[string]image.Image[pixel.ColorF]
	mask   map[string]image.Image[pixel.MaskPx]
	weight map[string]image.Image[pixel.WeightPx]
}

func (r *fakeReader) ReadMetadata(id string) (ioview.Metadata, error) {
	m, ok := r.meta[id]
	if !ok {
		return ioview.Metadata{}, fmt.Errorf("%w: %s", ioview.ErrMissingKey, id)
	}
	return m, nil
}

func (r *fakeReader) ReadColor(id string) (image.Image[pixel.ColorF], ioview.Metadata, error) {
	c, ok := r.color[id]
	if !ok {
		return image.Image[pixel.ColorF]{}, ioview.Metadata{}, fmt.Errorf("%w: %s", ioview.ErrRead, id)
	}
	return c, r.meta[id], nil
}

func (r *fakeReader) ReadMask(id string) (image.Image[pixel.MaskPx], error) {
	m, ok := r.mask[id]
	if !ok {
		return image.Image[pixel.MaskPx]{}, fmt.Errorf("%w: %s", ioview.ErrRead, id)
	}
	return m, nil
}

func (r *fakeReader) ReadWeight(id string) (image.Image[pixel.WeightPx], error) {
	w, ok := r.weight[id]
	if !ok {
		return image.Image[pixel.WeightPx]{}, fmt.Errorf("%w: %s", ioview.ErrRead, id)
	}
	return w, nil
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		meta:   map[string]ioview.Metadata{},
		color:  map[string]image.Image[pixel.ColorF]{},
		mask:   map[string]image.Image[pixel.MaskPx]{},
		weight: map[string]image.Image[pixel.WeightPx]{},
	}
}

func (r *fakeReader) put(id string, offsetX, offsetY, panoW, panoH int, c pixel.ColorF, w, h int) {
	r.meta[id] = ioview.Metadata{OffsetX: offsetX, OffsetY: offsetY, PanoramaWidth: panoW, PanoramaHeight: panoH, Extra: map[string]string{"note": "x"}}
	r.color[id] = image.Fill[pixel.ColorF](w, h, c)
	r.mask[id] = image.Fill[pixel.MaskPx](w, h, 1)
	r.weight[id] = image.Fill[pixel.WeightPx](w, h, 1)
}

func TestBuild_SingleViewAlpha(t *testing.T) {
	reader := newFakeReader()
	reader.put("1", 0, 0, 8, 8, pixel.ColorF{R: 0.5, G: 0.5, B: 0.5}, 8, 8)
	manifest := scene.Manifest{Views: []scene.View{{ID: 1, HasPose: true}}}

	pano, extra, err := Build(manifest, reader, Options{CompositorKind: compositor.Alpha})
	require.NoError(t, err)
	assert.Equal(t, "x", extra["note"])
	p := pano.At(0, 0)
	assert.InDelta(t, 0.5, p.R, 1e-6)
	assert.Equal(t, float32(1), p.A)
}

func TestBuild_NoPosedViewsIsError(t *testing.T) {
	manifest := scene.Manifest{Views: []scene.View{{ID: 1, HasPose: false}}}
	_, _, err := Build(manifest, newFakeReader(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMetadataMissing))
}

func TestBuild_UnknownViewMapsToMetadataMissingOrIO(t *testing.T) {
	manifest := scene.Manifest{Views: []scene.View{{ID: 99, HasPose: true}}}
	_, _, err := Build(manifest, newFakeReader(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMetadataMissing) || errors.Is(err, ErrIO))
}

func TestBuild_MultibandTwoViewsSortedByKOpt(t *testing.T) {
	reader := newFakeReader()
	// 32x32 view (K_opt 2) first in manifest order, 16x16 view (K_opt 1)
	// second. Build must still process them ascending by K_opt internally
	// regardless of manifest order; the reverse order would be rejected as
	// a degenerate scale.
	reader.put("1", 16, 0, 32, 16, pixel.ColorF{R: 1}, 32, 32)
	reader.put("2", 0, 0, 32, 16, pixel.ColorF{G: 1}, 16, 16)
	manifest := scene.Manifest{Views: []scene.View{{ID: 1, HasPose: true}, {ID: 2, HasPose: true}}}

	pano, _, err := Build(manifest, reader, Options{CompositorKind: compositor.Multiband, InitialBands: 1})
	require.NoError(t, err)
	assert.Equal(t, float32(1), pano.At(0, 0).A)
}

func TestBuild_OverlayBordersMarksEdges(t *testing.T) {
	reader := newFakeReader()
	reader.put("1", 2, 2, 8, 8, pixel.ColorF{R: 0.3}, 4, 4)
	manifest := scene.Manifest{Views: []scene.View{{ID: 1, HasPose: true}}}

	pano, _, err := Build(manifest, reader, Options{CompositorKind: compositor.Alpha, OverlayKind: overlay.Borders})
	require.NoError(t, err)
	assert.NotEqual(t, pixel.ColorA{}, pano.At(2, 2))
}
