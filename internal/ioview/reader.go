// Package ioview is the on-disk per-view reader spec.md calls out as an
// external collaborator (spec §6): for each view id, the warped color,
// validity mask, and soft weight, plus the panorama placement/size
// metadata the color file carries alongside it.
package ioview

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// ErrRead marks a failure to read or decode an on-disk view file; callers
// map it onto the core's ErrIO. ErrMissingKey marks a metadata sidecar
// that parsed but is missing a required AliceVision key; callers map it
// onto the core's ErrMetadataMissing.
var (
	ErrRead       = errors.New("ioview: read failure")
	ErrMissingKey = errors.New("ioview: required metadata key missing")
)

// Metadata is the subset of a view's color-file metadata the driver
// needs: the four AliceVision:* placement/size keys (spec §6), plus
// whatever else rode alongside them for passthrough onto the final
// output.
type Metadata struct {
	OffsetX, OffsetY              int
	PanoramaWidth, PanoramaHeight int
	Extra                         map[string]string
}

// aliceVisionKeys are stripped from Extra; they're surfaced through the
// typed fields above instead (spec §6 output contract: "the four
// AliceVision:offsetX/Y/panoramaWidth/Height keys stripped").
var aliceVisionKeys = map[string]bool{
	"AliceVision:offsetX":         true,
	"AliceVision:offsetY":         true,
	"AliceVision:panoramaWidth":   true,
	"AliceVision:panoramaHeight":  true,
}

// Reader loads one view's color/mask/weight triad from a warping folder.
// ReadMetadata is split out from ReadColor so the driver's seam-label
// pass can learn a view's placement without decoding its color pixels.
type Reader interface {
	ReadMetadata(viewID string) (Metadata, error)
	ReadColor(viewID string) (image.Image[pixel.ColorF], Metadata, error)
	ReadMask(viewID string) (image.Image[pixel.MaskPx], error)
	ReadWeight(viewID string) (image.Image[pixel.WeightPx], error)
}

// GocvReader is the default Reader, backed by gocv's EXR codec. OpenCV's
// EXR reader (unlike OpenImageIO, which AliceVision itself uses) does not
// surface custom string attributes, so the four AliceVision:* keys and
// any passthrough metadata are read from a JSON sidecar file next to the
// color EXR: "<viewId>.exr.meta.json".
type GocvReader struct {
	// Dir is the warping folder containing <viewId>.exr,
	// <viewId>_mask.exr and <viewId>_weight.exr.
	Dir string
}

func (r GocvReader) colorPath(viewID string) string  { return filepath.Join(r.Dir, viewID+".exr") }
func (r GocvReader) maskPath(viewID string) string   { return filepath.Join(r.Dir, viewID+"_mask.exr") }
func (r GocvReader) weightPath(viewID string) string { return filepath.Join(r.Dir, viewID+"_weight.exr") }
func (r GocvReader) metaPath(viewID string) string   { return r.colorPath(viewID) + ".meta.json" }

func (r GocvReader) ReadColor(viewID string) (image.Image[pixel.ColorF], Metadata, error) {
	path := r.colorPath(viewID)
	mat := gocv.IMReadUnchanged(path)
	if mat.Empty() {
		return image.Image[pixel.ColorF]{}, Metadata{}, fmt.Errorf("%w: reading color %q", ErrRead, path)
	}
	defer mat.Close()

	meta, err := r.ReadMetadata(viewID)
	if err != nil {
		return image.Image[pixel.ColorF]{}, Metadata{}, err
	}

	img, err := matToColor(mat)
	if err != nil {
		return image.Image[pixel.ColorF]{}, Metadata{}, fmt.Errorf("ioview: decoding color %q: %w", path, err)
	}
	return img, meta, nil
}

func (r GocvReader) ReadMask(viewID string) (image.Image[pixel.MaskPx], error) {
	path := r.maskPath(viewID)
	mat := gocv.IMReadUnchanged(path)
	if mat.Empty() {
		return image.Image[pixel.MaskPx]{}, fmt.Errorf("%w: reading mask %q", ErrRead, path)
	}
	defer mat.Close()
	return matToMask(mat)
}

func (r GocvReader) ReadWeight(viewID string) (image.Image[pixel.WeightPx], error) {
	path := r.weightPath(viewID)
	mat := gocv.IMReadUnchanged(path)
	if mat.Empty() {
		return image.Image[pixel.WeightPx]{}, fmt.Errorf("%w: reading weight %q", ErrRead, path)
	}
	defer mat.Close()
	return matToWeight(mat)
}

func (r GocvReader) ReadMetadata(viewID string) (Metadata, error) {
	path := r.metaPath(viewID)
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: reading metadata %q: %v", ErrRead, path, err)
	}

	var raw struct {
		OffsetX    *int `json:"AliceVision:offsetX"`
		OffsetY    *int `json:"AliceVision:offsetY"`
		PanoWidth  *int `json:"AliceVision:panoramaWidth"`
		PanoHeight *int `json:"AliceVision:panoramaHeight"`
	}
	var generic map[string]string
	if err := json.Unmarshal(data, &generic); err != nil {
		return Metadata{}, fmt.Errorf("%w: parsing metadata %q: %v", ErrRead, path, err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Metadata{}, fmt.Errorf("%w: parsing metadata %q: %v", ErrRead, path, err)
	}

	if raw.OffsetX == nil || raw.OffsetY == nil || raw.PanoWidth == nil || raw.PanoHeight == nil {
		return Metadata{}, fmt.Errorf("%w: metadata %q", ErrMissingKey, path)
	}

	extra := make(map[string]string, len(generic))
	for k, v := range generic {
		if aliceVisionKeys[k] {
			continue
		}
		extra[k] = v
	}

	return Metadata{
		OffsetX:        *raw.OffsetX,
		OffsetY:        *raw.OffsetY,
		PanoramaWidth:  *raw.PanoWidth,
		PanoramaHeight: *raw.PanoHeight,
		Extra:          extra,
	}, nil
}

func matToColor(mat gocv.Mat) (image.Image[pixel.ColorF], error) {
	w, h := mat.Cols(), mat.Rows()
	data, err := mat.DataPtrFloat32()
	if err != nil {
		return image.Image[pixel.ColorF]{}, err
	}
	out := image.New[pixel.ColorF](w, h)
	channels := mat.Channels()
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			base := (i*w + j) * channels
			// gocv/OpenCV stores color channels BGR, not RGB.
			out.Set(i, j, pixel.ColorF{R: data[base+2], G: data[base+1], B: data[base+0]})
		}
	}
	return out, nil
}

func matToMask(mat gocv.Mat) (image.Image[pixel.MaskPx], error) {
	w, h := mat.Cols(), mat.Rows()
	out := image.New[pixel.MaskPx](w, h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if mat.GetFloatAt(i, j) != 0 {
				out.Set(i, j, 1)
			}
		}
	}
	return out, nil
}

func matToWeight(mat gocv.Mat) (image.Image[pixel.WeightPx], error) {
	w, h := mat.Cols(), mat.Rows()
	out := image.New[pixel.WeightPx](w, h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			out.Set(i, j, mat.GetFloatAt(i, j))
		}
	}
	return out, nil
}
