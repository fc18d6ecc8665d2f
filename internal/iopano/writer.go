// Package iopano is the on-disk panorama writer spec.md calls out as an
// external collaborator (spec §6): a single RGBA float EXR at the
// panorama's (pano_w, pano_h), carrying forward the first processed
// view's non-AliceVision metadata.
package iopano

import (
	"encoding/json"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// Write encodes panorama as a 4-channel float32 EXR at path. extraMeta
// (the first processed view's passthrough metadata, per spec §6) is
// written to a JSON sidecar alongside it, mirroring the sidecar
// convention internal/ioview reads views through.
func Write(path string, panorama image.Image[pixel.ColorA], extraMeta map[string]string) error {
	w, h := panorama.Size()
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV32FC4)
	defer mat.Close()

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			c := panorama.At(i, j)
			// gocv/OpenCV wants BGRA channel order on write.
			mat.SetFloatAt3(i, j, 0, c.B)
			mat.SetFloatAt3(i, j, 1, c.G)
			mat.SetFloatAt3(i, j, 2, c.R)
			mat.SetFloatAt3(i, j, 3, c.A)
		}
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("iopano: writing panorama %q", path)
	}

	if len(extraMeta) > 0 {
		data, err := json.MarshalIndent(extraMeta, "", "  ")
		if err != nil {
			return fmt.Errorf("iopano: encoding metadata for %q: %w", path, err)
		}
		if err := os.WriteFile(path+".meta.json", data, 0o644); err != nil {
			return fmt.Errorf("iopano: writing metadata for %q: %w", path, err)
		}
	}
	return nil
}
