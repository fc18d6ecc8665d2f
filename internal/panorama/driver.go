package panorama

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
	"github.com/itohio/panostitch/internal/ioview"
	"github.com/itohio/panostitch/internal/obslog"
	"github.com/itohio/panostitch/internal/panorama/compositor"
	"github.com/itohio/panostitch/internal/panorama/overlay"
	"github.com/itohio/panostitch/internal/panorama/seam"
	"github.com/itohio/panostitch/internal/scene"
)

// Options configures one Build call.
type Options struct {
	CompositorKind compositor.Kind
	OverlayKind    overlay.Kind
	// InitialBands seeds the multiband pyramid's band count (spec §3);
	// ignored by the other compositor kinds. Defaults to 1 if <= 0.
	InitialBands int
	Log          obslog.Hook
}

// candidate is one posed view carried between pass 1 and pass 2, holding
// everything pass 1 already paid the I/O cost to read.
type candidate struct {
	view   scene.View
	meta   ioview.Metadata
	mask   image.Image[pixel.MaskPx]
	weight image.Image[pixel.WeightPx]
	kOpt   int
}

// Build runs the full two-pass compositor driver (spec §4.7): seam
// labels first (multiband only, or whenever overlay seams are requested),
// then the compositing pass in ascending-K_opt view order. Returns the
// finished RGBA panorama and the passthrough metadata from the first
// processed view (spec §6 output contract).
func Build(manifest scene.Manifest, reader ioview.Reader, opts Options) (image.Image[pixel.ColorA], map[string]string, error) {
	buildID := uuid.New()
	buildIDShort := base58.Encode(buildID[:])
	log := func(level obslog.Level, msg string, kv ...any) {
		opts.Log.Call(level, msg, append([]any{"build_id", buildID.String(), "build_id_short", buildIDShort}, kv...)...)
	}

	bands := opts.InitialBands
	if bands <= 0 {
		bands = 1
	}

	posed := manifest.PosedViews()
	log(obslog.LevelInfo, "starting panorama build", "views", len(manifest.Views), "posed", len(posed))
	if len(posed) == 0 {
		return image.Image[pixel.ColorA]{}, nil, fmt.Errorf("%w: no posed views in manifest", ErrMetadataMissing)
	}

	firstMeta, err := reader.ReadMetadata(idString(posed[0]))
	if err != nil {
		return image.Image[pixel.ColorA]{}, nil, wrapReadErr(err)
	}
	panoW, panoH := firstMeta.PanoramaWidth, firstMeta.PanoramaHeight
	if panoW <= 0 || panoH <= 0 {
		return image.Image[pixel.ColorA]{}, nil, fmt.Errorf("%w: %dx%d", ErrInvalidOutput, panoW, panoH)
	}

	needLabels := opts.CompositorKind == compositor.Multiband || opts.OverlayKind == overlay.Seams

	candidates := make([]candidate, 0, len(posed))
	var seamAcc *seam.Accumulator
	if needLabels {
		seamAcc = seam.New(panoW, panoH)
	}

	for _, v := range posed {
		id := idString(v)
		meta, err := reader.ReadMetadata(id)
		if err != nil {
			return image.Image[pixel.ColorA]{}, nil, wrapReadErr(err)
		}
		mask, err := reader.ReadMask(id)
		if err != nil {
			return image.Image[pixel.ColorA]{}, nil, wrapReadErr(err)
		}
		weight, err := reader.ReadWeight(id)
		if err != nil {
			return image.Image[pixel.ColorA]{}, nil, wrapReadErr(err)
		}

		w, h := mask.Size()
		kOpt := compositor.OptimalScale(w, h)

		if needLabels {
			if err := seamAcc.Append(mask, weight, v.ID, meta.OffsetX, meta.OffsetY); err != nil {
				if errors.Is(err, seam.ErrSizeMismatch) {
					return image.Image[pixel.ColorA]{}, nil, fmt.Errorf("%w: view %s", ErrSizeMismatch, id)
				}
				return image.Image[pixel.ColorA]{}, nil, err
			}
		}

		candidates = append(candidates, candidate{view: v, meta: meta, mask: mask, weight: weight, kOpt: kOpt})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].kOpt < candidates[j].kOpt })

	var labels image.Image[pixel.LabelPx]
	if needLabels {
		labels = seamAcc.Labels()
		seamAcc = nil // consumed; not read again (spec §4.6 "Lifecycle")
	}

	comp := compositor.New(opts.CompositorKind, panoW, panoH, bands)

	var borderPlacements []candidate
	var firstProcessedMeta *ioview.Metadata

	for _, c := range candidates {
		id := idString(c.view)
		color, colorMeta, err := reader.ReadColor(id)
		if err != nil {
			return image.Image[pixel.ColorA]{}, nil, wrapReadErr(err)
		}
		if firstProcessedMeta == nil {
			firstProcessedMeta = &colorMeta
		}

		weight := c.weight
		if opts.CompositorKind == compositor.Multiband {
			w, h := c.mask.Size()
			weight = seam.MaskFromLabels(labels, c.view.ID, w, h, c.meta.OffsetX, c.meta.OffsetY)
		}

		if err := comp.Append(color, c.mask, weight, c.meta.OffsetX, c.meta.OffsetY); err != nil {
			if errors.Is(err, compositor.ErrDegenerateScale) {
				return image.Image[pixel.ColorA]{}, nil, fmt.Errorf("%w: view %s", ErrDegenerateScale, id)
			}
			return image.Image[pixel.ColorA]{}, nil, err
		}

		if opts.OverlayKind == overlay.Borders {
			borderPlacements = append(borderPlacements, c)
		}

		log(obslog.LevelDebug, "view composited", "view_id", id, "k_opt", c.kOpt)
	}

	if err := comp.Terminate(); err != nil {
		return image.Image[pixel.ColorA]{}, nil, err
	}
	panorama := comp.Panorama()

	switch opts.OverlayKind {
	case overlay.Borders:
		for _, c := range borderPlacements {
			overlay.DrawBorders(panorama, c.mask, c.meta.OffsetX, c.meta.OffsetY)
		}
	case overlay.Seams:
		overlay.DrawSeams(panorama, labels)
	}

	var extra map[string]string
	if firstProcessedMeta != nil {
		extra = firstProcessedMeta.Extra
	}

	log(obslog.LevelInfo, "panorama build complete", "size_w", panoW, "size_h", panoH)
	return panorama, extra, nil
}

func idString(v scene.View) string {
	return fmt.Sprintf("%d", v.ID)
}

func wrapReadErr(err error) error {
	if errors.Is(err, ioview.ErrMissingKey) {
		return fmt.Errorf("%w: %v", ErrMetadataMissing, err)
	}
	return fmt.Errorf("%w: %v", ErrIO, err)
}
