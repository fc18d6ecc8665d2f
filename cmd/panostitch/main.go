// Command panostitch composites a set of pre-warped, equirectangular
// view images into one seamless panorama.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/itohio/panostitch/internal/imaging/image"
	"github.com/itohio/panostitch/internal/imaging/pixel"
	"github.com/itohio/panostitch/internal/iopano"
	"github.com/itohio/panostitch/internal/ioview"
	"github.com/itohio/panostitch/internal/obslog"
	"github.com/itohio/panostitch/internal/panorama"
	"github.com/itohio/panostitch/internal/panorama/compositor"
	"github.com/itohio/panostitch/internal/panorama/overlay"
	"github.com/itohio/panostitch/internal/scene"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "panostitch:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("panostitch", flag.ContinueOnError)
	input := fs.String("input", "", "path to the SfM scene manifest")
	warpingFolder := fs.String("warpingFolder", "", "directory containing per-view warped color/mask/weight EXRs")
	output := fs.String("output", "", "path to write the final panorama EXR")
	compositerType := fs.String("compositerType", "multiband", "replace | alpha | multiband")
	overlayType := fs.String("overlayType", "none", "none | borders | seams")
	verbosity := fs.String("verbosity", "info", "debug | info | warn | error")
	loggerKind := fs.String("logger", "slog", "slog | zerolog")
	bands := fs.Int("bands", 1, "initial Laplacian pyramid band count")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *input == "" || *warpingFolder == "" || *output == "" {
		return errors.New("--input, --warpingFolder and --output are required")
	}

	kind, ok := parseCompositorKind(*compositerType)
	if !ok {
		return fmt.Errorf("unknown --compositerType %q", *compositerType)
	}
	overlayKind, ok := parseOverlayKind(*overlayType)
	if !ok {
		return fmt.Errorf("unknown --overlayType %q", *overlayType)
	}

	hook := buildLogHook(*loggerKind, *verbosity)

	manifest, err := scene.LoadManifest(*input)
	if err != nil {
		return err
	}

	reader := ioview.GocvReader{Dir: *warpingFolder}

	result := make(chan buildResult, 1)
	go func() {
		pano, extra, err := panorama.Build(manifest, reader, panorama.Options{
			CompositorKind: kind,
			OverlayKind:    overlayKind,
			InitialBands:   *bands,
			Log:            hook,
		})
		result <- buildResult{pano: pano, extra: extra, err: err}
	}()

	var res buildResult
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-result:
	}
	if res.err != nil {
		return res.err
	}

	return iopano.Write(*output, res.pano, res.extra)
}

type buildResult struct {
	pano  image.Image[pixel.ColorA]
	extra map[string]string
	err   error
}

func parseCompositorKind(s string) (compositor.Kind, bool) {
	switch s {
	case "replace":
		return compositor.Replace, true
	case "alpha":
		return compositor.Alpha, true
	case "multiband":
		return compositor.Multiband, true
	default:
		return 0, false
	}
}

func parseOverlayKind(s string) (overlay.Kind, bool) {
	switch s {
	case "none":
		return overlay.None, true
	case "borders":
		return overlay.Borders, true
	case "seams":
		return overlay.Seams, true
	default:
		return 0, false
	}
}

func buildLogHook(kind, verbosity string) obslog.Hook {
	level := parseLevel(verbosity)
	if kind == "zerolog" {
		zl := zerolog.New(os.Stderr).Level(zerologLevel(level)).With().Timestamp().Logger()
		return obslog.FromZerolog(zl)
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel(level)}))
	return obslog.FromSlog(l)
}

func parseLevel(s string) obslog.Level {
	switch s {
	case "debug":
		return obslog.LevelDebug
	case "warn":
		return obslog.LevelWarn
	case "error":
		return obslog.LevelError
	default:
		return obslog.LevelInfo
	}
}

func slogLevel(l obslog.Level) slog.Level {
	switch l {
	case obslog.LevelDebug:
		return slog.LevelDebug
	case obslog.LevelWarn:
		return slog.LevelWarn
	case obslog.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func zerologLevel(l obslog.Level) zerolog.Level {
	switch l {
	case obslog.LevelDebug:
		return zerolog.DebugLevel
	case obslog.LevelWarn:
		return zerolog.WarnLevel
	case obslog.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
