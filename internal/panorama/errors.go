// Package panorama orchestrates one panorama build: the two-pass
// compositor driver (spec §4.7) that ties together seam labels, the
// per-compositor-kind accumulator, and the optional overlay pass.
package panorama

import "errors"

// Sentinel errors the driver returns, wrapped with fmt.Errorf("...: %w")
// at the point of detection so callers can errors.Is against them (spec
// §7).
var (
	ErrIO              = errors.New("panostitch: io error")
	ErrMetadataMissing = errors.New("panostitch: required metadata missing")
	ErrSizeMismatch    = errors.New("panostitch: mask/weight size mismatch")
	ErrDegenerateScale = errors.New("panostitch: view requires a smaller pyramid than already built")
	ErrInvalidOutput   = errors.New("panostitch: panorama size metadata is zero")
)
