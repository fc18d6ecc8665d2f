// Package scene holds the SfM scene manifest, an external collaborator
// spec.md calls out of scope for the compositing core: which views exist
// and whether each has a resolved pose. Only its interface to the core
// matters (spec §1). The per-view color/mask/weight loader is not here; it
// lives in internal/ioview.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/itohio/panostitch/internal/imaging/pixel"
)

// View is one entry of the scene manifest: a view id and whether it has
// a resolved pose/intrinsics. Views without a resolved pose are silently
// skipped by the driver (spec §7), not an error.
type View struct {
	ID      pixel.LabelPx `yaml:"id" json:"id"`
	HasPose bool          `yaml:"hasPose" json:"hasPose"`
}

// Manifest enumerates the views the compositor should consider.
type Manifest struct {
	Views []View `yaml:"views" json:"views"`
}

// PosedViews returns only the views with a resolved pose, in manifest
// order.
func (m Manifest) PosedViews() []View {
	out := make([]View, 0, len(m.Views))
	for _, v := range m.Views {
		if v.HasPose {
			out = append(out, v)
		}
	}
	return out
}

// LoadManifest reads a scene manifest, sniffing its format from the file
// extension: .yaml/.yml, .json, or .pb (protobuf wire format, structpb
// container). Mirrors the teacher's format-sniffing config loader.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("scene: reading manifest %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Manifest{}, fmt.Errorf("scene: parsing yaml manifest: %w", err)
		}
		return m, nil
	case ".pb":
		return unmarshalProtoManifest(data)
	default:
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return Manifest{}, fmt.Errorf("scene: parsing json manifest: %w", err)
		}
		return m, nil
	}
}

// unmarshalProtoManifest decodes a manifest stored as a protobuf-wire
// structpb.Struct (field names matching the JSON tags above), then
// reshapes it into Manifest via a JSON round-trip. structpb.Struct is a
// real generated proto.Message from google.golang.org/protobuf, used here
// as a schemaless container so the manifest doesn't need a
// protoc-generated type of its own.
func unmarshalProtoManifest(data []byte) (Manifest, error) {
	var pbStruct structpb.Struct
	if err := proto.Unmarshal(data, &pbStruct); err != nil {
		return Manifest{}, fmt.Errorf("scene: parsing protobuf manifest: %w", err)
	}
	asJSON, err := pbStruct.MarshalJSON()
	if err != nil {
		return Manifest{}, fmt.Errorf("scene: converting protobuf manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(asJSON, &m); err != nil {
		return Manifest{}, fmt.Errorf("scene: decoding protobuf manifest: %w", err)
	}
	return m, nil
}
