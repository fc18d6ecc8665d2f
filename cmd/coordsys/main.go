// Command coordsys rewrites camera poses in a JSON pose file from one
// coordinate-system convention to another (AliceVision's own, ARCore's,
// or PyTorch3D's). It has nothing to do with panorama compositing; it
// exists as the repository's second, independent CLI surface.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/itohio/panostitch/internal/coordsys"
)

type poseJSON struct {
	Rotation    [9]float32 `json:"rotation"`
	Translation [3]float32 `json:"translation"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "coordsys:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("coordsys", flag.ContinueOnError)
	input := fs.String("input", "", "path to a JSON array of poses")
	output := fs.String("output", "", "path to write the transformed poses")
	inputSystem := fs.String("inputSystem", "alice", "alice | arcore | pytorch")
	outputSystem := fs.String("outputSystem", "alice", "alice | arcore | pytorch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *output == "" {
		return fmt.Errorf("--input and --output are required")
	}

	in, ok := coordsys.ParseSystem(*inputSystem)
	if !ok {
		return fmt.Errorf("unknown --inputSystem %q", *inputSystem)
	}
	out, ok := coordsys.ParseSystem(*outputSystem)
	if !ok {
		return fmt.Errorf("unknown --outputSystem %q", *outputSystem)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		return err
	}
	var poses []poseJSON
	if err := json.Unmarshal(data, &poses); err != nil {
		return err
	}

	for i, p := range poses {
		transformed := coordsys.Transform(coordsys.Pose{Rotation: coordsys.Mat3(p.Rotation), Translation: p.Translation}, in, out)
		poses[i] = poseJSON{Rotation: [9]float32(transformed.Rotation), Translation: transformed.Translation}
	}

	encoded, err := json.MarshalIndent(poses, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(*output, encoded, 0o644)
}
