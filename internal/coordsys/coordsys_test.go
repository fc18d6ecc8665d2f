package coordsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func TestParseSystem(t *testing.T) {
	cases := map[string]System{"alice": Alice, "arcore": ARCore, "pytorch": PyTorch}
	for name, want := range cases {
		got, ok := ParseSystem(name)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := ParseSystem("unknown")
	assert.False(t, ok)
}

func TestTransform_AliceToAliceIsIdentity(t *testing.T) {
	pose := Pose{Rotation: identity(), Translation: [3]float32{1, 2, 3}}
	out := Transform(pose, Alice, Alice)
	assert.Equal(t, pose.Rotation, out.Rotation)
	assert.Equal(t, pose.Translation, out.Translation)
}

func TestTransform_ARCoreRoundTrip(t *testing.T) {
	pose := Pose{Rotation: identity(), Translation: [3]float32{0.1, 0.2, 0.3}}
	toAlice := Transform(pose, ARCore, Alice)
	back := Transform(toAlice, Alice, ARCore)
	for i := range pose.Rotation {
		assert.InDelta(t, pose.Rotation[i], back.Rotation[i], 1e-6)
	}
	assert.Equal(t, pose.Translation, back.Translation, "translation is never touched")
}

func TestTransform_PyTorchRoundTrip(t *testing.T) {
	pose := Pose{Rotation: identity()}
	toAlice := Transform(pose, PyTorch, Alice)
	back := Transform(toAlice, Alice, PyTorch)
	for i := range pose.Rotation {
		assert.InDelta(t, pose.Rotation[i], back.Rotation[i], 1e-6)
	}
}

func TestTransform_ARCoreToPyTorchPivotsThroughAlice(t *testing.T) {
	pose := Pose{Rotation: identity()}
	direct := Transform(pose, ARCore, PyTorch)

	viaAlice := Transform(Transform(pose, ARCore, Alice), Alice, PyTorch)
	for i := range direct.Rotation {
		assert.InDelta(t, viaAlice.Rotation[i], direct.Rotation[i], 1e-6)
	}
}

func TestMat3_MulIdentity(t *testing.T) {
	m := Mat3{2, 0, 0, 0, 3, 0, 0, 0, 4}
	got := m.Mul(identity())
	assert.Equal(t, m, got)
}

func TestMat3_Transpose(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}
	assert.Equal(t, want, m.Transpose())
}
