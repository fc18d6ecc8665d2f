package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"views":[{"id":1,"hasPose":true},{"id":2,"hasPose":false}]}`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Views, 2)
	assert.Equal(t, uint32(1), uint32(m.Views[0].ID))
	assert.True(t, m.Views[0].HasPose)
	assert.False(t, m.Views[1].HasPose)
}

func TestLoadManifest_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("views:\n  - id: 5\n    hasPose: true\n"), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Views, 1)
	assert.Equal(t, uint32(5), uint32(m.Views[0].ID))
}

func TestManifest_PosedViewsFiltersUnposed(t *testing.T) {
	m := Manifest{Views: []View{{ID: 1, HasPose: true}, {ID: 2, HasPose: false}, {ID: 3, HasPose: true}}}
	posed := m.PosedViews()
	require.Len(t, posed, 2)
	assert.Equal(t, uint32(1), uint32(posed[0].ID))
	assert.Equal(t, uint32(3), uint32(posed[1].ID))
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
