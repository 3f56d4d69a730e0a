package tutorial

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-tutorial/internal/physics"
)

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	require.NoError(t, l.Validate())
	assert.Len(t, l.Palette, 7)
	assert.Equal(t, "Bottom1", l.Bottoms[0].Name)
	assert.Equal(t, "Bottom2", l.Bottoms[1].Name)
	assert.Equal(t, "Box3", l.Top.Name)
	assert.Equal(t, 5, l.Burst.Count)
	assert.Equal(t, 10, l.Match.Impulses)
	assert.Equal(t, Vec{-12, 2}, l.Projectile.Position)
	assert.Equal(t, Vec{0.5, 0}, l.Projectile.Impulse)
	assert.InDelta(t, 0.2, l.DynamicFriction, 1e-9)
	assert.Equal(t, physics.RGB255(0, 209, 111), l.Color(l.Plane.Color))
}

func TestCloneIsDeep(t *testing.T) {
	a := DefaultLayout()
	b := a.Clone()
	b.Palette["white"] = [3]uint8{1, 2, 3}
	b.Bottoms[0].Name = "changed"

	assert.Equal(t, [3]uint8{255, 255, 255}, a.Palette["white"])
	assert.Equal(t, "Bottom1", a.Bottoms[0].Name)
	assert.Equal(t, "Bottom1", DefaultLayout().Bottoms[0].Name)
}

func TestLoadLayoutMissingFile(t *testing.T) {
	l, err := LoadLayout(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout(), l)

	l, err = LoadLayout("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout(), l)
}

func TestLoadLayoutOverrides(t *testing.T) {
	path := writeLayout(t, `
top:
  position: [0, 20]
burst:
  count: 3
palette:
  black: [0, 0, 0]
sphere:
  color: black
`)
	l, err := LoadLayout(path)
	require.NoError(t, err)

	assert.Equal(t, Vec{0, 20}, l.Top.Position)
	assert.Equal(t, "Box3", l.Top.Name, "keys absent from the file keep their defaults")
	assert.Equal(t, 3, l.Burst.Count)
	assert.Equal(t, 10, l.Match.Impulses)
	assert.Equal(t, physics.RGB255(0, 0, 0), l.Color(l.Sphere.Color))
	assert.Equal(t, physics.RGB255(255, 255, 255), l.Color("white"))
}

func TestLoadLayoutRejectsBadFiles(t *testing.T) {
	_, err := LoadLayout(writeLayout(t, "top: [unclosed"))
	assert.Error(t, err)

	_, err = LoadLayout(writeLayout(t, "gun:\n  color: mauve\n"))
	assert.ErrorContains(t, err, "mauve")

	_, err = LoadLayout(writeLayout(t, "bottoms:\n  - name: Only\n"))
	assert.ErrorContains(t, err, "2 bottoms")
}

func TestMarshalRoundTripsOverrides(t *testing.T) {
	l := DefaultLayout()
	l.Gun.Position = Vec{-20, 3}
	data, err := l.Marshal()
	require.NoError(t, err)

	got, err := LoadLayout(writeLayout(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, l, got)
}

func TestSceneUsesLayout(t *testing.T) {
	l := DefaultLayout()
	l.Projectile.Position = Vec{-5, 4}
	l.Match.Impulses = 3
	s, seen := newTutorial(t, WithLayout(l))

	require.NoError(t, s.FireProjectile())
	s.BeginMatch()

	ball := s.Actors()[len(s.Actors())-1]
	assert.Equal(t, physics.V(-5, 4), ball.GlobalPose().Position)
	assert.Len(t, *seen, 1+3)
}
