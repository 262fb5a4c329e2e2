package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertIndicesInRange(t *testing.T, m Mesh) {
	t.Helper()
	require.Zero(t, len(m.Indices)%3, "triangle list")
	for _, i := range m.Indices {
		require.Less(t, int(i), len(m.Vertices))
	}
}

func TestExtrudeStar(t *testing.T) {
	outline, err := StarOutline(1, 0.5, 5, 0.1)
	require.NoError(t, err)
	m := Extrude(outline, 0.2)

	assertIndicesInRange(t, m)
	b := m.Bounds()
	assert.InDelta(t, 0.1, b.Max.Z, 1e-6)
	assert.InDelta(t, -0.1, b.Min.Z, 1e-6)
	assert.InDelta(t, 1, b.Max.Y, 1e-5)
}

func TestLatheColumn(t *testing.T) {
	prof, err := ColumnProfile(4, 0.3)
	require.NoError(t, err)
	m := Lathe(prof, 16)

	assertIndicesInRange(t, m)
	assert.Len(t, m.Vertices, 17*len(prof))
	b := m.Bounds()
	assert.InDelta(t, 0, b.Min.Y, 1e-6)
	assert.InDelta(t, 4, b.Max.Y, 1e-5)
}

func TestCylinderBounds(t *testing.T) {
	m := Cylinder(2, 0.5, 32)
	assertIndicesInRange(t, m)
	b := m.Bounds()
	assert.InDelta(t, 2, b.Max.X, 1e-5)
	assert.InDelta(t, 0.25, b.Max.Y, 1e-6)
	assert.InDelta(t, -0.25, b.Min.Y, 1e-6)
}

func TestCylinderTooFewSegments(t *testing.T) {
	assert.Empty(t, Cylinder(1, 1, 2).Vertices)
}

func TestSpiralRibbonAndOctahedron(t *testing.T) {
	arms, err := SpiralPoints(2, 3, 1, 20)
	require.NoError(t, err)
	ribbon := SpiralRibbon(arms, 0.3)
	assertIndicesInRange(t, ribbon)
	assert.Len(t, ribbon.Vertices, 2*2*20)

	oct := Octahedron(0.5)
	assertIndicesInRange(t, oct)
	assert.Len(t, oct.Indices, 24)
}
