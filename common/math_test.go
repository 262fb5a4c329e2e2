package common

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat4InverseRoundTrip(t *testing.T) {
	m := ModelMatrix(math32.Vec3(1, 2, 3), math32.Vec3(0.3, 1.1, -0.4), math32.Vec3(2, 2, 2))
	inv, ok := m.Inverse()
	require.True(t, ok)

	id := m.Mul(inv)
	want := Identity4()
	for i := range id {
		assert.InDelta(t, want[i], id[i], 1e-5, "element %d", i)
	}
}

func TestMat4InverseSingular(t *testing.T) {
	_, ok := Mat4{}.Inverse()
	assert.False(t, ok)
}

func TestScreenRayThroughViewportCenterHitsTarget(t *testing.T) {
	eye := math32.Vec3(0, 5, 10)
	target := math32.Vec3(0, 1, 0)
	vp := Perspective(math32.DegToRad(50), 16.0/9.0, 0.1, 100).Mul(LookAt(eye, target, math32.Vec3(0, 1, 0)))
	inv, ok := vp.Inverse()
	require.True(t, ok)

	ray := ScreenRay(inv, 800, 450, 1600, 900)
	toTarget := target.Sub(eye)
	toTarget = toTarget.MulScalar(1 / toTarget.Length())

	assert.InDelta(t, toTarget.X, ray.Dir.X, 1e-3)
	assert.InDelta(t, toTarget.Y, ray.Dir.Y, 1e-3)
	assert.InDelta(t, toTarget.Z, ray.Dir.Z, 1e-3)
}

func TestWorldToScreen(t *testing.T) {
	eye := math32.Vec3(0, 0, 10)
	vp := Perspective(math32.DegToRad(60), 1, 0.1, 100).Mul(LookAt(eye, math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0)))

	x, y, ok := WorldToScreen(vp, math32.Vec3(0, 0, 0), 200, 200)
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-3)
	assert.InDelta(t, 100, y, 1e-3)

	_, _, ok = WorldToScreen(vp, math32.Vec3(0, 0, 20), 200, 200)
	assert.False(t, ok, "points behind the eye do not project")
}

func TestFrustumIntersectsBox(t *testing.T) {
	vp := Perspective(math32.DegToRad(60), 1, 0.1, 50).Mul(LookAt(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0)))
	f := ExtractFrustum(vp)

	assert.True(t, f.IntersectsBox(math32.B3(-1, -1, -1, 1, 1, 1)))
	assert.False(t, f.IntersectsBox(math32.B3(-1, -1, 20, 1, 1, 22)), "behind the camera")
	assert.False(t, f.IntersectsBox(math32.B3(100, -1, -1, 102, 1, 1)), "far to the right")
}
