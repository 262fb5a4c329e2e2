package common

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestEaseOutCubicEndpoints(t *testing.T) {
	assert.Equal(t, float32(0), EaseOutCubic(0))
	assert.Equal(t, float32(1), EaseOutCubic(1))
	assert.Equal(t, float32(1), EaseOutCubic(3), "clamped above")
	assert.Equal(t, float32(0), EaseOutCubic(-2), "clamped below")
	assert.Greater(t, EaseOutCubic(0.5), float32(0.5), "decelerating curve leads linear progress")
}

func TestDampFactor(t *testing.T) {
	assert.Equal(t, float32(0), DampFactor(4, 0))
	assert.Equal(t, float32(0), DampFactor(0, 0.016))
	w := DampFactor(4, 0.016)
	assert.Greater(t, w, float32(0))
	assert.Less(t, w, float32(1))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 9, 0},
		{9, 9, 0},
		{-1, 9, 8},
		{-10, 9, 8},
		{23, 9, 5},
		{4, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Wrap(tt.i, tt.n), "Wrap(%d, %d)", tt.i, tt.n)
	}
}

func TestSmoothDampConvergesWithoutOvershoot(t *testing.T) {
	cur := math32.Vec3(0, 0, 0)
	target := math32.Vec3(10, -4, 2)
	var vel math32.Vector3

	prevDist := target.Sub(cur).Length()
	for i := 0; i < 600; i++ {
		cur = SmoothDamp(cur, target, &vel, 0.5, 1.0/60)
		d := target.Sub(cur).Length()
		assert.LessOrEqual(t, d, prevDist+1e-5, "step %d moves closer", i)
		prevDist = d
	}
	assert.InDelta(t, 0, prevDist, 1e-3)
}

func TestSmoothDampZeroDelta(t *testing.T) {
	var vel math32.Vector3
	cur := math32.Vec3(1, 2, 3)
	assert.Equal(t, cur, SmoothDamp(cur, math32.Vec3(5, 5, 5), &vel, 0.3, 0))
}
