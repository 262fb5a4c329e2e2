package geometry

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

func TestStarOutline(t *testing.T) {
	pts, err := StarOutline(2, 1, 5, 0.2)
	require.NoError(t, err)
	require.Len(t, pts, 20)

	assert.InDelta(t, 0, pts[0].X, 1e-5, "first tip points up")
	assert.InDelta(t, 2, pts[0].Y, 1e-5)
	for k := 0; k < 5; k++ {
		assert.InDelta(t, 2, pts[4*k].Length(), 1e-5, "tip %d", k)
		assert.InDelta(t, 1, pts[4*k+2].Length(), 1e-5, "valley %d", k)
	}
}

func TestStarOutlineIndentPullsNotchInward(t *testing.T) {
	straight, err := StarOutline(2, 1, 6, 0)
	require.NoError(t, err)
	indented, err := StarOutline(2, 1, 6, 0.5)
	require.NoError(t, err)

	assert.Less(t, indented[1].Length(), straight[1].Length())
	assert.Equal(t, straight[0], indented[0], "tips are unaffected")
}

func TestStarOutlineDeterministic(t *testing.T) {
	a, err := StarOutline(3, 1.5, 7, 0.3)
	require.NoError(t, err)
	b, err := StarOutline(3, 1.5, 7, 0.3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStarOutlineInvalid(t *testing.T) {
	tests := []struct {
		name         string
		outer, inner float32
		points       int
		indent       float32
	}{
		{"too few points", 2, 1, 2, 0},
		{"zero outer", 0, 1, 5, 0},
		{"negative inner", 2, -1, 5, 0},
		{"inner not smaller", 2, 2, 5, 0},
		{"indent at one", 2, 1, 5, 1},
		{"negative indent", 2, 1, 5, -0.1},
		{"nan outer", math32.NaN(), 1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := StarOutline(tt.outer, tt.inner, tt.points, tt.indent)
			assert.ErrorIs(t, err, common.ErrInvalidGeometryParameter)
			assert.Nil(t, pts)
		})
	}
}

func TestSpiralPoints(t *testing.T) {
	arms, err := SpiralPoints(3, 4, 1.5, 33)
	require.NoError(t, err)
	require.Len(t, arms, 3)

	for a, chain := range arms {
		require.Len(t, chain, 33, "arm %d", a)
		assert.Equal(t, math32.Vec3(0, 0, 0), chain[0], "arms start at the centre")
		assert.InDelta(t, 4, chain[32].Length(), 1e-4, "arms end at the radius")
		for i := 1; i < len(chain); i++ {
			assert.GreaterOrEqual(t, chain[i].Length(), chain[i-1].Length()-1e-5)
		}
	}
	assert.NotEqual(t, arms[0][32], arms[1][32], "arms are phased apart")
}

func TestSpiralPointsInvalid(t *testing.T) {
	_, err := SpiralPoints(0, 4, 1, 10)
	assert.ErrorIs(t, err, common.ErrInvalidGeometryParameter)
	_, err = SpiralPoints(2, -4, 1, 10)
	assert.ErrorIs(t, err, common.ErrInvalidGeometryParameter)
	_, err = SpiralPoints(2, 4, 0, 10)
	assert.ErrorIs(t, err, common.ErrInvalidGeometryParameter)
	_, err = SpiralPoints(2, 4, 1, 1)
	assert.ErrorIs(t, err, common.ErrInvalidGeometryParameter)
}

func TestColumnProfile(t *testing.T) {
	prof, err := ColumnProfile(6, 0.4)
	require.NoError(t, err)
	require.NotEmpty(t, prof)

	assert.Equal(t, math32.Vec2(0, 0), prof[0], "starts on the axis")
	last := prof[len(prof)-1]
	assert.InDelta(t, 0, last.X, 1e-6, "ends on the axis")
	assert.InDelta(t, 6, last.Y, 1e-5, "ends at full height")
	for i := 1; i < len(prof); i++ {
		assert.GreaterOrEqual(t, prof[i].Y, prof[i-1].Y, "point %d is ordered bottom to top", i)
	}
}

func TestColumnProfileInvalid(t *testing.T) {
	_, err := ColumnProfile(0, 0.4)
	assert.ErrorIs(t, err, common.ErrInvalidGeometryParameter)
	_, err = ColumnProfile(6, -1)
	assert.ErrorIs(t, err, common.ErrInvalidGeometryParameter)
}
