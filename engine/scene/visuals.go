package scene

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/engine/catalog"
)

// ColumnVisual is the deposit-driven look of one entity.
type ColumnVisual struct {
	// Share is the deposit relative to the largest deposit, in [0, 1].
	Share float32
	// HeightScale multiplies the column base height.
	HeightScale float32
	// Glow is the coin emissive intensity before pulsing.
	Glow float32
}

// DepositVisual maps an entity's deposit onto column height and coin glow.
// Mystery entities always get the neutral zero-share look regardless of
// their deposit.
//
// Parameters:
//   - e: the entity
//   - maxDeposit: largest deposit among non-mystery entities
//   - glowIntensity: coin glow setting of the active parameter set
//
// Returns:
//   - ColumnVisual: the derived visual settings
func DepositVisual(e catalog.ChainEntity, maxDeposit float64, glowIntensity float32) ColumnVisual {
	var share float32
	if e.Status != catalog.StatusMystery && maxDeposit > 0 {
		share = float32(min(max(e.DepositAmount/maxDeposit, 0), 1))
	}
	return ColumnVisual{
		Share:       share,
		HeightScale: 0.6 + 0.8*share,
		Glow:        glowIntensity * (0.5 + share),
	}
}

// ColumnAngles distributes n columns over an arc, in degrees. Angle 0 is
// directly behind the plaza centre as seen from the default camera and angles
// grow clockwise seen from above, so ascending order runs front-left to
// front-right. A span of 360 or more closes the ring without doubling the seam.
//
// The order is along the arc, not along world X. On arcs wider than 180
// degrees the ends curl back toward the camera, so the last column is the
// right end of the horseshoe while a column nearer the middle can sit
// further right in X.
//
// Parameters:
//   - n: number of columns
//   - span: arc span in degrees
//   - center: arc centre in degrees
//
// Returns:
//   - []float32: one angle per column
func ColumnAngles(n int, span, center float32) []float32 {
	if n <= 0 {
		return nil
	}
	out := make([]float32, n)
	if n == 1 {
		out[0] = center
		return out
	}
	start, step := center-span/2, span/float32(n-1)
	if span >= 360 {
		step = 360 / float32(n)
		start = center - 180 + step/2
	}
	for i := range out {
		out[i] = start + step*float32(i)
	}
	return out
}

// ringPosition returns the plaza-local position of an angle on a ring.
func ringPosition(radius, degrees float32) math32.Vector3 {
	a := math32.DegToRad(degrees)
	return math32.Vec3(radius*math32.Sin(a), 0, -radius*math32.Cos(a))
}
