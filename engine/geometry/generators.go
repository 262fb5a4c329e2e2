// Package geometry holds the pure procedural generators for the plaza's
// stylized shapes and the mesh builders that turn their outlines into
// triangle lists.
package geometry

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), common.ErrInvalidGeometryParameter)
}

func positive(name string, v float32) error {
	if !(v > 0) || math32.IsInf(v, 0) {
		return invalid("%s must be positive and finite, got %v", name, v)
	}
	return nil
}

// StarOutline generates the closed outline of a star-shaped frame in the XY
// plane, counter-clockwise, with the first tip pointing up (+Y). Each point of
// the star contributes four vertices: the outer tip, a notch on the edge down
// to the inner valley, the valley itself, and a notch on the edge back up to
// the next tip.
//
// Parameters:
//   - outerRadius: distance of each tip from the origin
//   - innerRadius: distance of each valley from the origin, smaller than outerRadius
//   - pointCount: number of tips, at least 3
//   - indent: 0 keeps edges straight, values toward 1 pull the notches toward the origin
//
// Returns:
//   - []math32.Vector2: 4*pointCount outline points
//   - error: wraps common.ErrInvalidGeometryParameter for malformed inputs
func StarOutline(outerRadius, innerRadius float32, pointCount int, indent float32) ([]math32.Vector2, error) {
	if pointCount < 3 {
		return nil, invalid("star point count must be at least 3, got %d", pointCount)
	}
	if err := positive("star outer radius", outerRadius); err != nil {
		return nil, err
	}
	if err := positive("star inner radius", innerRadius); err != nil {
		return nil, err
	}
	if innerRadius >= outerRadius {
		return nil, invalid("star inner radius %v must be smaller than outer radius %v", innerRadius, outerRadius)
	}
	if !(indent >= 0 && indent < 1) {
		return nil, invalid("star indent must be in [0, 1), got %v", indent)
	}

	polar := func(r, a float32) math32.Vector2 {
		return math32.Vec2(r*math32.Cos(a), r*math32.Sin(a))
	}
	notch := func(a, b math32.Vector2) math32.Vector2 {
		return a.Add(b).MulScalar(0.5 * (1 - indent))
	}

	step := 2 * math32.Pi / float32(pointCount)
	out := make([]math32.Vector2, 0, 4*pointCount)
	for k := 0; k < pointCount; k++ {
		a := math32.Pi/2 + float32(k)*step
		tip := polar(outerRadius, a)
		valley := polar(innerRadius, a+step/2)
		next := polar(outerRadius, a+step)
		out = append(out, tip, notch(tip, valley), valley, notch(valley, next))
	}
	return out, nil
}

// SpiralPoints generates the point chains of a swirl with evenly phased arms
// lying in the XZ plane. Each chain starts at the origin and winds outward,
// its radius growing linearly with arc parameter.
//
// Parameters:
//   - armCount: number of arms, at least 1
//   - radius: radius reached at the end of each arm
//   - turns: full revolutions each arm makes, positive
//   - sampleCount: points per arm, at least 2
//
// Returns:
//   - [][]math32.Vector3: armCount chains of sampleCount points
//   - error: wraps common.ErrInvalidGeometryParameter for malformed inputs
func SpiralPoints(armCount int, radius, turns float32, sampleCount int) ([][]math32.Vector3, error) {
	if armCount < 1 {
		return nil, invalid("spiral arm count must be at least 1, got %d", armCount)
	}
	if err := positive("spiral radius", radius); err != nil {
		return nil, err
	}
	if err := positive("spiral turns", turns); err != nil {
		return nil, err
	}
	if sampleCount < 2 {
		return nil, invalid("spiral sample count must be at least 2, got %d", sampleCount)
	}

	arms := make([][]math32.Vector3, armCount)
	for a := range arms {
		offset := float32(a) * 2 * math32.Pi / float32(armCount)
		chain := make([]math32.Vector3, sampleCount)
		for s := range chain {
			t := float32(s) / float32(sampleCount-1)
			theta := offset + t*turns*2*math32.Pi
			r := radius * t
			chain[s] = math32.Vec3(r*math32.Cos(theta), 0, r*math32.Sin(theta))
		}
		arms[a] = chain
	}
	return arms, nil
}

// shaftSamples is the number of contour points along the tapered shaft.
const shaftSamples = 8

// ColumnProfile generates the lathe contour of an ornamented column as
// (radius, height) pairs ordered bottom to top. The contour starts and ends on
// the axis so a lathe closes both caps.
//
// Parameters:
//   - height: total column height
//   - baseRadius: radius of the shaft at its foot
//
// Returns:
//   - []math32.Vector2: contour points, X is radius and Y is height
//   - error: wraps common.ErrInvalidGeometryParameter for malformed inputs
func ColumnProfile(height, baseRadius float32) ([]math32.Vector2, error) {
	if err := positive("column height", height); err != nil {
		return nil, err
	}
	if err := positive("column base radius", baseRadius); err != nil {
		return nil, err
	}

	r, h := baseRadius, height
	p := func(rf, hf float32) math32.Vector2 { return math32.Vec2(r*rf, h*hf) }

	out := []math32.Vector2{
		p(0, 0),
		// plinth
		p(1.35, 0), p(1.35, 0.05),
		// torus
		p(1.2, 0.06), p(1.25, 0.08), p(1.15, 0.1),
	}
	// shaft with entasis: a slight swell before tapering toward the capital
	for i := 0; i <= shaftSamples; i++ {
		u := float32(i) / shaftSamples
		rf := 1 - 0.14*u + 0.05*math32.Sin(math32.Pi*u)
		out = append(out, p(rf, 0.11+0.73*u))
	}
	out = append(out,
		// echinus
		p(0.95, 0.87), p(1.15, 0.9), p(1.3, 0.93),
		// abacus
		p(1.42, 0.93), p(1.42, 1),
		p(0, 1),
	)
	return out, nil
}
