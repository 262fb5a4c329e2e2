package common

import "cogentcore.org/core/math32"

// Plane represents ax + by + cz + d = 0 where (a, b, c) is the unit normal.
type Plane struct {
	Normal   math32.Vector3
	Distance float32
}

// Frustum holds the six view planes, oriented so the positive half-space is inside.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// ExtractFrustum extracts normalized frustum planes from a view-projection
// matrix using the Gribb/Hartmann method. WebGPU's [0, 1] depth range means the
// near plane is row 2 alone rather than row 3 + row 2.
//
// Parameters:
//   - vp: the combined projection * view matrix
//
// Returns:
//   - Frustum: the extracted frustum
func ExtractFrustum(vp Mat4) Frustum {
	row := func(r int) [4]float32 {
		return [4]float32{vp[r], vp[4+r], vp[8+r], vp[12+r]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	combos := [6][4]float32{}
	for i := 0; i < 4; i++ {
		combos[0][i] = r3[i] + r0[i]
		combos[1][i] = r3[i] - r0[i]
		combos[2][i] = r3[i] + r1[i]
		combos[3][i] = r3[i] - r1[i]
		combos[4][i] = r2[i]
		combos[5][i] = r3[i] - r2[i]
	}

	var f Frustum
	for i, c := range combos {
		n := math32.Vec3(c[0], c[1], c[2])
		l := n.Length()
		if l > 0 {
			f.Planes[i] = Plane{Normal: n.MulScalar(1 / l), Distance: c[3] / l}
		}
	}
	return f
}

// IntersectsBox reports whether any part of the axis-aligned box lies inside the frustum.
// Conservative: boxes straddling a frustum corner may report true.
func (f Frustum) IntersectsBox(b math32.Box3) bool {
	for _, p := range f.Planes {
		// farthest corner along the plane normal
		v := b.Min
		if p.Normal.X >= 0 {
			v.X = b.Max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = b.Max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = b.Max.Z
		}
		if p.Normal.Dot(v)+p.Distance < 0 {
			return false
		}
	}
	return true
}
