package geometry

import (
	"cogentcore.org/core/math32"
)

// Vertex is the interleaved vertex layout consumed by the renderer (32 bytes).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds returns the axis-aligned bounding box of the mesh in its local space.
func (m Mesh) Bounds() math32.Box3 {
	b := math32.B3Empty()
	for _, v := range m.Vertices {
		b.ExpandByPoint(math32.Vec3(v.Position[0], v.Position[1], v.Position[2]))
	}
	return b
}

func vtx(p, n math32.Vector3, u, v float32) Vertex {
	return Vertex{
		Position: [3]float32{p.X, p.Y, p.Z},
		Normal:   [3]float32{n.X, n.Y, n.Z},
		UV:       [2]float32{u, v},
	}
}

func (m *Mesh) add(v ...Vertex) uint32 {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v...)
	return base
}

func (m *Mesh) tri(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

func (m *Mesh) quad(a, b, c, d uint32) {
	m.Indices = append(m.Indices, a, b, c, a, c, d)
}

// Extrude turns a closed outline in the XY plane into a slab of the given
// depth centred on Z = 0. Caps are fanned from the origin, which must lie
// inside the outline (true for every star outline).
//
// Parameters:
//   - outline: closed outline, counter-clockwise
//   - depth: slab thickness along Z
//
// Returns:
//   - Mesh: caps plus flat-shaded side walls
func Extrude(outline []math32.Vector2, depth float32) Mesh {
	var m Mesh
	if len(outline) < 3 {
		return m
	}
	half := depth / 2
	extent := float32(0)
	for _, p := range outline {
		extent = max(extent, p.Length())
	}
	uv := func(p math32.Vector2) (float32, float32) {
		if extent == 0 {
			return 0.5, 0.5
		}
		return 0.5 + 0.5*p.X/extent, 0.5 - 0.5*p.Y/extent
	}

	for _, side := range []float32{1, -1} {
		n := math32.Vec3(0, 0, side)
		u, v := uv(math32.Vector2{})
		center := m.add(vtx(math32.Vec3(0, 0, half*side), n, u, v))
		for _, p := range outline {
			u, v := uv(p)
			m.add(vtx(math32.Vec3(p.X, p.Y, half*side), n, u, v))
		}
		count := uint32(len(outline))
		for i := uint32(0); i < count; i++ {
			a, b := center+1+i, center+1+(i+1)%count
			if side > 0 {
				m.tri(center, a, b)
			} else {
				m.tri(center, b, a)
			}
		}
	}

	for i := range outline {
		p, q := outline[i], outline[(i+1)%len(outline)]
		edge := q.Sub(p)
		n := math32.Vec3(edge.Y, -edge.X, 0)
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		base := m.add(
			vtx(math32.Vec3(p.X, p.Y, half), n, 0, 0),
			vtx(math32.Vec3(p.X, p.Y, -half), n, 0, 1),
			vtx(math32.Vec3(q.X, q.Y, -half), n, 1, 1),
			vtx(math32.Vec3(q.X, q.Y, half), n, 1, 0),
		)
		m.quad(base, base+1, base+2, base+3)
	}
	return m
}

// Lathe revolves a (radius, height) contour around the Y axis.
//
// Parameters:
//   - profile: contour ordered bottom to top, X is radius and Y is height
//   - segments: number of angular slices, at least 3
//
// Returns:
//   - Mesh: smooth-shaded surface of revolution
func Lathe(profile []math32.Vector2, segments int) Mesh {
	var m Mesh
	if len(profile) < 2 || segments < 3 {
		return m
	}

	// per-point 2D normals, averaged over adjacent contour segments
	normals := make([]math32.Vector2, len(profile))
	for i := 0; i+1 < len(profile); i++ {
		d := profile[i+1].Sub(profile[i])
		n := math32.Vec2(d.Y, -d.X)
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		normals[i] = normals[i].Add(n)
		normals[i+1] = normals[i+1].Add(n)
	}
	height := profile[len(profile)-1].Y - profile[0].Y

	rows := uint32(len(profile))
	for s := 0; s <= segments; s++ {
		phi := 2 * math32.Pi * float32(s) / float32(segments)
		c, sn := math32.Cos(phi), math32.Sin(phi)
		for i, p := range profile {
			n2 := normals[i]
			n := math32.Vec3(n2.X*c, n2.Y, n2.X*sn)
			if l := n.Length(); l > 0 {
				n = n.MulScalar(1 / l)
			}
			v := float32(0)
			if height > 0 {
				v = (p.Y - profile[0].Y) / height
			}
			m.add(vtx(math32.Vec3(p.X*c, p.Y, p.X*sn), n, float32(s)/float32(segments), 1-v))
		}
	}
	for s := uint32(0); s < uint32(segments); s++ {
		for i := uint32(0); i+1 < rows; i++ {
			a := s*rows + i
			b := (s+1)*rows + i
			m.quad(a, a+1, b+1, b)
		}
	}
	return m
}

// Cylinder builds a capped cylinder along the Y axis centred on the origin.
// Coins, the plaza floor and the fog sheets are all cylinders.
//
// Parameters:
//   - radius: cylinder radius
//   - height: extent along Y
//   - segments: number of angular slices, at least 3
//
// Returns:
//   - Mesh: the cylinder, caps UV-mapped as discs so a texture reads as a face
func Cylinder(radius, height float32, segments int) Mesh {
	var m Mesh
	if segments < 3 {
		return m
	}
	half := height / 2

	for _, side := range []float32{1, -1} {
		n := math32.Vec3(0, side, 0)
		center := m.add(vtx(math32.Vec3(0, half*side, 0), n, 0.5, 0.5))
		for s := 0; s < segments; s++ {
			phi := 2 * math32.Pi * float32(s) / float32(segments)
			c, sn := math32.Cos(phi), math32.Sin(phi)
			m.add(vtx(math32.Vec3(radius*c, half*side, radius*sn), n, 0.5+0.5*c, 0.5-0.5*sn*side))
		}
		for s := uint32(0); s < uint32(segments); s++ {
			a, b := center+1+s, center+1+(s+1)%uint32(segments)
			if side > 0 {
				m.tri(center, b, a)
			} else {
				m.tri(center, a, b)
			}
		}
	}

	wall := uint32(len(m.Vertices))
	for s := 0; s <= segments; s++ {
		phi := 2 * math32.Pi * float32(s) / float32(segments)
		c, sn := math32.Cos(phi), math32.Sin(phi)
		n := math32.Vec3(c, 0, sn)
		u := float32(s) / float32(segments)
		m.add(
			vtx(math32.Vec3(radius*c, -half, radius*sn), n, u, 1),
			vtx(math32.Vec3(radius*c, half, radius*sn), n, u, 0),
		)
	}
	for s := uint32(0); s < uint32(segments); s++ {
		a := wall + 2*s
		m.quad(a, a+1, a+3, a+2)
	}
	return m
}

// SpiralRibbon widens point chains into flat strips facing +Y.
//
// Parameters:
//   - chains: point chains, for example the arms returned by SpiralPoints
//   - width: strip width, tapering to zero at the first point of each chain
//
// Returns:
//   - Mesh: one strip per chain
func SpiralRibbon(chains [][]math32.Vector3, width float32) Mesh {
	var m Mesh
	up := math32.Vec3(0, 1, 0)
	for _, chain := range chains {
		if len(chain) < 2 {
			continue
		}
		first := uint32(len(m.Vertices))
		for i, p := range chain {
			var tangent math32.Vector3
			switch {
			case i == 0:
				tangent = chain[1].Sub(p)
			default:
				tangent = p.Sub(chain[i-1])
			}
			side := tangent.Cross(up)
			if l := side.Length(); l > 0 {
				side = side.MulScalar(1 / l)
			}
			t := float32(i) / float32(len(chain)-1)
			offset := side.MulScalar(width * 0.5 * t)
			m.add(
				vtx(p.Add(offset), up, 0, t),
				vtx(p.Sub(offset), up, 1, t),
			)
		}
		for i := uint32(0); i+1 < uint32(len(chain)); i++ {
			a := first + 2*i
			m.quad(a, a+1, a+3, a+2)
		}
	}
	return m
}

// Octahedron builds the small faceted particle used for sparkles.
//
// Parameters:
//   - size: distance from the centre to each vertex
//
// Returns:
//   - Mesh: eight flat-shaded faces
func Octahedron(size float32) Mesh {
	var m Mesh
	axes := [6]math32.Vector3{
		math32.Vec3(size, 0, 0), math32.Vec3(-size, 0, 0),
		math32.Vec3(0, size, 0), math32.Vec3(0, -size, 0),
		math32.Vec3(0, 0, size), math32.Vec3(0, 0, -size),
	}
	faces := [8][3]int{
		{0, 2, 4}, {4, 2, 1}, {1, 2, 5}, {5, 2, 0},
		{4, 3, 0}, {1, 3, 4}, {5, 3, 1}, {0, 3, 5},
	}
	for _, f := range faces {
		a, b, c := axes[f[0]], axes[f[1]], axes[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		base := m.add(vtx(a, n, 0, 0), vtx(b, n, 0.5, 1), vtx(c, n, 1, 0))
		m.tri(base, base+1, base+2)
	}
	return m
}
