package common

import (
	"unsafe"

	"cogentcore.org/core/math32"
)

// Mat4 is a 4x4 matrix stored in column-major order (WebGPU convention).
// Element (row r, column c) lives at index c*4 + r.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func Identity4() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}

// Mul returns m * o. Applying the result to a point applies o first, then m.
//
// Parameters:
//   - o: right-hand matrix
//
// Returns:
//   - Mat4: the product
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * o[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Translation returns the translation column of an affine matrix.
func (m Mat4) Translation() math32.Vector3 {
	return math32.Vec3(m[12], m[13], m[14])
}

// TransformPoint multiplies the point (p, 1) by m and performs the perspective divide.
//
// Parameters:
//   - p: the point to transform
//
// Returns:
//   - math32.Vector3: the transformed point
//   - float32: the clip-space w before the divide (<= 0 means the point is behind the eye)
func (m Mat4) TransformPoint(p math32.Vector3) (math32.Vector3, float32) {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w == 0 {
		return math32.Vec3(x, y, z), w
	}
	return math32.Vec3(x/w, y/w, z/w), w
}

// Perspective creates a perspective projection matrix mapping depth to WebGPU clip space [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	out := Identity4()
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
	out[15] = 0
	return out
}

// ModelMatrix composes translation, Euler rotation (Y * X * Z order) and scale.
//
// Parameters:
//   - pos: translation in parent space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - Mat4: the model matrix
func ModelMatrix(pos, rot, scale math32.Vector3) Mat4 {
	cx, sx := math32.Cos(rot.X), math32.Sin(rot.X)
	cy, sy := math32.Cos(rot.Y), math32.Sin(rot.Y)
	cz, sz := math32.Cos(rot.Z), math32.Sin(rot.Z)

	return Mat4{
		(cy*cz + sy*sx*sz) * scale.X, (cx * sz) * scale.X, (-sy*cz + cy*sx*sz) * scale.X, 0,
		(cy*-sz + sy*sx*cz) * scale.Y, (cx * cz) * scale.Y, (sy*sz + cy*sx*cz) * scale.Y, 0,
		(sy * cx) * scale.Z, (-sx) * scale.Z, (cy * cx) * scale.Z, 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}

// Inverse computes the inverse using cofactor expansion.
//
// Returns:
//   - Mat4: the inverse, or the identity when m is singular
//   - bool: false if m is singular
func (m Mat4) Inverse() (Mat4, bool) {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity4(), false
	}
	inv := 1 / det

	return Mat4{
		(m[5]*c5 - m[6]*c4 + m[7]*c3) * inv,
		(-m[1]*c5 + m[2]*c4 - m[3]*c3) * inv,
		(m[13]*s5 - m[14]*s4 + m[15]*s3) * inv,
		(-m[9]*s5 + m[10]*s4 - m[11]*s3) * inv,

		(-m[4]*c5 + m[6]*c2 - m[7]*c1) * inv,
		(m[0]*c5 - m[2]*c2 + m[3]*c1) * inv,
		(-m[12]*s5 + m[14]*s2 - m[15]*s1) * inv,
		(m[8]*s5 - m[10]*s2 + m[11]*s1) * inv,

		(m[4]*c4 - m[5]*c2 + m[7]*c0) * inv,
		(-m[0]*c4 + m[1]*c2 - m[3]*c0) * inv,
		(m[12]*s4 - m[13]*s2 + m[15]*s0) * inv,
		(-m[8]*s4 + m[9]*s2 - m[11]*s0) * inv,

		(-m[4]*c3 + m[5]*c1 - m[6]*c0) * inv,
		(m[0]*c3 - m[1]*c1 + m[2]*c0) * inv,
		(-m[12]*s3 + m[13]*s1 - m[14]*s0) * inv,
		(m[8]*s3 - m[9]*s1 + m[10]*s0) * inv,
	}, true
}

// LookAt creates a view matrix for an eye at eye looking toward center.
//
// Parameters:
//   - eye: camera position in world space
//   - center: point the camera looks at
//   - up: up direction, typically +Y
//
// Returns:
//   - Mat4: the view matrix
func LookAt(eye, center, up math32.Vector3) Mat4 {
	z := normalizeOr(eye.Sub(center), math32.Vec3(0, 0, 1))
	x := normalizeOr(up.Cross(z), math32.Vec3(1, 0, 0))
	y := z.Cross(x)

	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

// ScreenRay builds a world-space picking ray through a pixel of the viewport.
//
// Parameters:
//   - invViewProj: inverse of the camera's view-projection matrix
//   - x, y: pixel coordinates, origin at the top-left corner
//   - width, height: viewport size in pixels
//
// Returns:
//   - math32.Ray: ray starting on the near plane, unit direction
func ScreenRay(invViewProj Mat4, x, y, width, height float32) math32.Ray {
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height
	near, _ := invViewProj.TransformPoint(math32.Vec3(ndcX, ndcY, 0))
	far, _ := invViewProj.TransformPoint(math32.Vec3(ndcX, ndcY, 0.999))
	return math32.Ray{Origin: near, Dir: normalizeOr(far.Sub(near), math32.Vec3(0, 0, -1))}
}

// WorldToScreen projects a world point into pixel coordinates.
//
// Returns:
//   - x, y: pixel coordinates, origin at the top-left corner
//   - bool: false when the point is behind the camera
func WorldToScreen(viewProj Mat4, p math32.Vector3, width, height float32) (x, y float32, ok bool) {
	ndc, w := viewProj.TransformPoint(p)
	if w <= 0 {
		return 0, 0, false
	}
	return (ndc.X + 1) * 0.5 * width, (1 - ndc.Y) * 0.5 * height, true
}

func normalizeOr(v, fallback math32.Vector3) math32.Vector3 {
	l := v.Length()
	if l == 0 {
		return fallback
	}
	return v.MulScalar(1 / l)
}

// TransformBox returns the world-space AABB enclosing box b after transformation by m.
// All eight corners are transformed, so rotated boxes stay conservative.
//
// Parameters:
//   - m: the affine transform
//   - b: the local-space box
//
// Returns:
//   - math32.Box3: the enclosing box, or an empty box if b is empty
func TransformBox(m Mat4, b math32.Box3) math32.Box3 {
	out := math32.B3Empty()
	if b.IsEmpty() {
		return out
	}
	for i := range 8 {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		p, _ := m.TransformPoint(c)
		out.ExpandByPoint(p)
	}
	return out
}

// PointInViewport reports whether (x, y) lies inside a width × height surface.
// It returns ErrPickingOutOfBounds otherwise.
func PointInViewport(x, y, width, height float32) error {
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x >= width || y >= height || math32.IsNaN(x) || math32.IsNaN(y) {
		return ErrPickingOutOfBounds
	}
	return nil
}
