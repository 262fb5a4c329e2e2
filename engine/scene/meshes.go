package scene

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/oxy-plaza/engine/geometry"
)

// Unit mesh parameters. Nodes size these through MeshScale.
const (
	medallionPoints = 8
	medallionInner  = 0.45
	medallionIndent = 0.25
	medallionDepth  = 0.18

	portalArms    = 3
	portalTurns   = 1.5
	portalSamples = 96
	portalWidth   = 0.12

	ribbonTurns   = 1.25
	ribbonSamples = 64
	ribbonWidth   = 0.05

	roundSegments  = 48
	columnSegments = 24
)

// Meshes holds one unit mesh per MeshKind, shared by every node that draws it.
type Meshes struct {
	meshes [meshKindCount]geometry.Mesh
	bounds [meshKindCount]math32.Box3
}

// NewMeshes generates the unit meshes.
//
// Returns:
//   - *Meshes: the mesh set
//   - error: wraps common.ErrInvalidGeometryParameter if a generator rejects its inputs
func NewMeshes() (*Meshes, error) {
	star, err := geometry.StarOutline(1, medallionInner, medallionPoints, medallionIndent)
	if err != nil {
		return nil, fmt.Errorf("medallion outline: %w", err)
	}
	portal, err := geometry.SpiralPoints(portalArms, 1, portalTurns, portalSamples)
	if err != nil {
		return nil, fmt.Errorf("portal spiral: %w", err)
	}
	ribbon, err := geometry.SpiralPoints(1, 1, ribbonTurns, ribbonSamples)
	if err != nil {
		return nil, fmt.Errorf("ribbon spiral: %w", err)
	}
	profile, err := geometry.ColumnProfile(1, 1)
	if err != nil {
		return nil, fmt.Errorf("column profile: %w", err)
	}

	m := &Meshes{}
	m.set(MeshPlaza, geometry.Cylinder(1, 1, roundSegments*2))
	m.set(MeshPortal, geometry.SpiralRibbon(portal, portalWidth))
	m.set(MeshColumn, geometry.Lathe(profile, columnSegments))
	m.set(MeshCoin, geometry.Cylinder(1, 1, roundSegments))
	m.set(MeshMedallion, geometry.Extrude(star, medallionDepth))
	m.set(MeshRibbon, geometry.SpiralRibbon(ribbon, ribbonWidth))
	m.set(MeshFog, geometry.Cylinder(1, 1, roundSegments))
	m.set(MeshSparkle, geometry.Octahedron(1))
	return m, nil
}

func (m *Meshes) set(kind MeshKind, mesh geometry.Mesh) {
	m.meshes[kind] = mesh
	m.bounds[kind] = mesh.Bounds()
}

// Mesh returns the unit mesh of a kind.
func (m *Meshes) Mesh(kind MeshKind) geometry.Mesh {
	if kind <= MeshNone || kind >= meshKindCount {
		return geometry.Mesh{}
	}
	return m.meshes[kind]
}

// Bounds returns the local AABB of a kind's unit mesh.
func (m *Meshes) Bounds(kind MeshKind) math32.Box3 {
	if kind <= MeshNone || kind >= meshKindCount {
		return math32.B3Empty()
	}
	return m.bounds[kind]
}

// Kinds lists every drawable mesh kind.
func Kinds() []MeshKind {
	out := make([]MeshKind, 0, meshKindCount-1)
	for k := MeshNone + 1; k < meshKindCount; k++ {
		out = append(out, k)
	}
	return out
}
